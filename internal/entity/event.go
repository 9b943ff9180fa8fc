package entity

import "time"

// RoundEvent describes a finished round as seen by one peer.
type RoundEvent struct {
	SessionID  string    `json:"session_id"`
	Role       Role      `json:"role"`
	Name       string    `json:"name"`
	Outcome    Outcome   `json:"outcome"`
	Stats      Stats     `json:"stats"`
	FinishedAt time.Time `json:"finished_at"`
}
