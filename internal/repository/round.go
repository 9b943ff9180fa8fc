package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-p2p/internal/entity"
)

const DefaultRoundChannel = "tictactoe:rounds"

var ErrNilRoundEvent = errors.New("round event is nil")

type RoundRepository interface {
	Publish(ctx context.Context, event *entity.RoundEvent) error
}

type pubsubRound struct {
	client  *redis.Client
	channel string
}

// NewRoundRepository - events are published, never stored.
func NewRoundRepository(client *redis.Client, channel string) RoundRepository {
	if channel == "" {
		channel = DefaultRoundChannel
	}

	return &pubsubRound{
		client:  client,
		channel: channel,
	}
}

func (that *pubsubRound) Publish(ctx context.Context, event *entity.RoundEvent) error {
	if event == nil {
		return ErrNilRoundEvent
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal round event: %w", err)
	}

	if err = that.client.Publish(ctx, that.channel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish round event to %s: %w", that.channel, err)
	}

	return nil
}
