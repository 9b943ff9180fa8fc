package handlers

import "net/http"

// PingHandler - answers "pong" while the listener can still take a peer and
// 409 once the session is taken.
func PingHandler(available func() bool) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		if !available() {
			http.Error(w, "busy", http.StatusConflict)
			return
		}

		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("pong")); err != nil {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
	}
}
