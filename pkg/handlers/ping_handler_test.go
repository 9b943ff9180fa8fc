package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPingHandler(t *testing.T) {
	t.Run("Available", func(t *testing.T) {
		recorder := httptest.NewRecorder()

		PingHandler(func() bool { return true })(recorder, httptest.NewRequest(http.MethodGet, "/ping", nil))

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "pong", recorder.Body.String())
	})

	t.Run("Busy", func(t *testing.T) {
		recorder := httptest.NewRecorder()

		PingHandler(func() bool { return false })(recorder, httptest.NewRequest(http.MethodGet, "/ping", nil))

		assert.Equal(t, http.StatusConflict, recorder.Code)
	})
}
