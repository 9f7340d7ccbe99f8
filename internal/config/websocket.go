package config

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

type WebSocket struct {
	Upgrader     websocket.Upgrader
	WriteTimeout time.Duration
	PongTimeout  time.Duration
}

// NewWebSocket reads WS_ALLOWED_ORIGINS, a comma separated list of
// origins allowed to open play sessions. Unset allows any origin.
func NewWebSocket() (*WebSocket, error) {
	origins := make(map[string]bool)
	if list, ok := os.LookupEnv("WS_ALLOWED_ORIGINS"); ok {
		for _, origin := range strings.Split(list, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				origins[origin] = true
			}
		}
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			if len(origins) == 0 {
				return true
			}
			return origins[r.Header.Get("Origin")]
		},
	}

	ws := &WebSocket{
		Upgrader:     upgrader,
		WriteTimeout: time.Second * 10,
		PongTimeout:  time.Second * 60,
	}

	return ws, nil
}
