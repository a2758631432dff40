package livesync

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/talemy/client-go/internal/socket"
)

// SocketDialer adapts the websocket channel to the coordinator's
// DialFunc. Each call produces one fresh connection with its reader
// already running.
func SocketDialer(baseURL string, logger *zap.Logger) DialFunc {
	return func(ctx context.Context, token string, onEvent func(event string, data json.RawMessage), onDisconnect func(reason error)) (Conn, error) {
		ch, err := socket.Dial(ctx, baseURL, token, logger)
		if err != nil {
			return nil, err
		}

		ch.Listen(socket.Handlers{
			OnEvent:      onEvent,
			OnDisconnect: onDisconnect,
		})

		return ch, nil
	}
}
