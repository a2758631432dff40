package socket

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Frame is the wire format of the realtime channel: one JSON object per
// websocket message, carrying the event name and its payload.
type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Handlers receives everything the channel produces. OnEvent fires once
// per inbound frame in delivery order; OnDisconnect fires exactly once
// when the connection dies for any reason other than a local Close.
type Handlers struct {
	OnEvent      func(event string, data json.RawMessage)
	OnDisconnect func(reason error)
}

// Channel is one live realtime connection. It is established
// authenticated: the session token is attached at dial time.
type Channel struct {
	conn   *websocket.Conn
	id     string
	logger *zap.Logger

	writeMu   sync.Mutex
	closeOnce sync.Once
	closed    chan struct{}
}

// Dial opens the realtime channel against baseURL, presenting token as
// the connection credential.
func Dial(ctx context.Context, baseURL, token string, logger *zap.Logger) (*Channel, error) {
	wsURL := websocketURL(baseURL)

	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, wsURL, header)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("dial %s: %w (status %d)", wsURL, err, resp.StatusCode)
		}
		return nil, fmt.Errorf("dial %s: %w", wsURL, err)
	}

	ch := &Channel{
		conn:   conn,
		id:     uuid.NewString(),
		logger: logger,
		closed: make(chan struct{}),
	}

	logger.Info("✅ Realtime channel connected",
		zap.String("connection_id", ch.id),
		zap.String("url", wsURL))

	return ch, nil
}

// websocketURL rewrites an http(s) base URL into its ws(s) equivalent
func websocketURL(baseURL string) string {
	url := strings.TrimRight(baseURL, "/")
	switch {
	case strings.HasPrefix(url, "https://"):
		url = "wss://" + strings.TrimPrefix(url, "https://")
	case strings.HasPrefix(url, "http://"):
		url = "ws://" + strings.TrimPrefix(url, "http://")
	}
	return url + "/socket"
}

// Listen starts the single reader goroutine. Frames are handed to
// h.OnEvent in delivery order; the goroutine exits on the first read
// error, reporting it through h.OnDisconnect unless Close was called.
func (ch *Channel) Listen(h Handlers) {
	go func() {
		for {
			_, payload, err := ch.conn.ReadMessage()
			if err != nil {
				select {
				case <-ch.closed:
					// Local teardown, not a drop
				default:
					if h.OnDisconnect != nil {
						h.OnDisconnect(err)
					}
				}
				return
			}

			var frame Frame
			if err := json.Unmarshal(payload, &frame); err != nil {
				ch.logger.Warn("Malformed frame on realtime channel",
					zap.String("connection_id", ch.id),
					zap.Error(err))
				continue
			}

			if h.OnEvent != nil {
				h.OnEvent(frame.Event, frame.Data)
			}
		}
	}()
}

// Emit sends one event frame. Writes are serialized; concurrent Emit
// calls are safe.
func (ch *Channel) Emit(event string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", event, err)
	}

	ch.writeMu.Lock()
	defer ch.writeMu.Unlock()

	ch.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	if err := ch.conn.WriteJSON(Frame{Event: event, Data: payload}); err != nil {
		return fmt.Errorf("emit %s: %w", event, err)
	}

	return nil
}

// Close tears the connection down. Idempotent; the reader goroutine
// will not report the resulting read error as a disconnect.
func (ch *Channel) Close() error {
	var err error
	ch.closeOnce.Do(func() {
		close(ch.closed)

		// Best-effort close handshake before dropping the transport
		ch.writeMu.Lock()
		ch.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		ch.writeMu.Unlock()

		err = ch.conn.Close()
		ch.logger.Info("🔌 Realtime channel closed", zap.String("connection_id", ch.id))
	})
	return err
}
