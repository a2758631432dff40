package livesync

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"

	"github.com/talemy/client-go/internal/cache"
	"github.com/talemy/client-go/internal/model"
)

// State is the lifecycle of the realtime connection
type State string

const (
	StateDisconnected State = "disconnected"
	StateConnecting   State = "connecting"
	StateConnected    State = "connected"
)

// Conn is the minimal surface the coordinator needs from a live channel
type Conn interface {
	Emit(event string, data any) error
	Close() error
}

// DialFunc opens one channel connection. Inbound frames go to onEvent
// in delivery order; onDisconnect fires once when the connection drops.
type DialFunc func(ctx context.Context, token string, onEvent func(event string, data json.RawMessage), onDisconnect func(reason error)) (Conn, error)

const (
	defaultReconnectAttempts = 5
	defaultReconnectDelay    = time.Second
)

// Coordinator owns the realtime connection of one authenticated session
// and reconciles its push events against the query cache. Push events
// only invalidate cache entries - the refetch on next read is the sole
// write path, so a missed or duplicated event can never corrupt state.
type Coordinator struct {
	store  *cache.Store
	dial   DialFunc
	logger *zap.Logger

	attempts uint64
	delay    time.Duration

	mu     sync.Mutex
	state  State
	conn   Conn
	gen    uint64
	cancel context.CancelFunc
	done   chan struct{}
	drops  chan error
}

// Option tunes the coordinator
type Option func(*Coordinator)

// WithReconnect bounds automatic reconnection: attempts retries with a
// fixed delay between them. After exhaustion the coordinator stays
// disconnected until the session changes.
func WithReconnect(attempts uint64, delay time.Duration) Option {
	return func(c *Coordinator) {
		c.attempts = attempts
		c.delay = delay
	}
}

func New(store *cache.Store, dial DialFunc, logger *zap.Logger, opts ...Option) *Coordinator {
	c := &Coordinator{
		store:    store,
		dial:     dial,
		logger:   logger,
		attempts: defaultReconnectAttempts,
		delay:    defaultReconnectDelay,
		state:    StateDisconnected,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Start opens the channel for the given session token and keeps it
// alive in the background. It returns immediately; connection progress
// is observable through State and Connected.
func (c *Coordinator) Start(ctx context.Context, token string) {
	c.mu.Lock()
	if c.cancel != nil {
		c.mu.Unlock()
		c.logger.Warn("Live sync already running, ignoring start")
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.done = make(chan struct{})
	c.drops = make(chan error, 1)
	done := c.done
	// Connecting is observable as soon as Start returns: a Disconnected
	// state always means the loop is not (or no longer) dialing
	c.state = StateConnecting
	c.mu.Unlock()

	go c.run(runCtx, token, done)
}

// Close releases the channel unconditionally and waits for the
// background loop to finish. Safe to call in any state; the coordinator
// can be started again afterwards (e.g. for a new session).
func (c *Coordinator) Close() {
	c.mu.Lock()
	cancel := c.cancel
	done := c.done
	c.cancel = nil
	c.done = nil
	c.mu.Unlock()

	if cancel == nil {
		return
	}

	cancel()
	<-done
}

// State returns the current connection lifecycle state
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Connected is the connectivity flag callers branch on for the
// realtime-versus-REST send path.
func (c *Coordinator) Connected() bool {
	return c.State() == StateConnected
}

// JoinConversation announces interest in a conversation's events.
// A no-op with a logged warning when the channel is not connected:
// never an error, never queued.
func (c *Coordinator) JoinConversation(conversationID int64) {
	conn := c.currentConn()
	if conn == nil {
		c.logger.Warn("Realtime channel not connected, join skipped",
			zap.Int64("conversation_id", conversationID))
		return
	}

	if err := conn.Emit(string(EventConversationJoin), joinPayload{ConversationID: conversationID}); err != nil {
		c.logger.Error("Failed to emit conversation join", zap.Error(err))
	}
}

// SendMessage emits a message over the channel. A no-op with a logged
// warning when not connected; the caller is responsible for branching
// to the REST fallback via Connected. Delivery is confirmed only by the
// next cache refresh - there is no optimistic echo here.
func (c *Coordinator) SendMessage(conversationID int64, content string) {
	conn := c.currentConn()
	if conn == nil {
		c.logger.Warn("Realtime channel not connected, message not emitted",
			zap.Int64("conversation_id", conversationID))
		return
	}

	if err := conn.Emit(string(EventMessageSend), sendMessagePayload{
		ConversationID: conversationID,
		Content:        content,
	}); err != nil {
		c.logger.Error("Failed to emit message", zap.Error(err))
	}
}

func (c *Coordinator) currentConn() Conn {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateConnected {
		return nil
	}
	return c.conn
}

func (c *Coordinator) setState(state State) {
	c.mu.Lock()
	c.state = state
	c.mu.Unlock()
}

// run is the connection loop: connect with bounded retries, stay
// connected until a drop, reconnect, and refetch everything that may
// have changed during the gap. Teardown is guaranteed on every exit
// path.
func (c *Coordinator) run(ctx context.Context, token string, done chan struct{}) {
	defer close(done)
	defer c.teardown()

	first := true
	for {
		c.setState(StateConnecting)

		conn, err := c.connect(ctx, token)
		if err != nil {
			c.setState(StateDisconnected)
			if ctx.Err() == nil {
				c.logger.Warn("Realtime channel unavailable, giving up until the session changes",
					zap.Error(err))
			}
			return
		}

		if !first {
			// Nothing buffered server-side: events emitted during the
			// gap are gone, so every view-critical list must be refetched
			c.logger.Info("Reconnected, marking cached lists for refetch")
			c.store.InvalidateKind(cache.KindLessons)
			c.store.InvalidateKind(cache.KindConversations)
			c.store.InvalidateKind(cache.KindRequests)
		}
		first = false

		c.mu.Lock()
		c.conn = conn
		c.state = StateConnected
		c.mu.Unlock()

		select {
		case <-ctx.Done():
			return
		case reason := <-c.drops:
			c.logger.Warn("🔌 Realtime channel dropped", zap.Error(reason))
			c.mu.Lock()
			if c.conn != nil {
				c.conn.Close()
				c.conn = nil
			}
			c.state = StateDisconnected
			c.mu.Unlock()
		}
	}
}

// connect dials with the configured bounded retries and fixed delay
func (c *Coordinator) connect(ctx context.Context, token string) (Conn, error) {
	var conn Conn

	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.mu.Unlock()

	backoff := retry.WithMaxRetries(c.attempts, retry.NewConstant(c.delay))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		dialed, err := c.dial(ctx, token, c.handleEvent, func(reason error) {
			c.handleDisconnect(gen, reason)
		})
		if err != nil {
			c.logger.Warn("Realtime connect attempt failed", zap.Error(err))
			return retry.RetryableError(err)
		}
		conn = dialed
		return nil
	})
	if err != nil {
		return nil, err
	}

	return conn, nil
}

// handleDisconnect signals the run loop. The generation check discards
// late signals from a connection that was already replaced.
func (c *Coordinator) handleDisconnect(gen uint64, reason error) {
	c.mu.Lock()
	stale := gen != c.gen
	drops := c.drops
	c.mu.Unlock()

	if stale || drops == nil {
		return
	}

	select {
	case drops <- reason:
	default:
	}
}

// handleEvent translates one push event into cache invalidations.
// Invalidation is the only mutation reachable from here: payloads are
// treated as signals, never merged into cached values.
func (c *Coordinator) handleEvent(event string, data json.RawMessage) {
	switch Event(event) {
	case EventMessageNew:
		var payload messageNewPayload
		if err := json.Unmarshal(data, &payload); err != nil || payload.ConversationID == 0 {
			c.logger.Warn("Unreadable message:new payload, invalidating all message entries")
			c.store.InvalidateKind(cache.KindMessages)
			c.store.InvalidateKind(cache.KindConversations)
			return
		}
		c.store.Invalidate(cache.MessagesKey(payload.ConversationID))
		// The conversation list carries the lastMessage preview
		c.store.InvalidateKind(cache.KindConversations)

	case EventLessonCreated, EventLessonStatusUpdated:
		c.store.InvalidateKind(cache.KindLessons)

	case EventContactRequestCreated:
		c.store.InvalidateKind(cache.KindRequests)

	case EventContactRequestStatusUpdated:
		c.store.InvalidateKind(cache.KindRequests)
		var payload contactRequestPayload
		if err := json.Unmarshal(data, &payload); err != nil {
			// Unknown decision: assume the conversation list changed too
			c.logger.Warn("Unreadable contactRequest:statusUpdated payload", zap.Error(err))
			c.store.InvalidateKind(cache.KindConversations)
			return
		}
		// Acceptance spawns a conversation, rejection hides one
		if payload.ContactRequest.Status == model.ContactRequestAccepted ||
			payload.ContactRequest.Status == model.ContactRequestRejected {
			c.store.InvalidateKind(cache.KindConversations)
		}

	case EventContactRequestCancelled:
		c.store.InvalidateKind(cache.KindRequests)
		c.store.InvalidateKind(cache.KindConversations)

	case EventConversationJoined:
		c.logger.Debug("Joined conversation room")

	case EventSocketError:
		// Contained here: channel errors never propagate to callers
		c.logger.Error("⚠️ Realtime channel error", zap.ByteString("data", data))

	default:
		c.logger.Debug("Unhandled realtime event", zap.String("event", event))
	}
}

func (c *Coordinator) teardown() {
	c.mu.Lock()
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
	c.state = StateDisconnected
	c.mu.Unlock()
}
