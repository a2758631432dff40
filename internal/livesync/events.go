package livesync

import "github.com/talemy/client-go/internal/model"

// Event is the closed set of realtime event names on the channel
type Event string

const (
	// Outbound
	EventConversationJoin Event = "conversation:join"
	EventMessageSend      Event = "message:send"

	// Inbound
	EventConversationJoined          Event = "conversation:joined"
	EventMessageNew                  Event = "message:new"
	EventLessonCreated               Event = "lesson:created"
	EventLessonStatusUpdated         Event = "lesson:statusUpdated"
	EventContactRequestCreated       Event = "contactRequest:created"
	EventContactRequestStatusUpdated Event = "contactRequest:statusUpdated"
	EventContactRequestCancelled     Event = "contactRequest:cancelled"
	EventSocketError                 Event = "socket:error"
)

type joinPayload struct {
	ConversationID int64 `json:"conversationId"`
}

type sendMessagePayload struct {
	ConversationID int64  `json:"conversationId"`
	Content        string `json:"content"`
}

type messageNewPayload struct {
	ConversationID int64         `json:"conversationId"`
	Message        model.Message `json:"message"`
}

type contactRequestPayload struct {
	ContactRequest model.ContactRequest `json:"contactRequest"`
}
