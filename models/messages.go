package models

import "encoding/json"

// Event type names shared by both directions of the socket protocol.
const (
	EventYourID            = "your_id"
	EventPlayerUpdate      = "player_update"
	EventScoreUpdate       = "score_update"
	EventChatMessage       = "chat_message"
	EventJoinRoom          = "join_room"
	EventRoomMessage       = "room_message"
	EventPlayerAction      = "player_action"
	EventRoomNotification  = "room_notification"
	EventLeaderboardUpdate = "leaderboard_update"
	EventHeartbeat         = "heartbeat"
)

// Envelope is the wire frame for every inbound client message. Data is
// decoded into the payload type matching Type before any state is touched.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// ScoreUpdateMsg is the payload of a score_update event.
type ScoreUpdateMsg struct {
	Score *float64 `json:"score"`
}

// ChatMessageMsg is the payload of a chat_message event.
type ChatMessageMsg struct {
	Message *string `json:"message"`
}

// JoinRoomMsg is the payload of a join_room event.
type JoinRoomMsg struct {
	Room string `json:"room"`
}

// RoomMessageMsg is the payload of a room_message event.
type RoomMessageMsg struct {
	Room    string  `json:"room"`
	Message *string `json:"message"`
}

// Outbound is the wire frame for every server-to-client message.
type Outbound struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Encode marshals an outbound event frame.
func Encode(eventType string, data interface{}) ([]byte, error) {
	return json.Marshal(Outbound{Type: eventType, Data: data})
}

// YourIDPayload tells a freshly connected client its connection id.
type YourIDPayload struct {
	ID string `json:"id"`
}

// ChatBroadcast is a relayed chat message with a server-assigned timestamp.
type ChatBroadcast struct {
	ID        string `json:"id"`
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
}

// RoomNotification announces a join to the members of a room.
type RoomNotification struct {
	Room      string `json:"room"`
	ID        string `json:"id"`
	Timestamp int64  `json:"timestamp"`
}

// RoomMessageBroadcast is a chat message relayed only to one room.
type RoomMessageBroadcast struct {
	Room      string `json:"room"`
	ID        string `json:"id"`
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
}

// HeartbeatPayload is the periodic liveness signal.
type HeartbeatPayload struct {
	Timestamp int64 `json:"timestamp"`
}
