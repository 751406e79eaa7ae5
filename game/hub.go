package game

import (
	"encoding/json"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/emrekoco/syncarena/syncarena-backend/models"
)

// Client is the send side of one connection as the hub sees it. The
// websocket transport implements it for real connections; tests inject
// fakes.
type Client interface {
	ID() string
	Send(payload []byte)
	Close()
}

// Event is one raw inbound message attributed to its sender.
type Event struct {
	SenderID string
	Raw      []byte
}

// Hub coordinates the whole session: it owns the set of live clients and
// funnels every connect, disconnect and inbound event through a single
// Run loop, so the registry and room index are never observed
// mid-mutation. One event is fully handled, broadcasts included, before
// the next is taken.
type Hub struct {
	registry *Registry
	rooms    *RoomIndex
	log      *zap.SugaredLogger

	register   chan Client
	unregister chan Client
	events     chan Event

	clients map[string]Client

	heartbeatEvery time.Duration
	quit           chan struct{}
}

func NewHub(registry *Registry, rooms *RoomIndex, heartbeatEvery time.Duration, log *zap.SugaredLogger) *Hub {
	return &Hub{
		registry:       registry,
		rooms:          rooms,
		log:            log,
		register:       make(chan Client),
		unregister:     make(chan Client),
		events:         make(chan Event, 256),
		clients:        make(map[string]Client),
		heartbeatEvery: heartbeatEvery,
		quit:           make(chan struct{}),
	}
}

// Register hands a new connection to the hub loop.
func (h *Hub) Register(c Client) {
	h.register <- c
}

// Unregister requests cleanup for a closed connection. Safe to call more
// than once for the same client.
func (h *Hub) Unregister(c Client) {
	h.unregister <- c
}

// Dispatch queues a raw inbound message for the hub loop.
func (h *Hub) Dispatch(senderID string, raw []byte) {
	h.events <- Event{SenderID: senderID, Raw: raw}
}

// Stop cancels the heartbeat and shuts the loop down. Connections still
// open are dropped without a farewell broadcast.
func (h *Hub) Stop() {
	close(h.quit)
}

// Run drains the hub's channels until Stop is called. Meant to be run as
// a single goroutine; all state mutation happens here.
func (h *Hub) Run() {
	ticker := time.NewTicker(h.heartbeatEvery)
	defer ticker.Stop()

	for {
		select {
		case <-h.quit:
			return
		case c := <-h.register:
			h.handleConnect(c)
		case c := <-h.unregister:
			h.handleDisconnect(c)
		case ev := <-h.events:
			h.handleEvent(ev)
		case <-ticker.C:
			h.broadcastAll(models.EventHeartbeat, models.HeartbeatPayload{Timestamp: time.Now().UnixMilli()})
		}
	}
}

func (h *Hub) handleConnect(c Client) {
	id := c.ID()
	h.clients[id] = c
	h.registry.Add(id)
	h.log.Infof("Player %s connected", id)

	h.sendTo(c, models.EventYourID, models.YourIDPayload{ID: id})
	h.broadcastState()
}

func (h *Hub) handleDisconnect(c Client) {
	id := c.ID()
	current, ok := h.clients[id]
	if !ok || current != c {
		// Already cleaned up; read and write pumps both report closes.
		return
	}
	delete(h.clients, id)
	h.registry.Remove(id)
	h.rooms.RemoveConn(id)
	c.Close()
	h.log.Infof("Player %s disconnected", id)

	h.broadcastState()
}

// handleEvent decodes and dispatches one inbound message. A panic inside
// a handler is recovered here so a bad payload can never take down the
// loop or another connection.
func (h *Hub) handleEvent(ev Event) {
	defer func() {
		if r := recover(); r != nil {
			h.log.Errorf("Recovered from handler panic (sender %s): %v", ev.SenderID, r)
		}
	}()

	var env models.Envelope
	if err := json.Unmarshal(ev.Raw, &env); err != nil {
		h.log.Warnf("Malformed message from %s: %v", ev.SenderID, err)
		return
	}

	switch env.Type {
	case models.EventPlayerUpdate:
		h.onPlayerUpdate(ev.SenderID, env.Data)
	case models.EventScoreUpdate:
		h.onScoreUpdate(ev.SenderID, env.Data)
	case models.EventChatMessage:
		h.onChatMessage(ev.SenderID, env.Data)
	case models.EventJoinRoom:
		h.onJoinRoom(ev.SenderID, env.Data)
	case models.EventRoomMessage:
		h.onRoomMessage(ev.SenderID, env.Data)
	case models.EventPlayerAction:
		h.onPlayerAction(ev.SenderID, env.Data)
	default:
		h.log.Warnf("Unhandled event type %q from %s", env.Type, ev.SenderID)
	}
}

func (h *Hub) onPlayerUpdate(senderID string, data json.RawMessage) {
	var update models.PlayerUpdate
	if err := json.Unmarshal(data, &update); err != nil {
		h.log.Warnf("Bad player_update from %s: %v", senderID, err)
		return
	}
	// Non-finite coordinates cannot arrive over JSON but the registry
	// contract requires finite numbers, so filter anyway.
	if !finite(update.X) {
		update.X = nil
	}
	if !finite(update.Y) {
		update.Y = nil
	}
	if !finite(update.Score) {
		update.Score = nil
	}
	if !h.registry.Update(senderID, update) {
		return
	}
	h.broadcastState()
}

func (h *Hub) onScoreUpdate(senderID string, data json.RawMessage) {
	var msg models.ScoreUpdateMsg
	if err := json.Unmarshal(data, &msg); err != nil || msg.Score == nil || !finite(msg.Score) {
		// Silently ignored: no registry change, no broadcast.
		h.log.Debugf("Ignoring invalid score_update from %s", senderID)
		return
	}
	if !h.registry.Update(senderID, models.PlayerUpdate{Score: msg.Score}) {
		return
	}
	h.broadcastState()
}

func (h *Hub) onChatMessage(senderID string, data json.RawMessage) {
	var msg models.ChatMessageMsg
	if err := json.Unmarshal(data, &msg); err != nil || msg.Message == nil {
		h.log.Warnf("Dropping invalid chat_message from %s", senderID)
		return
	}
	h.broadcastAll(models.EventChatMessage, models.ChatBroadcast{
		ID:        senderID,
		Message:   *msg.Message,
		Timestamp: time.Now().UnixMilli(),
	})
}

func (h *Hub) onJoinRoom(senderID string, data json.RawMessage) {
	var msg models.JoinRoomMsg
	if err := json.Unmarshal(data, &msg); err != nil || msg.Room == "" {
		h.log.Warnf("Dropping invalid join_room from %s", senderID)
		return
	}
	if !h.registry.SetRoom(senderID, msg.Room) {
		return
	}
	h.rooms.Join(senderID, msg.Room)
	h.log.Infof("Player %s joined room %s", senderID, msg.Room)

	h.routeToRoom(msg.Room, models.EventRoomNotification, models.RoomNotification{
		Room:      msg.Room,
		ID:        senderID,
		Timestamp: time.Now().UnixMilli(),
	})
}

func (h *Hub) onRoomMessage(senderID string, data json.RawMessage) {
	var msg models.RoomMessageMsg
	if err := json.Unmarshal(data, &msg); err != nil || msg.Room == "" || msg.Message == nil {
		h.log.Warnf("Dropping invalid room_message from %s", senderID)
		return
	}
	h.routeToRoom(msg.Room, models.EventRoomMessage, models.RoomMessageBroadcast{
		Room:      msg.Room,
		ID:        senderID,
		Message:   *msg.Message,
		Timestamp: time.Now().UnixMilli(),
	})
}

func (h *Hub) onPlayerAction(senderID string, data json.RawMessage) {
	var action map[string]interface{}
	if err := json.Unmarshal(data, &action); err != nil || action["action"] == nil {
		h.log.Warnf("Dropping invalid player_action from %s", senderID)
		return
	}
	relay := make(map[string]interface{}, len(action)+2)
	for k, v := range action {
		relay[k] = v
	}
	relay["id"] = senderID
	relay["timestamp"] = time.Now().UnixMilli()
	h.routeExcept(senderID, models.EventPlayerAction, relay)
}

// broadcastState pushes the full player snapshot and the leaderboard
// derived from it to every connection.
func (h *Hub) broadcastState() {
	snapshot := h.registry.Players()
	h.broadcastAll(models.EventPlayerUpdate, snapshot)
	h.broadcastAll(models.EventLeaderboardUpdate, Leaderboard(snapshot))
}

func (h *Hub) sendTo(c Client, eventType string, data interface{}) {
	b, err := models.Encode(eventType, data)
	if err != nil {
		h.log.Errorf("Encoding %s failed: %v", eventType, err)
		return
	}
	c.Send(b)
}

func (h *Hub) broadcastAll(eventType string, data interface{}) {
	b, err := models.Encode(eventType, data)
	if err != nil {
		h.log.Errorf("Encoding %s failed: %v", eventType, err)
		return
	}
	for _, c := range h.clients {
		c.Send(b)
	}
}

func (h *Hub) routeToRoom(room, eventType string, data interface{}) {
	members := h.rooms.Members(room)
	if len(members) == 0 {
		return
	}
	b, err := models.Encode(eventType, data)
	if err != nil {
		h.log.Errorf("Encoding %s failed: %v", eventType, err)
		return
	}
	for _, id := range members {
		if c, ok := h.clients[id]; ok {
			c.Send(b)
		}
	}
}

func (h *Hub) routeExcept(senderID, eventType string, data interface{}) {
	b, err := models.Encode(eventType, data)
	if err != nil {
		h.log.Errorf("Encoding %s failed: %v", eventType, err)
		return
	}
	for id, c := range h.clients {
		if id == senderID {
			continue
		}
		c.Send(b)
	}
}

func finite(f *float64) bool {
	if f == nil {
		return false
	}
	return !math.IsNaN(*f) && !math.IsInf(*f, 0)
}
