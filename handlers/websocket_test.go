package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/emrekoco/syncarena/syncarena-backend/config"
	"github.com/emrekoco/syncarena/syncarena-backend/game"
	"github.com/emrekoco/syncarena/syncarena-backend/models"
)

type wsFrame struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

func readFrame(t *testing.T, conn *websocket.Conn) wsFrame {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, b, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var fr wsFrame
	if err := json.Unmarshal(b, &fr); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return fr
}

func TestWebSocketLifecycle(t *testing.T) {
	log := zap.NewNop().Sugar()
	registry := game.NewRegistry(log)
	rooms := game.NewRoomIndex()
	hub := game.NewHub(registry, rooms, time.Hour, log)
	go hub.Run()
	defer hub.Stop()

	cfg := &config.Config{
		Port:         "0",
		PingInterval: 30 * time.Second,
		PongTimeout:  60 * time.Second,
	}
	srv := httptest.NewServer(NewRouter(New(hub, registry, rooms, cfg, log)))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// First frame is always the connection's own id.
	fr := readFrame(t, conn)
	if fr.Type != models.EventYourID {
		t.Fatalf("expected your_id first, got %q", fr.Type)
	}
	var welcome models.YourIDPayload
	if err := json.Unmarshal(fr.Data, &welcome); err != nil {
		t.Fatalf("decode your_id: %v", err)
	}
	if welcome.ID == "" {
		t.Fatalf("expected a connection id")
	}

	if err := conn.WriteJSON(map[string]interface{}{
		"type": models.EventPlayerUpdate,
		"data": map[string]float64{"x": 4, "score": 2},
	}); err != nil {
		t.Fatalf("write: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		if time.Now().After(deadline) {
			t.Fatalf("never saw updated snapshot")
		}
		fr := readFrame(t, conn)
		if fr.Type != models.EventPlayerUpdate {
			continue
		}
		var snapshot map[string]models.PlayerState
		if err := json.Unmarshal(fr.Data, &snapshot); err != nil {
			t.Fatalf("decode snapshot: %v", err)
		}
		if p := snapshot[welcome.ID]; p.X == 4 && p.Score == 2 {
			break
		}
	}

	conn.Close()
	for start := time.Now(); registry.Len() != 0; {
		if time.Since(start) > 2*time.Second {
			t.Fatalf("registry entry survived disconnect")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
