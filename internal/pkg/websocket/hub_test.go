package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	gws "github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/yigit/cems/internal/app/models"
	"github.com/yigit/cems/internal/pkg/apperrors"
)

type stubEvents map[int64]*models.Event

func (s stubEvents) GetByID(_ context.Context, id int64) (*models.Event, error) {
	if e, ok := s[id]; ok {
		return e, nil
	}
	return nil, apperrors.ErrEventNotFound
}

func newFeedServer(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(zerolog.Nop())
	go hub.Run(ctx)

	events := stubEvents{7: {ID: 7, Capacity: 50, RegistrationCount: 3, RegistrationVersion: 3}}
	r := gin.New()
	r.GET("/events/:id/live", NewHandler(hub, events, nil, zerolog.Nop()).HandleConnection)

	srv := httptest.NewServer(r)
	t.Cleanup(func() {
		srv.Close()
		cancel()
	})
	return hub, srv
}

func readMessage(t *testing.T, conn *gws.Conn) Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var m Message
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("decode %q: %v", data, err)
	}
	return m
}

func TestFeedSendsSnapshotThenUpdates(t *testing.T) {
	hub, srv := newFeedServer(t)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/events/7/live"
	conn, _, err := gws.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	snap := readMessage(t, conn)
	if snap.Type != MessageTypeRegistration || snap.EventID != 7 || snap.RegistrationCount != 3 || snap.Capacity != 50 {
		t.Fatalf("snapshot = %+v", snap)
	}

	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientsCount(7) == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never joined the room")
		}
		time.Sleep(5 * time.Millisecond)
	}

	// other rooms are not delivered here
	hub.NotifyRegistration(&models.RegistrationState{EventID: 8, RegistrationCount: 1, Capacity: 2, Version: 1})
	hub.NotifyRegistration(&models.RegistrationState{EventID: 7, RegistrationCount: 4, Capacity: 50, Version: 4})

	update := readMessage(t, conn)
	if update.EventID != 7 || update.RegistrationCount != 4 || update.Version != 4 {
		t.Fatalf("update = %+v", update)
	}
}

func dialFeed(t *testing.T, hub *Hub, srv *httptest.Server, eventID int64) *gws.Conn {
	t.Helper()
	url := fmt.Sprintf("ws%s/events/%d/live", strings.TrimPrefix(srv.URL, "http"), eventID)
	conn, _, err := gws.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientsCount(eventID) == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never joined the room")
		}
		time.Sleep(5 * time.Millisecond)
	}
	return conn
}

func TestFeedDropsOutOfOrderUpdates(t *testing.T) {
	hub, srv := newFeedServer(t)
	conn := dialFeed(t, hub, srv, 7)
	if snap := readMessage(t, conn); snap.Version != 3 {
		t.Fatalf("snapshot = %+v", snap)
	}

	// committed as versions 4, 5 and 6 but published 5, 4, 3, 6
	hub.NotifyRegistration(&models.RegistrationState{EventID: 7, RegistrationCount: 5, Capacity: 50, Version: 5})
	hub.NotifyRegistration(&models.RegistrationState{EventID: 7, RegistrationCount: 4, Capacity: 50, Version: 4})
	hub.NotifyRegistration(&models.RegistrationState{EventID: 7, RegistrationCount: 3, Capacity: 50, Version: 3})
	hub.NotifyRegistration(&models.RegistrationState{EventID: 7, RegistrationCount: 6, Capacity: 50, Version: 6})

	for _, want := range []int{5, 6} {
		m := readMessage(t, conn)
		if m.RegistrationCount != want {
			t.Fatalf("count = %d, want %d (%+v)", m.RegistrationCount, want, m)
		}
	}
}

func TestFeedUnknownEvent(t *testing.T) {
	_, srv := newFeedServer(t)

	resp, err := http.Get(srv.URL + "/events/99/live")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	resp2, err := http.Get(srv.URL + "/events/abc/live")
	if err != nil {
		t.Fatal(err)
	}
	defer resp2.Body.Close()
	if resp2.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d", resp2.StatusCode)
	}
}
