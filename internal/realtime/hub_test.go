package realtime

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPublishRoutesBySalon(t *testing.T) {
	hub := NewHub(zap.NewNop(), nil)

	a := hub.Subscribe(1)
	b := hub.Subscribe(2)

	hub.Publish(Event{Type: "slot_liberated", SalonID: 1, Payload: map[string]int{"id": 7}})

	select {
	case msg := <-a.C:
		var ev Event
		require.NoError(t, json.Unmarshal(msg, &ev))
		assert.Equal(t, "slot_liberated", ev.Type)
	default:
		t.Fatal("salon 1 subscriber got nothing")
	}

	assert.Len(t, b.C, 0)
}

func TestSlowSubscriberIsDropped(t *testing.T) {
	hub := NewHub(zap.NewNop(), nil)
	sub := hub.Subscribe(1)

	for i := 0; i < sendBuffer+1; i++ {
		hub.Publish(Event{Type: "tick", SalonID: 1})
	}

	assert.Equal(t, 0, hub.Count(1))

	n := 0
	for range sub.C {
		n++
	}
	assert.Equal(t, sendBuffer, n)
}

func TestUnsubscribeIsIdempotent(t *testing.T) {
	hub := NewHub(zap.NewNop(), nil)
	sub := hub.Subscribe(3)

	hub.Unsubscribe(sub)
	hub.Unsubscribe(sub)

	assert.Equal(t, 0, hub.Count(3))
}

func TestServeStreamsEvents(t *testing.T) {
	hub := NewHub(zap.NewNop(), nil)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.Serve(w, r, 5)
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.Count(5) == 1 }, time.Second, 10*time.Millisecond)

	hub.Publish(Event{Type: "appointment_confirmed", SalonID: 5})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(msg), "appointment_confirmed")
}

func TestServeChecksOrigin(t *testing.T) {
	hub := NewHub(zap.NewNop(), []string{"https://painel.example"})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.Serve(w, r, 5)
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")

	cases := []struct {
		name   string
		origin string
		ok     bool
	}{
		{"allowed", "https://painel.example", true},
		{"same host", srv.URL, true},
		{"foreign", "https://evil.example", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			header := http.Header{"Origin": []string{tc.origin}}
			conn, resp, err := websocket.DefaultDialer.Dial(url, header)
			if !tc.ok {
				require.Error(t, err)
				require.NotNil(t, resp)
				assert.Equal(t, http.StatusForbidden, resp.StatusCode)
				return
			}
			require.NoError(t, err)
			conn.Close()
		})
	}
}
