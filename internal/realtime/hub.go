package realtime

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	sendBuffer = 32
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
)

type Event struct {
	Type    string `json:"type"`
	SalonID uint   `json:"salon_id"`
	Payload any    `json:"payload"`
}

// Publisher é o lado de escrita do hub, usado pelos casos de uso.
type Publisher interface {
	Publish(ev Event)
}

type Subscription struct {
	salonID uint
	C       chan []byte
}

// Hub distribui eventos da agenda para os painéis abertos de cada salão.
type Hub struct {
	mu          sync.Mutex
	subscribers map[uint]map[*Subscription]struct{}
	log         *zap.Logger

	origins  map[string]struct{}
	upgrader websocket.Upgrader
}

// NewHub aceita conexões das origens listadas (as mesmas do CORS). Sem
// lista, só a própria origem do servidor é aceita.
func NewHub(log *zap.Logger, origins []string) *Hub {
	h := &Hub{
		subscribers: make(map[uint]map[*Subscription]struct{}),
		log:         log,
		origins:     make(map[string]struct{}, len(origins)),
	}
	for _, o := range origins {
		h.origins[o] = struct{}{}
	}
	h.upgrader = websocket.Upgrader{CheckOrigin: h.checkOrigin}
	return h
}

func (h *Hub) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	if _, ok := h.origins[origin]; ok {
		return true
	}

	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, r.Host)
}

func (h *Hub) Subscribe(salonID uint) *Subscription {
	sub := &Subscription{salonID: salonID, C: make(chan []byte, sendBuffer)}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subscribers[salonID] == nil {
		h.subscribers[salonID] = make(map[*Subscription]struct{})
	}
	h.subscribers[salonID][sub] = struct{}{}
	return sub
}

func (h *Hub) Unsubscribe(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.remove(sub)
}

// remove exige h.mu.
func (h *Hub) remove(sub *Subscription) {
	subs := h.subscribers[sub.salonID]
	if _, ok := subs[sub]; !ok {
		return
	}
	delete(subs, sub)
	close(sub.C)
	if len(subs) == 0 {
		delete(h.subscribers, sub.salonID)
	}
}

// Publish nunca bloqueia: assinante com a fila cheia é desconectado.
func (h *Hub) Publish(ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		h.log.Warn("realtime marshal failed", zap.String("type", ev.Type), zap.Error(err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for sub := range h.subscribers[ev.SalonID] {
		select {
		case sub.C <- data:
		default:
			h.log.Info("dropping slow realtime subscriber", zap.Uint("salon_id", ev.SalonID))
			h.remove(sub)
		}
	}
}

func (h *Hub) Count(salonID uint) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers[salonID])
}

// Serve faz o upgrade e mantém a conexão até o cliente sair.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, salonID uint) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Info("websocket upgrade failed", zap.Error(err))
		return
	}

	sub := h.Subscribe(salonID)
	go h.readPump(conn, sub)
	h.writePump(conn, sub)
}

// readPump só detecta a desconexão do cliente.
func (h *Hub) readPump(conn *websocket.Conn, sub *Subscription) {
	defer h.Unsubscribe(sub)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(conn *websocket.Conn, sub *Subscription) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case msg, ok := <-sub.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				h.Unsubscribe(sub)
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.Unsubscribe(sub)
				return
			}
		}
	}
}
