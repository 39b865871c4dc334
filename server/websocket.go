package server

import (
	"net/http"
	"net/url"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/aeroswipe/aeroswipe/engine"
	"github.com/aeroswipe/aeroswipe/utils"
)

// backlogSize bounds how many recent events are replayed to a subscriber
// that connects after the fact.
const backlogSize = 32

type wsConnection struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func (wsc *wsConnection) sendJSON(v interface{}) error {
	wsc.writeMu.Lock()
	defer wsc.writeMu.Unlock()
	return wsc.conn.WriteJSON(v)
}

// hub fans engine events out to websocket subscribers and retains a small
// backlog for late joiners.
type hub struct {
	upgrader websocket.Upgrader

	mu          sync.Mutex
	subscribers map[string]*wsConnection
	backlog     *lru.Cache[uint64, engine.Event]
	seq         uint64
}

func newHub() *hub {
	backlog, _ := lru.New[uint64, engine.Event](backlogSize)
	return &hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     isSameOrigin,
		},
		subscribers: make(map[string]*wsConnection),
		backlog:     backlog,
	}
}

func isSameOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}

	originURL, err := url.Parse(origin)
	if err != nil {
		return false
	}

	return originURL.Host == r.Host
}

// broadcast is registered as an engine listener.
func (h *hub) broadcast(ev engine.Event) {
	h.mu.Lock()
	h.seq++
	h.backlog.Add(h.seq, ev)
	subscribers := make(map[string]*wsConnection, len(h.subscribers))
	for id, wsc := range h.subscribers {
		subscribers[id] = wsc
	}
	h.mu.Unlock()

	for id, wsc := range subscribers {
		if err := wsc.sendJSON(ev); err != nil {
			utils.Verbose("dropping events subscriber %s: %v", id, err)
			h.remove(id)
		}
	}
}

func (h *hub) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		utils.Warn("websocket upgrade failed: %v", err)
		return
	}

	id := uuid.NewString()
	wsc := &wsConnection{conn: conn}

	// replay the retained backlog before going live; Keys is ordered
	// oldest to newest
	h.mu.Lock()
	for _, seq := range h.backlog.Keys() {
		if ev, ok := h.backlog.Peek(seq); ok {
			if err := wsc.sendJSON(ev); err != nil {
				h.mu.Unlock()
				_ = conn.Close()
				return
			}
		}
	}
	h.subscribers[id] = wsc
	h.mu.Unlock()

	utils.Verbose("events subscriber %s connected", id)

	// subscribers only listen; the read loop just detects the close
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.remove(id)
	utils.Verbose("events subscriber %s disconnected", id)
}

func (h *hub) remove(id string) {
	h.mu.Lock()
	wsc, ok := h.subscribers[id]
	if ok {
		delete(h.subscribers, id)
	}
	h.mu.Unlock()

	if ok {
		_ = wsc.conn.Close()
	}
}

func (h *hub) closeAll() {
	h.mu.Lock()
	subscribers := h.subscribers
	h.subscribers = make(map[string]*wsConnection)
	h.mu.Unlock()

	for _, wsc := range subscribers {
		_ = wsc.conn.Close()
	}
}
