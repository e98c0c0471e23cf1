package services

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
)

type WSClient struct {
	PersonID string
	Conn     *websocket.Conn
}

// RealtimeHub tracks open websocket sessions per person so alerts can be
// pushed to every device where they are signed in.
type RealtimeHub struct {
	mu      sync.RWMutex
	clients map[string]map[*WSClient]struct{}
}

func NewRealtimeHub() *RealtimeHub {
	return &RealtimeHub{clients: make(map[string]map[*WSClient]struct{})}
}

func (h *RealtimeHub) Register(c *WSClient) {
	h.mu.Lock()
	if h.clients[c.PersonID] == nil {
		h.clients[c.PersonID] = make(map[*WSClient]struct{})
	}
	h.clients[c.PersonID][c] = struct{}{}
	h.mu.Unlock()
}

func (h *RealtimeHub) Unregister(c *WSClient) {
	h.mu.Lock()
	if set := h.clients[c.PersonID]; set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.PersonID)
		}
	}
	h.mu.Unlock()
	_ = c.Conn.Close()
}

func (h *RealtimeHub) BroadcastAlert(personID string, payload any) {
	msg, _ := json.Marshal(payload)
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients[personID] {
		_ = c.Conn.WriteMessage(websocket.TextMessage, msg)
	}
}
