// Copyright 2024-2025 WeCode AI Technologies Ltd.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package service

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"github.com/wecode-ai/wegent-console/view"
)

const wsWriteTimeout = time.Second * 10

// EventHub fans events out to the websocket connections of this replica.
// Cross-replica delivery goes through the EventBroadcaster which calls
// BroadcastLocal on every node.
type EventHub interface {
	RegisterConnection(userId string, conn *websocket.Conn)
	BroadcastLocal(event view.Event)
	ConnectionCount() int
}

func NewEventHub() EventHub {
	return &eventHubImpl{connections: make(map[*websocket.Conn]string)}
}

type eventHubImpl struct {
	mutex       sync.RWMutex
	connections map[*websocket.Conn]string
	// gorilla/websocket allows a single concurrent writer per connection
	writeMutex sync.Mutex
}

func (h *eventHubImpl) RegisterConnection(userId string, conn *websocket.Conn) {
	h.mutex.Lock()
	h.connections[conn] = userId
	h.mutex.Unlock()

	log.Debugf("Websocket connection registered for user %s", userId)

	// Reader loop only drains control frames and detects disconnect, the
	// console never sends data frames.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				h.unregister(conn)
				return
			}
		}
	}()
}

func (h *eventHubImpl) unregister(conn *websocket.Conn) {
	h.mutex.Lock()
	userId, exists := h.connections[conn]
	delete(h.connections, conn)
	h.mutex.Unlock()

	if exists {
		log.Debugf("Websocket connection closed for user %s", userId)
	}
	_ = conn.Close()
}

func (h *eventHubImpl) BroadcastLocal(event view.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Errorf("Failed to marshal event %s: %v", event.Type, err)
		return
	}

	h.mutex.RLock()
	conns := make([]*websocket.Conn, 0, len(h.connections))
	for conn := range h.connections {
		conns = append(conns, conn)
	}
	h.mutex.RUnlock()

	h.writeMutex.Lock()
	defer h.writeMutex.Unlock()
	for _, conn := range conns {
		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Debugf("Failed to write event to websocket, dropping connection: %v", err)
			h.unregister(conn)
		}
	}
}

func (h *eventHubImpl) ConnectionCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.connections)
}
