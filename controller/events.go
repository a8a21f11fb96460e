package controller

import (
	"net/http"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"github.com/shaj13/go-guardian/v2/auth"
	"github.com/wecode-ai/wegent-console/service"
)

type EventsController interface {
	ConnectEvents(w http.ResponseWriter, r *http.Request)
}

func NewEventsController(eventHub service.EventHub, originAllowed string) EventsController {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
	}
	if originAllowed != "" {
		upgrader.CheckOrigin = func(r *http.Request) bool {
			return r.Header.Get("Origin") == originAllowed
		}
	}
	return &eventsControllerImpl{eventHub: eventHub, upgrader: upgrader}
}

type eventsControllerImpl struct {
	eventHub service.EventHub
	upgrader websocket.Upgrader
}

// ConnectEvents upgrades the request to a websocket and subscribes it to
// console events. Auth already happened in the middleware.
func (c *eventsControllerImpl) ConnectEvents(w http.ResponseWriter, r *http.Request) {
	userId := auth.User(r).GetID()

	conn, err := c.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the error response
		log.Debugf("Websocket upgrade failed for user %s: %v", userId, err)
		return
	}

	c.eventHub.RegisterConnection(userId, conn)
}
