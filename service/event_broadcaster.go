package service

import (
	"encoding/json"
	"sync"

	"github.com/buraksezer/olric"
	log "github.com/sirupsen/logrus"
	"github.com/wecode-ai/wegent-console/client"
	"github.com/wecode-ai/wegent-console/utils"
	"github.com/wecode-ai/wegent-console/view"
)

const ConsoleEventsTopicName = "console-events"

// EventBroadcaster relays console events through the olric topic so every
// replica delivers them to its own websocket connections. Local delivery also
// goes through the topic, olric dispatches to the publishing node as well.
type EventBroadcaster interface {
	Start()
	Publish(event view.Event)

	ValidationCompleted(session view.ValidationSession)
	TaskStatusChanged(task view.Task)
}

func NewEventBroadcaster(op client.OlricProvider, eventHub EventHub) EventBroadcaster {
	eb := eventBroadcasterImpl{
		op:        op,
		eventHub:  eventHub,
		isReadyWg: sync.WaitGroup{},
	}
	return &eb
}

type eventBroadcasterImpl struct {
	op          client.OlricProvider
	eventHub    EventHub
	eventsTopic *olric.DTopic
	isReadyWg   sync.WaitGroup
}

func (e *eventBroadcasterImpl) Start() {
	e.isReadyWg.Add(1)
	utils.SafeAsync(func() {
		e.initEventsDTopic()
	})
}

func (e *eventBroadcasterImpl) initEventsDTopic() {
	defer e.isReadyWg.Done()

	topic, err := e.op.Get().NewDTopic(ConsoleEventsTopicName, 10000, olric.UnorderedDelivery)
	if err != nil {
		log.Errorf("Failed to create DTopic %s: %s", ConsoleEventsTopicName, err.Error())
		return
	}

	if _, err := topic.AddListener(e.listen); err != nil {
		log.Errorf("Failed to add listener to DTopic %s: %s", ConsoleEventsTopicName, err.Error())
		return
	}
	e.eventsTopic = topic
}

func (e *eventBroadcasterImpl) listen(message olric.DTopicMessage) {
	str, ok := message.Message.(string)
	if !ok {
		log.Warnf("EventBroadcaster.listen: unexpected event %+v, will not be processed", message.Message)
		return
	}

	var event view.Event

	err := json.Unmarshal([]byte(str), &event)
	if err != nil {
		log.Errorf("EventBroadcaster.listen: error unmarshalling event: %v", err)
		return
	}

	e.eventHub.BroadcastLocal(event)
}

func (e *eventBroadcasterImpl) Publish(event view.Event) {
	e.isReadyWg.Wait()
	if e.eventsTopic == nil {
		// Topic creation failed on startup, degrade to this replica only.
		e.eventHub.BroadcastLocal(event)
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Errorf("Failed to marshal event %s: %v", event.Type, err)
		return
	}
	if err := e.eventsTopic.Publish(string(data)); err != nil {
		log.Errorf("Failed to publish event %s to topic %s: %v", event.Type, ConsoleEventsTopicName, err)
		e.eventHub.BroadcastLocal(event)
	}
}

func (e *eventBroadcasterImpl) ValidationCompleted(session view.ValidationSession) {
	utils.SafeAsync(func() {
		e.Publish(view.Event{Type: view.EventValidationCompleted, Payload: session})
	})
}

func (e *eventBroadcasterImpl) TaskStatusChanged(task view.Task) {
	utils.SafeAsync(func() {
		e.Publish(view.Event{Type: view.EventTaskStatus, Payload: task})
	})
}
