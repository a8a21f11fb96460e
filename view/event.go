package view

// Event is pushed to connected consoles over the websocket endpoint and
// relayed between replicas over the cluster topic.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

const (
	EventValidationCompleted = "validation.completed"
	EventTaskStatus          = "task.status"
)
