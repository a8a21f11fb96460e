package view

import "time"

type TaskStatus string

const (
	TaskStatusPending        TaskStatus = "pending"
	TaskStatusRunning        TaskStatus = "running"
	TaskStatusWaitingConfirm TaskStatus = "waiting_confirm" // clarification requested from the user
	TaskStatusCompleted      TaskStatus = "completed"
	TaskStatusFailed         TaskStatus = "failed"
	TaskStatusCancelled      TaskStatus = "cancelled"
)

func (s TaskStatus) IsTerminal() bool {
	switch s {
	case TaskStatusCompleted, TaskStatusFailed, TaskStatusCancelled:
		return true
	default:
		return false
	}
}

func ValidTaskStatus(s TaskStatus) bool {
	switch s {
	case TaskStatusPending, TaskStatusRunning, TaskStatusWaitingConfirm,
		TaskStatusCompleted, TaskStatusFailed, TaskStatusCancelled:
		return true
	default:
		return false
	}
}

type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
	RoleThinking  MessageRole = "thinking" // streamed reasoning trace, rendered collapsed
	RoleSystem    MessageRole = "system"
)

type Task struct {
	Id        string     `json:"id"`
	Title     string     `json:"title"`
	BotId     string     `json:"botId"`
	GroupId   string     `json:"groupId,omitempty"`
	Status    TaskStatus `json:"status"`
	Details   string     `json:"details,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	CreatedBy string     `json:"createdBy,omitempty"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

type Tasks struct {
	Tasks []Task `json:"tasks"`
}

type TaskMessage struct {
	Id        string      `json:"id"`
	TaskId    string      `json:"taskId"`
	Role      MessageRole `json:"role"`
	Content   string      `json:"content"`
	CreatedAt time.Time   `json:"createdAt"`
}

type TaskWithMessages struct {
	Task
	Messages []TaskMessage `json:"messages"`
}

type TaskCreateRequest struct {
	Title   string `json:"title"`
	BotId   string `json:"botId"`
	GroupId string `json:"groupId,omitempty"`
	Prompt  string `json:"prompt,omitempty"`
}

type TaskMessageRequest struct {
	Role    MessageRole `json:"role"`
	Content string      `json:"content"`
}

type TaskStatusRequest struct {
	Status  TaskStatus `json:"status"`
	Details string     `json:"details,omitempty"`
}
