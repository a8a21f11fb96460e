package entity

import (
	"time"

	"github.com/wecode-ai/wegent-console/view"
)

type Task struct {
	tableName struct{} `pg:"task"`

	Id        string          `pg:"id,pk,type:varchar"`
	Title     string          `pg:"title,type:varchar,notnull"`
	BotId     string          `pg:"bot_id,type:varchar,notnull"`
	GroupId   string          `pg:"group_id,type:varchar"`
	Status    view.TaskStatus `pg:"status,type:varchar,notnull"`
	Details   string          `pg:"details,type:varchar"`
	CreatedAt time.Time       `pg:"created_at,type:timestamp without time zone,notnull"`
	CreatedBy string          `pg:"created_by,type:varchar"`
	UpdatedAt time.Time       `pg:"updated_at,type:timestamp without time zone,notnull"`
}

type TaskMessage struct {
	tableName struct{} `pg:"task_message"`

	Id        string    `pg:"id,pk,type:varchar"`
	TaskId    string    `pg:"task_id,type:varchar,notnull"`
	Role      string    `pg:"role,type:varchar,notnull"`
	Content   string    `pg:"content,type:text,notnull"`
	CreatedAt time.Time `pg:"created_at,type:timestamp without time zone,notnull"`
}

func MakeTaskView(ent Task) view.Task {
	return view.Task{
		Id:        ent.Id,
		Title:     ent.Title,
		BotId:     ent.BotId,
		GroupId:   ent.GroupId,
		Status:    ent.Status,
		Details:   ent.Details,
		CreatedAt: ent.CreatedAt,
		CreatedBy: ent.CreatedBy,
		UpdatedAt: ent.UpdatedAt,
	}
}

func MakeTaskMessageView(ent TaskMessage) view.TaskMessage {
	return view.TaskMessage{
		Id:        ent.Id,
		TaskId:    ent.TaskId,
		Role:      view.MessageRole(ent.Role),
		Content:   ent.Content,
		CreatedAt: ent.CreatedAt,
	}
}
