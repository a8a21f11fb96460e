package entity

import (
	"time"

	"github.com/wecode-ai/wegent-console/view"
)

type Group struct {
	tableName struct{} `pg:"bot_group"`

	Id          string    `pg:"id,pk,type:varchar"`
	Name        string    `pg:"name,type:varchar,notnull"`
	Description string    `pg:"description,type:varchar"`
	BotIds      []string  `pg:"bot_ids,type:jsonb"`
	Members     []string  `pg:"members,type:jsonb"`
	CreatedAt   time.Time `pg:"created_at,type:timestamp without time zone,notnull"`
	CreatedBy   string    `pg:"created_by,type:varchar"`
	UpdatedAt   time.Time `pg:"updated_at,type:timestamp without time zone,notnull"`
}

func MakeGroupView(ent Group) view.Group {
	botIds := ent.BotIds
	if botIds == nil {
		botIds = make([]string, 0)
	}
	members := ent.Members
	if members == nil {
		members = make([]string, 0)
	}
	return view.Group{
		Id:          ent.Id,
		Name:        ent.Name,
		Description: ent.Description,
		BotIds:      botIds,
		Members:     members,
		CreatedAt:   ent.CreatedAt,
		CreatedBy:   ent.CreatedBy,
		UpdatedAt:   ent.UpdatedAt,
	}
}
