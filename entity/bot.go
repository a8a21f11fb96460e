package entity

import (
	"time"

	"github.com/wecode-ai/wegent-console/view"
)

type Bot struct {
	tableName struct{} `pg:"bot"`

	Id               string    `pg:"id,pk,type:varchar"`
	Name             string    `pg:"name,type:varchar,notnull"`
	ShellId          string    `pg:"shell_id,type:varchar,notnull"`
	LLMModelId       string    `pg:"llm_model_id,type:varchar,notnull"`
	EmbeddingModelId string    `pg:"embedding_model_id,type:varchar"`
	RerankModelId    string    `pg:"rerank_model_id,type:varchar"`
	SystemPrompt     string    `pg:"system_prompt,type:varchar"`
	CreatedAt        time.Time `pg:"created_at,type:timestamp without time zone,notnull"`
	CreatedBy        string    `pg:"created_by,type:varchar"`
	UpdatedAt        time.Time `pg:"updated_at,type:timestamp without time zone,notnull"`
}

func MakeBotView(ent Bot) view.Bot {
	return view.Bot{
		Id:               ent.Id,
		Name:             ent.Name,
		ShellId:          ent.ShellId,
		LLMModelId:       ent.LLMModelId,
		EmbeddingModelId: ent.EmbeddingModelId,
		RerankModelId:    ent.RerankModelId,
		SystemPrompt:     ent.SystemPrompt,
		CreatedAt:        ent.CreatedAt,
		CreatedBy:        ent.CreatedBy,
		UpdatedAt:        ent.UpdatedAt,
	}
}
