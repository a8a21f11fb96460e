package entity

import (
	"time"

	"github.com/wecode-ai/wegent-console/view"
)

type Model struct {
	tableName struct{} `pg:"model"`

	Id        string           `pg:"id,pk,type:varchar"`
	Name      string           `pg:"name,type:varchar,notnull"`
	Category  string           `pg:"category,type:varchar,notnull"`
	Provider  string           `pg:"provider,type:varchar,notnull"`
	BaseUrl   string           `pg:"base_url,type:varchar"`
	ApiKey    string           `pg:"api_key,type:varchar"`
	ModelName string           `pg:"model_name,type:varchar,notnull"`
	Config    view.ModelConfig `pg:"config,type:jsonb"`
	CreatedAt time.Time        `pg:"created_at,type:timestamp without time zone,notnull"`
	CreatedBy string           `pg:"created_by,type:varchar"`
	UpdatedAt time.Time        `pg:"updated_at,type:timestamp without time zone,notnull"`
}

// MakeModelView never exposes the stored api key.
func MakeModelView(ent Model) view.Model {
	return view.Model{
		Id:        ent.Id,
		Name:      ent.Name,
		Category:  view.ModelCategory(ent.Category),
		Provider:  ent.Provider,
		BaseUrl:   ent.BaseUrl,
		ModelName: ent.ModelName,
		Config:    ent.Config,
		CreatedAt: ent.CreatedAt,
		CreatedBy: ent.CreatedBy,
		UpdatedAt: ent.UpdatedAt,
	}
}
