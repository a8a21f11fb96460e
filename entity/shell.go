package entity

import (
	"time"

	"github.com/wecode-ai/wegent-console/view"
)

type Shell struct {
	tableName struct{} `pg:"shell"`

	Id          string    `pg:"id,pk,type:varchar"`
	Name        string    `pg:"name,type:varchar,notnull"`
	ShellType   string    `pg:"shell_type,type:varchar,notnull"`
	BaseImage   string    `pg:"base_image,type:varchar"`
	Description string    `pg:"description,type:varchar"`
	CreatedAt   time.Time `pg:"created_at,type:timestamp without time zone,notnull"`
	CreatedBy   string    `pg:"created_by,type:varchar"`
	UpdatedAt   time.Time `pg:"updated_at,type:timestamp without time zone,notnull"`
}

func MakeShellView(ent Shell) view.Shell {
	return view.Shell{
		Id:          ent.Id,
		Name:        ent.Name,
		ShellType:   ent.ShellType,
		BaseImage:   ent.BaseImage,
		Description: ent.Description,
		CreatedAt:   ent.CreatedAt,
		CreatedBy:   ent.CreatedBy,
		UpdatedAt:   ent.UpdatedAt,
	}
}
