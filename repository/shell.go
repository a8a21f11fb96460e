package repository

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-pg/pg/v10"
	"github.com/wecode-ai/wegent-console/db"
	"github.com/wecode-ai/wegent-console/entity"
	"github.com/wecode-ai/wegent-console/exception"
	"github.com/wecode-ai/wegent-console/utils"
	"github.com/wecode-ai/wegent-console/view"
)

type ShellRepository interface {
	SaveShell(ctx context.Context, ent entity.Shell) error
	UpdateShell(ctx context.Context, ent entity.Shell) error
	GetShellById(ctx context.Context, id string) (*entity.Shell, error)
	GetShellByName(ctx context.Context, name string) (*entity.Shell, error)
	ListShells(ctx context.Context, req view.ShellListReq) ([]entity.Shell, error)
	DeleteShell(ctx context.Context, id string) error
}

func NewShellRepository(cp db.ConnectionProvider) ShellRepository {
	return &shellRepositoryImpl{cp: cp}
}

type shellRepositoryImpl struct {
	cp db.ConnectionProvider
}

func (r *shellRepositoryImpl) SaveShell(ctx context.Context, ent entity.Shell) error {
	_, err := r.cp.GetConnection().ModelContext(ctx, &ent).Insert()
	if err != nil {
		var pgerr pg.Error
		if errors.As(err, &pgerr) {
			if pgerr.Field('C') == "23505" && strings.Contains(err.Error(), "shell_name_unique") {
				return &exception.CustomError{
					Status:  http.StatusConflict,
					Code:    exception.EntityNameAlreadyTaken,
					Message: exception.EntityNameAlreadyTakenMsg,
					Params:  map[string]interface{}{"entity": "shell", "name": ent.Name},
				}
			}
		}
		return err
	}
	return nil
}

func (r *shellRepositoryImpl) UpdateShell(ctx context.Context, ent entity.Shell) error {
	ent.UpdatedAt = time.Now()
	_, err := r.cp.GetConnection().ModelContext(ctx, &ent).WherePK().Update()
	return err
}

func (r *shellRepositoryImpl) GetShellById(ctx context.Context, id string) (*entity.Shell, error) {
	var shell entity.Shell
	err := r.cp.GetConnection().ModelContext(ctx, &shell).
		Where("id = ?", id).
		Select()
	if err != nil {
		if errors.Is(err, pg.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &shell, nil
}

func (r *shellRepositoryImpl) GetShellByName(ctx context.Context, name string) (*entity.Shell, error) {
	var shell entity.Shell
	err := r.cp.GetConnection().ModelContext(ctx, &shell).
		Where("name = ?", name).
		Select()
	if err != nil {
		if errors.Is(err, pg.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &shell, nil
}

func (r *shellRepositoryImpl) ListShells(ctx context.Context, req view.ShellListReq) ([]entity.Shell, error) {
	var shells []entity.Shell

	query := r.cp.GetConnection().ModelContext(ctx, &shells).Order("created_at DESC")
	if req.TextFilter != "" {
		query.Where("name ILIKE ?", "%"+utils.LikeEscaped(req.TextFilter)+"%")
	}
	if req.ShellType != "" {
		query.Where("shell_type = ?", req.ShellType)
	}
	if req.Limit != nil {
		query.Limit(*req.Limit)
		if req.Page != nil {
			query.Offset(*req.Limit * *req.Page)
		}
	}

	err := query.Select()
	if err != nil {
		if errors.Is(err, pg.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return shells, nil
}

func (r *shellRepositoryImpl) DeleteShell(ctx context.Context, id string) error {
	_, err := r.cp.GetConnection().ModelContext(ctx, (*entity.Shell)(nil)).
		Where("id = ?", id).
		Delete()
	return err
}
