// Copyright 2024-2025 WeCode AI Technologies Ltd.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package repository

import (
	"context"
	"errors"
	"time"

	"github.com/go-pg/pg/v10"
	"github.com/wecode-ai/wegent-console/db"
	"github.com/wecode-ai/wegent-console/entity"
)

type ModelRepository interface {
	SaveModel(ctx context.Context, ent entity.Model) error
	UpdateModel(ctx context.Context, ent entity.Model) error
	GetModelById(ctx context.Context, id string) (*entity.Model, error)
	ListModels(ctx context.Context, category string) ([]entity.Model, error)
	DeleteModel(ctx context.Context, id string) error
}

func NewModelRepository(cp db.ConnectionProvider) ModelRepository {
	return &modelRepositoryImpl{cp: cp}
}

type modelRepositoryImpl struct {
	cp db.ConnectionProvider
}

func (r *modelRepositoryImpl) SaveModel(ctx context.Context, ent entity.Model) error {
	_, err := r.cp.GetConnection().ModelContext(ctx, &ent).Insert()
	return err
}

func (r *modelRepositoryImpl) UpdateModel(ctx context.Context, ent entity.Model) error {
	ent.UpdatedAt = time.Now()
	_, err := r.cp.GetConnection().ModelContext(ctx, &ent).WherePK().Update()
	return err
}

func (r *modelRepositoryImpl) GetModelById(ctx context.Context, id string) (*entity.Model, error) {
	var model entity.Model
	err := r.cp.GetConnection().ModelContext(ctx, &model).
		Where("id = ?", id).
		Select()
	if err != nil {
		if errors.Is(err, pg.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &model, nil
}

func (r *modelRepositoryImpl) ListModels(ctx context.Context, category string) ([]entity.Model, error) {
	var models []entity.Model
	query := r.cp.GetConnection().ModelContext(ctx, &models).Order("created_at DESC")
	if category != "" {
		query.Where("category = ?", category)
	}
	err := query.Select()
	if err != nil {
		if errors.Is(err, pg.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return models, nil
}

func (r *modelRepositoryImpl) DeleteModel(ctx context.Context, id string) error {
	_, err := r.cp.GetConnection().ModelContext(ctx, (*entity.Model)(nil)).
		Where("id = ?", id).
		Delete()
	return err
}
