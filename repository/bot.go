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

type BotRepository interface {
	SaveBot(ctx context.Context, ent entity.Bot) error
	UpdateBot(ctx context.Context, ent entity.Bot) error
	GetBotById(ctx context.Context, id string) (*entity.Bot, error)
	ListBots(ctx context.Context) ([]entity.Bot, error)
	DeleteBot(ctx context.Context, id string) error
	CountBotsByShellId(ctx context.Context, shellId string) (int, error)
	CountBotsByModelId(ctx context.Context, modelId string) (int, error)
}

func NewBotRepository(cp db.ConnectionProvider) BotRepository {
	return &botRepositoryImpl{cp: cp}
}

type botRepositoryImpl struct {
	cp db.ConnectionProvider
}

func (r *botRepositoryImpl) SaveBot(ctx context.Context, ent entity.Bot) error {
	_, err := r.cp.GetConnection().ModelContext(ctx, &ent).Insert()
	return err
}

func (r *botRepositoryImpl) UpdateBot(ctx context.Context, ent entity.Bot) error {
	ent.UpdatedAt = time.Now()
	_, err := r.cp.GetConnection().ModelContext(ctx, &ent).WherePK().Update()
	return err
}

func (r *botRepositoryImpl) GetBotById(ctx context.Context, id string) (*entity.Bot, error) {
	var bot entity.Bot
	err := r.cp.GetConnection().ModelContext(ctx, &bot).
		Where("id = ?", id).
		Select()
	if err != nil {
		if errors.Is(err, pg.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &bot, nil
}

func (r *botRepositoryImpl) ListBots(ctx context.Context) ([]entity.Bot, error) {
	var bots []entity.Bot
	err := r.cp.GetConnection().ModelContext(ctx, &bots).
		Order("created_at DESC").
		Select()
	if err != nil {
		if errors.Is(err, pg.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return bots, nil
}

func (r *botRepositoryImpl) DeleteBot(ctx context.Context, id string) error {
	_, err := r.cp.GetConnection().ModelContext(ctx, (*entity.Bot)(nil)).
		Where("id = ?", id).
		Delete()
	return err
}

func (r *botRepositoryImpl) CountBotsByShellId(ctx context.Context, shellId string) (int, error) {
	return r.cp.GetConnection().ModelContext(ctx, (*entity.Bot)(nil)).
		Where("shell_id = ?", shellId).
		Count()
}

func (r *botRepositoryImpl) CountBotsByModelId(ctx context.Context, modelId string) (int, error) {
	return r.cp.GetConnection().ModelContext(ctx, (*entity.Bot)(nil)).
		WhereGroup(func(q *pg.Query) (*pg.Query, error) {
			return q.WhereOr("llm_model_id = ?", modelId).
				WhereOr("embedding_model_id = ?", modelId).
				WhereOr("rerank_model_id = ?", modelId), nil
		}).
		Count()
}
