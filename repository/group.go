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

type GroupRepository interface {
	SaveGroup(ctx context.Context, ent entity.Group) error
	UpdateGroup(ctx context.Context, ent entity.Group) error
	GetGroupById(ctx context.Context, id string) (*entity.Group, error)
	ListGroups(ctx context.Context) ([]entity.Group, error)
	DeleteGroup(ctx context.Context, id string) error
}

func NewGroupRepository(cp db.ConnectionProvider) GroupRepository {
	return &groupRepositoryImpl{cp: cp}
}

type groupRepositoryImpl struct {
	cp db.ConnectionProvider
}

func (r *groupRepositoryImpl) SaveGroup(ctx context.Context, ent entity.Group) error {
	_, err := r.cp.GetConnection().ModelContext(ctx, &ent).Insert()
	return err
}

func (r *groupRepositoryImpl) UpdateGroup(ctx context.Context, ent entity.Group) error {
	ent.UpdatedAt = time.Now()
	_, err := r.cp.GetConnection().ModelContext(ctx, &ent).WherePK().Update()
	return err
}

func (r *groupRepositoryImpl) GetGroupById(ctx context.Context, id string) (*entity.Group, error) {
	var group entity.Group
	err := r.cp.GetConnection().ModelContext(ctx, &group).
		Where("id = ?", id).
		Select()
	if err != nil {
		if errors.Is(err, pg.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &group, nil
}

func (r *groupRepositoryImpl) ListGroups(ctx context.Context) ([]entity.Group, error) {
	var groups []entity.Group
	err := r.cp.GetConnection().ModelContext(ctx, &groups).
		Order("created_at DESC").
		Select()
	if err != nil {
		if errors.Is(err, pg.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return groups, nil
}

func (r *groupRepositoryImpl) DeleteGroup(ctx context.Context, id string) error {
	_, err := r.cp.GetConnection().ModelContext(ctx, (*entity.Group)(nil)).
		Where("id = ?", id).
		Delete()
	return err
}
