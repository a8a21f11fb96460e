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

package service

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/wecode-ai/wegent-console/entity"
	"github.com/wecode-ai/wegent-console/exception"
	"github.com/wecode-ai/wegent-console/repository"
	"github.com/wecode-ai/wegent-console/secctx"
	"github.com/wecode-ai/wegent-console/view"
)

type GroupService interface {
	CreateGroup(ctx context.Context, req view.GroupSaveRequest) (*view.Group, error)
	UpdateGroup(ctx context.Context, id string, req view.GroupSaveRequest) (*view.Group, error)
	GetGroup(ctx context.Context, id string) (*view.Group, error)
	ListGroups(ctx context.Context) (*view.Groups, error)
	DeleteGroup(ctx context.Context, id string) error
}

func NewGroupService(groupRepository repository.GroupRepository, botRepository repository.BotRepository) GroupService {
	return &groupServiceImpl{groupRepository: groupRepository, botRepository: botRepository}
}

type groupServiceImpl struct {
	groupRepository repository.GroupRepository
	botRepository   repository.BotRepository
}

func (g *groupServiceImpl) CreateGroup(ctx context.Context, req view.GroupSaveRequest) (*view.Group, error) {
	if err := g.validateSaveRequest(ctx, req); err != nil {
		return nil, err
	}

	now := time.Now()
	ent := entity.Group{
		Id:          uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
		BotIds:      req.BotIds,
		Members:     req.Members,
		CreatedAt:   now,
		CreatedBy:   secctx.GetUserId(ctx),
		UpdatedAt:   now,
	}
	if err := g.groupRepository.SaveGroup(ctx, ent); err != nil {
		return nil, err
	}

	group := entity.MakeGroupView(ent)
	return &group, nil
}

func (g *groupServiceImpl) UpdateGroup(ctx context.Context, id string, req view.GroupSaveRequest) (*view.Group, error) {
	existing, err := g.groupRepository.GetGroupById(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, entityNotFoundError("group", id)
	}

	if err := g.validateSaveRequest(ctx, req); err != nil {
		return nil, err
	}

	existing.Name = req.Name
	existing.Description = req.Description
	existing.BotIds = req.BotIds
	existing.Members = req.Members
	if err := g.groupRepository.UpdateGroup(ctx, *existing); err != nil {
		return nil, err
	}

	group := entity.MakeGroupView(*existing)
	return &group, nil
}

func (g *groupServiceImpl) validateSaveRequest(ctx context.Context, req view.GroupSaveRequest) error {
	if req.Name == "" {
		return &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.InvalidEntityName,
			Message: exception.InvalidEntityNameMsg,
			Params:  map[string]interface{}{"entity": "group", "name": req.Name},
		}
	}
	if len(req.BotIds) == 0 {
		return &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.RequiredParamsMissing,
			Message: exception.RequiredParamsMissingMsg,
			Params:  map[string]interface{}{"params": "botIds"},
		}
	}
	for _, botId := range req.BotIds {
		bot, err := g.botRepository.GetBotById(ctx, botId)
		if err != nil {
			return err
		}
		if bot == nil {
			return entityNotFoundError("bot", botId)
		}
	}
	return nil
}

func (g *groupServiceImpl) GetGroup(ctx context.Context, id string) (*view.Group, error) {
	ent, err := g.groupRepository.GetGroupById(ctx, id)
	if err != nil {
		return nil, err
	}
	if ent == nil {
		return nil, entityNotFoundError("group", id)
	}
	group := entity.MakeGroupView(*ent)
	return &group, nil
}

func (g *groupServiceImpl) ListGroups(ctx context.Context) (*view.Groups, error) {
	ents, err := g.groupRepository.ListGroups(ctx)
	if err != nil {
		return nil, err
	}
	groups := make([]view.Group, 0, len(ents))
	for _, ent := range ents {
		groups = append(groups, entity.MakeGroupView(ent))
	}
	return &view.Groups{Groups: groups}, nil
}

func (g *groupServiceImpl) DeleteGroup(ctx context.Context, id string) error {
	ent, err := g.groupRepository.GetGroupById(ctx, id)
	if err != nil {
		return err
	}
	if ent == nil {
		return entityNotFoundError("group", id)
	}
	return g.groupRepository.DeleteGroup(ctx, id)
}
