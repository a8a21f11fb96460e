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

type BotService interface {
	CreateBot(ctx context.Context, req view.BotSaveRequest) (*view.Bot, error)
	UpdateBot(ctx context.Context, id string, req view.BotSaveRequest) (*view.Bot, error)
	GetBot(ctx context.Context, id string) (*view.Bot, error)
	ListBots(ctx context.Context) (*view.Bots, error)
	DeleteBot(ctx context.Context, id string) error
}

func NewBotService(botRepository repository.BotRepository, shellRepository repository.ShellRepository,
	modelRepository repository.ModelRepository, taskRepository repository.TaskRepository) BotService {
	return &botServiceImpl{
		botRepository:   botRepository,
		shellRepository: shellRepository,
		modelRepository: modelRepository,
		taskRepository:  taskRepository,
	}
}

type botServiceImpl struct {
	botRepository   repository.BotRepository
	shellRepository repository.ShellRepository
	modelRepository repository.ModelRepository
	taskRepository  repository.TaskRepository
}

func (b *botServiceImpl) CreateBot(ctx context.Context, req view.BotSaveRequest) (*view.Bot, error) {
	if err := b.validateSaveRequest(ctx, req); err != nil {
		return nil, err
	}

	now := time.Now()
	ent := entity.Bot{
		Id:               uuid.New().String(),
		Name:             req.Name,
		ShellId:          req.ShellId,
		LLMModelId:       req.LLMModelId,
		EmbeddingModelId: req.EmbeddingModelId,
		RerankModelId:    req.RerankModelId,
		SystemPrompt:     req.SystemPrompt,
		CreatedAt:        now,
		CreatedBy:        secctx.GetUserId(ctx),
		UpdatedAt:        now,
	}
	if err := b.botRepository.SaveBot(ctx, ent); err != nil {
		return nil, err
	}

	bot := entity.MakeBotView(ent)
	return &bot, nil
}

func (b *botServiceImpl) UpdateBot(ctx context.Context, id string, req view.BotSaveRequest) (*view.Bot, error) {
	existing, err := b.botRepository.GetBotById(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, entityNotFoundError("bot", id)
	}

	if err := b.validateSaveRequest(ctx, req); err != nil {
		return nil, err
	}

	existing.Name = req.Name
	existing.ShellId = req.ShellId
	existing.LLMModelId = req.LLMModelId
	existing.EmbeddingModelId = req.EmbeddingModelId
	existing.RerankModelId = req.RerankModelId
	existing.SystemPrompt = req.SystemPrompt
	if err := b.botRepository.UpdateBot(ctx, *existing); err != nil {
		return nil, err
	}

	bot := entity.MakeBotView(*existing)
	return &bot, nil
}

func (b *botServiceImpl) validateSaveRequest(ctx context.Context, req view.BotSaveRequest) error {
	if req.Name == "" || req.ShellId == "" || req.LLMModelId == "" {
		return &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.RequiredParamsMissing,
			Message: exception.RequiredParamsMissingMsg,
			Params:  map[string]interface{}{"params": "name, shellId, llmModelId"},
		}
	}

	shell, err := b.shellRepository.GetShellById(ctx, req.ShellId)
	if err != nil {
		return err
	}
	if shell == nil {
		return entityNotFoundError("shell", req.ShellId)
	}

	if err := b.checkModelRef(ctx, req.LLMModelId, view.LLMModel); err != nil {
		return err
	}
	if req.EmbeddingModelId != "" {
		if err := b.checkModelRef(ctx, req.EmbeddingModelId, view.EmbeddingModel); err != nil {
			return err
		}
	}
	if req.RerankModelId != "" {
		if err := b.checkModelRef(ctx, req.RerankModelId, view.RerankModel); err != nil {
			return err
		}
	}
	return nil
}

func (b *botServiceImpl) checkModelRef(ctx context.Context, modelId string, category view.ModelCategory) error {
	model, err := b.modelRepository.GetModelById(ctx, modelId)
	if err != nil {
		return err
	}
	if model == nil {
		return entityNotFoundError("model", modelId)
	}
	if model.Category != string(category) {
		return &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.InvalidParameterValue,
			Message: exception.InvalidParameterValueMsg,
			Params:  map[string]interface{}{"param": string(category) + "ModelId", "value": modelId},
		}
	}
	return nil
}

func entityNotFoundError(entityName string, id string) error {
	return &exception.CustomError{
		Status:  http.StatusNotFound,
		Code:    exception.EntityNotFound,
		Message: exception.EntityNotFoundMsg,
		Params:  map[string]interface{}{"entity": entityName, "id": id},
	}
}

func (b *botServiceImpl) GetBot(ctx context.Context, id string) (*view.Bot, error) {
	ent, err := b.botRepository.GetBotById(ctx, id)
	if err != nil {
		return nil, err
	}
	if ent == nil {
		return nil, entityNotFoundError("bot", id)
	}
	bot := entity.MakeBotView(*ent)
	return &bot, nil
}

func (b *botServiceImpl) ListBots(ctx context.Context) (*view.Bots, error) {
	ents, err := b.botRepository.ListBots(ctx)
	if err != nil {
		return nil, err
	}
	bots := make([]view.Bot, 0, len(ents))
	for _, ent := range ents {
		bots = append(bots, entity.MakeBotView(ent))
	}
	return &view.Bots{Bots: bots}, nil
}

func (b *botServiceImpl) DeleteBot(ctx context.Context, id string) error {
	ent, err := b.botRepository.GetBotById(ctx, id)
	if err != nil {
		return err
	}
	if ent == nil {
		return entityNotFoundError("bot", id)
	}

	active, err := b.taskRepository.CountActiveTasksByBotId(ctx, id)
	if err != nil {
		return err
	}
	if active > 0 {
		return &exception.CustomError{
			Status:  http.StatusConflict,
			Code:    exception.EntityReferenced,
			Message: exception.EntityReferencedMsg,
			Params:  map[string]interface{}{"entity": "bot", "id": id, "refCount": active},
		}
	}

	return b.botRepository.DeleteBot(ctx, id)
}
