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
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/invopop/jsonschema"
	"github.com/wecode-ai/wegent-console/client"
	"github.com/wecode-ai/wegent-console/entity"
	"github.com/wecode-ai/wegent-console/exception"
	"github.com/wecode-ai/wegent-console/repository"
	"github.com/wecode-ai/wegent-console/secctx"
	"github.com/wecode-ai/wegent-console/view"
)

type ModelService interface {
	CreateModel(ctx context.Context, req view.ModelSaveRequest) (*view.Model, error)
	UpdateModel(ctx context.Context, id string, req view.ModelSaveRequest) (*view.Model, error)
	GetModel(ctx context.Context, id string) (*view.Model, error)
	ListModels(ctx context.Context, category string) (*view.Models, error)
	DeleteModel(ctx context.Context, id string) error
	CheckModel(ctx context.Context, id string) (*view.ModelCheckResult, error)
	GetConfigSchema() interface{}
}

func NewModelService(modelRepository repository.ModelRepository, botRepository repository.BotRepository,
	llmClient client.LLMClient, embeddingClient client.EmbeddingClient) ModelService {
	return &modelServiceImpl{
		modelRepository: modelRepository,
		botRepository:   botRepository,
		llmClient:       llmClient,
		embeddingClient: embeddingClient,
		configSchema:    reflectConfigSchema(),
	}
}

type modelServiceImpl struct {
	modelRepository repository.ModelRepository
	botRepository   repository.BotRepository
	llmClient       client.LLMClient
	embeddingClient client.EmbeddingClient
	configSchema    interface{}
}

func reflectConfigSchema() interface{} {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	return reflector.Reflect(view.ModelConfig{})
}

func (m *modelServiceImpl) GetConfigSchema() interface{} {
	return m.configSchema
}

func (m *modelServiceImpl) CreateModel(ctx context.Context, req view.ModelSaveRequest) (*view.Model, error) {
	if err := validateModelSaveRequest(req); err != nil {
		return nil, err
	}

	now := time.Now()
	ent := entity.Model{
		Id:        uuid.New().String(),
		Name:      req.Name,
		Category:  string(req.Category),
		Provider:  req.Provider,
		BaseUrl:   req.BaseUrl,
		ApiKey:    req.ApiKey,
		ModelName: req.ModelName,
		Config:    req.Config,
		CreatedAt: now,
		CreatedBy: secctx.GetUserId(ctx),
		UpdatedAt: now,
	}
	if err := m.modelRepository.SaveModel(ctx, ent); err != nil {
		return nil, err
	}

	model := entity.MakeModelView(ent)
	return &model, nil
}

func (m *modelServiceImpl) UpdateModel(ctx context.Context, id string, req view.ModelSaveRequest) (*view.Model, error) {
	if err := validateModelSaveRequest(req); err != nil {
		return nil, err
	}

	existing, err := m.modelRepository.GetModelById(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, modelNotFoundError(id)
	}

	existing.Name = req.Name
	existing.Category = string(req.Category)
	existing.Provider = req.Provider
	existing.BaseUrl = req.BaseUrl
	existing.ModelName = req.ModelName
	existing.Config = req.Config
	if req.ApiKey != "" {
		// Empty api key in the request means "keep the stored one", the
		// console never has the stored key to echo back.
		existing.ApiKey = req.ApiKey
	}
	if err := m.modelRepository.UpdateModel(ctx, *existing); err != nil {
		return nil, err
	}

	model := entity.MakeModelView(*existing)
	return &model, nil
}

func validateModelSaveRequest(req view.ModelSaveRequest) error {
	if req.Name == "" || req.ModelName == "" {
		return &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.RequiredParamsMissing,
			Message: exception.RequiredParamsMissingMsg,
			Params:  map[string]interface{}{"params": "name, modelName"},
		}
	}
	if !view.ValidModelCategory(req.Category) {
		return &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.InvalidParameterValue,
			Message: exception.InvalidParameterValueMsg,
			Params:  map[string]interface{}{"param": "category", "value": string(req.Category)},
		}
	}
	return nil
}

func modelNotFoundError(id string) error {
	return &exception.CustomError{
		Status:  http.StatusNotFound,
		Code:    exception.EntityNotFound,
		Message: exception.EntityNotFoundMsg,
		Params:  map[string]interface{}{"entity": "model", "id": id},
	}
}

func (m *modelServiceImpl) GetModel(ctx context.Context, id string) (*view.Model, error) {
	ent, err := m.modelRepository.GetModelById(ctx, id)
	if err != nil {
		return nil, err
	}
	if ent == nil {
		return nil, modelNotFoundError(id)
	}
	model := entity.MakeModelView(*ent)
	return &model, nil
}

func (m *modelServiceImpl) ListModels(ctx context.Context, category string) (*view.Models, error) {
	if category != "" && !view.ValidModelCategory(view.ModelCategory(category)) {
		return nil, &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.InvalidParameterValue,
			Message: exception.InvalidParameterValueMsg,
			Params:  map[string]interface{}{"param": "category", "value": category},
		}
	}

	ents, err := m.modelRepository.ListModels(ctx, category)
	if err != nil {
		return nil, err
	}
	models := make([]view.Model, 0, len(ents))
	for _, ent := range ents {
		models = append(models, entity.MakeModelView(ent))
	}
	return &view.Models{Models: models}, nil
}

func (m *modelServiceImpl) DeleteModel(ctx context.Context, id string) error {
	ent, err := m.modelRepository.GetModelById(ctx, id)
	if err != nil {
		return err
	}
	if ent == nil {
		return modelNotFoundError(id)
	}

	refs, err := m.botRepository.CountBotsByModelId(ctx, id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return &exception.CustomError{
			Status:  http.StatusConflict,
			Code:    exception.EntityReferenced,
			Message: exception.EntityReferencedMsg,
			Params:  map[string]interface{}{"entity": "model", "id": id, "refCount": refs},
		}
	}

	return m.modelRepository.DeleteModel(ctx, id)
}

// CheckModel runs a connectivity probe against the provider. Chat and
// embedding categories get a real round-trip, the rest report skipped since
// there is no cheap probe for them.
func (m *modelServiceImpl) CheckModel(ctx context.Context, id string) (*view.ModelCheckResult, error) {
	ent, err := m.modelRepository.GetModelById(ctx, id)
	if err != nil {
		return nil, err
	}
	if ent == nil {
		return nil, modelNotFoundError(id)
	}

	result := view.ModelCheckResult{ModelId: id, Checks: []view.CheckResult{}}
	start := time.Now()

	switch view.ModelCategory(ent.Category) {
	case view.LLMModel:
		err = m.llmClient.Ping(ctx, ent.BaseUrl, ent.ApiKey, ent.ModelName)
		result.LatencyMs = time.Since(start).Milliseconds()
		if err != nil {
			result.Status = view.ModelCheckFail
			result.Errors = []string{err.Error()}
			result.Checks = append(result.Checks, view.CheckResult{Name: "chat_completion", Status: view.CheckStatusFail, Message: err.Error()})
		} else {
			result.Status = view.ModelCheckPass
			result.Checks = append(result.Checks, view.CheckResult{Name: "chat_completion", Status: view.CheckStatusPass})
		}
	case view.EmbeddingModel:
		dimensions, embErr := m.embeddingClient.Ping(ctx, ent.BaseUrl, ent.ApiKey, ent.ModelName)
		result.LatencyMs = time.Since(start).Milliseconds()
		if embErr != nil {
			result.Status = view.ModelCheckFail
			result.Errors = []string{embErr.Error()}
			result.Checks = append(result.Checks, view.CheckResult{Name: "embedding", Status: view.CheckStatusFail, Message: embErr.Error()})
		} else {
			result.Status = view.ModelCheckPass
			result.Checks = append(result.Checks, view.CheckResult{Name: "embedding", Status: view.CheckStatusPass, Message: fmt.Sprintf("dimension %d", dimensions)})
		}
	default:
		result.Status = view.ModelCheckSkipped
	}

	return &result, nil
}
