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

package controller

import (
	"net/http"

	"github.com/wecode-ai/wegent-console/exception"
	"github.com/wecode-ai/wegent-console/secctx"
	"github.com/wecode-ai/wegent-console/service"
	"github.com/wecode-ai/wegent-console/view"
)

type ModelController interface {
	CreateModel(w http.ResponseWriter, r *http.Request)
	UpdateModel(w http.ResponseWriter, r *http.Request)
	GetModel(w http.ResponseWriter, r *http.Request)
	ListModels(w http.ResponseWriter, r *http.Request)
	DeleteModel(w http.ResponseWriter, r *http.Request)
	CheckModel(w http.ResponseWriter, r *http.Request)
	GetConfigSchema(w http.ResponseWriter, r *http.Request)
}

func NewModelController(modelService service.ModelService, authorizationService service.AuthorizationService) ModelController {
	return &modelControllerImpl{modelService: modelService, authorizationService: authorizationService}
}

type modelControllerImpl struct {
	modelService         service.ModelService
	authorizationService service.AuthorizationService
}

func (c *modelControllerImpl) checkManagementPermission(w http.ResponseWriter, r *http.Request) bool {
	ctx := secctx.MakeUserContext(r)
	sufficientPrivileges, err := c.authorizationService.HasManagementPermission(ctx)
	if err != nil {
		respondWithError(w, "Failed to check permissions", err)
		return false
	}
	if !sufficientPrivileges {
		RespondWithCustomError(w, &exception.CustomError{
			Status:  http.StatusForbidden,
			Code:    exception.InsufficientPrivileges,
			Message: exception.InsufficientPrivilegesMsg,
		})
		return false
	}
	return true
}

func (c *modelControllerImpl) CreateModel(w http.ResponseWriter, r *http.Request) {
	if !c.checkManagementPermission(w, r) {
		return
	}

	var req view.ModelSaveRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ctx := secctx.MakeUserContext(r)
	model, err := c.modelService.CreateModel(ctx, req)
	if err != nil {
		respondWithError(w, "Failed to create model", err)
		return
	}

	respondWithJson(w, http.StatusCreated, model)
}

func (c *modelControllerImpl) UpdateModel(w http.ResponseWriter, r *http.Request) {
	if !c.checkManagementPermission(w, r) {
		return
	}

	modelId := getStringParam(r, "modelId")

	var req view.ModelSaveRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ctx := secctx.MakeUserContext(r)
	model, err := c.modelService.UpdateModel(ctx, modelId, req)
	if err != nil {
		respondWithError(w, "Failed to update model", err)
		return
	}

	respondWithJson(w, http.StatusOK, model)
}

func (c *modelControllerImpl) GetModel(w http.ResponseWriter, r *http.Request) {
	modelId := getStringParam(r, "modelId")

	ctx := secctx.MakeUserContext(r)
	model, err := c.modelService.GetModel(ctx, modelId)
	if err != nil {
		respondWithError(w, "Failed to get model", err)
		return
	}

	respondWithJson(w, http.StatusOK, model)
}

func (c *modelControllerImpl) ListModels(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	ctx := secctx.MakeUserContext(r)
	models, err := c.modelService.ListModels(ctx, category)
	if err != nil {
		respondWithError(w, "Failed to list models", err)
		return
	}

	respondWithJson(w, http.StatusOK, models)
}

func (c *modelControllerImpl) DeleteModel(w http.ResponseWriter, r *http.Request) {
	if !c.checkManagementPermission(w, r) {
		return
	}

	modelId := getStringParam(r, "modelId")

	ctx := secctx.MakeUserContext(r)
	if err := c.modelService.DeleteModel(ctx, modelId); err != nil {
		respondWithError(w, "Failed to delete model", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (c *modelControllerImpl) CheckModel(w http.ResponseWriter, r *http.Request) {
	modelId := getStringParam(r, "modelId")

	ctx := secctx.MakeUserContext(r)
	result, err := c.modelService.CheckModel(ctx, modelId)
	if err != nil {
		respondWithError(w, "Failed to check model connectivity", err)
		return
	}

	respondWithJson(w, http.StatusOK, result)
}

func (c *modelControllerImpl) GetConfigSchema(w http.ResponseWriter, r *http.Request) {
	respondWithJson(w, http.StatusOK, c.modelService.GetConfigSchema())
}
