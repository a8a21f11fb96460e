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
	"strconv"

	"github.com/wecode-ai/wegent-console/exception"
	"github.com/wecode-ai/wegent-console/secctx"
	"github.com/wecode-ai/wegent-console/service"
	"github.com/wecode-ai/wegent-console/view"
)

type ShellController interface {
	CreateShell(w http.ResponseWriter, r *http.Request)
	UpdateShell(w http.ResponseWriter, r *http.Request)
	GetShell(w http.ResponseWriter, r *http.Request)
	ListShells(w http.ResponseWriter, r *http.Request)
	DeleteShell(w http.ResponseWriter, r *http.Request)
	GetBaseShells(w http.ResponseWriter, r *http.Request)
}

func NewShellController(shellService service.ShellService, authorizationService service.AuthorizationService) ShellController {
	return &shellControllerImpl{shellService: shellService, authorizationService: authorizationService}
}

type shellControllerImpl struct {
	shellService         service.ShellService
	authorizationService service.AuthorizationService
}

func (c *shellControllerImpl) checkManagementPermission(w http.ResponseWriter, r *http.Request) bool {
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

func (c *shellControllerImpl) CreateShell(w http.ResponseWriter, r *http.Request) {
	if !c.checkManagementPermission(w, r) {
		return
	}

	var req view.ShellSaveRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ctx := secctx.MakeUserContext(r)
	shell, err := c.shellService.CreateShell(ctx, req)
	if err != nil {
		respondWithError(w, "Failed to create shell", err)
		return
	}

	respondWithJson(w, http.StatusCreated, shell)
}

func (c *shellControllerImpl) UpdateShell(w http.ResponseWriter, r *http.Request) {
	if !c.checkManagementPermission(w, r) {
		return
	}

	shellId := getStringParam(r, "shellId")

	var req view.ShellSaveRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ctx := secctx.MakeUserContext(r)
	shell, err := c.shellService.UpdateShell(ctx, shellId, req)
	if err != nil {
		respondWithError(w, "Failed to update shell", err)
		return
	}

	respondWithJson(w, http.StatusOK, shell)
}

func (c *shellControllerImpl) GetShell(w http.ResponseWriter, r *http.Request) {
	shellId := getStringParam(r, "shellId")

	ctx := secctx.MakeUserContext(r)
	shell, err := c.shellService.GetShell(ctx, shellId)
	if err != nil {
		respondWithError(w, "Failed to get shell", err)
		return
	}

	respondWithJson(w, http.StatusOK, shell)
}

func (c *shellControllerImpl) ListShells(w http.ResponseWriter, r *http.Request) {
	listReq := view.ShellListReq{
		TextFilter: r.URL.Query().Get("textFilter"),
		ShellType:  r.URL.Query().Get("shellType"),
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit <= 0 {
			RespondWithCustomError(w, &exception.CustomError{
				Status:  http.StatusBadRequest,
				Code:    exception.InvalidParameterValue,
				Message: exception.InvalidParameterValueMsg,
				Params:  map[string]interface{}{"param": "limit", "value": limitStr},
			})
			return
		}
		listReq.Limit = &limit
	}
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 0 {
			RespondWithCustomError(w, &exception.CustomError{
				Status:  http.StatusBadRequest,
				Code:    exception.InvalidParameterValue,
				Message: exception.InvalidParameterValueMsg,
				Params:  map[string]interface{}{"param": "page", "value": pageStr},
			})
			return
		}
		listReq.Page = &page
	}

	ctx := secctx.MakeUserContext(r)
	shells, err := c.shellService.ListShells(ctx, listReq)
	if err != nil {
		respondWithError(w, "Failed to list shells", err)
		return
	}

	respondWithJson(w, http.StatusOK, shells)
}

func (c *shellControllerImpl) DeleteShell(w http.ResponseWriter, r *http.Request) {
	if !c.checkManagementPermission(w, r) {
		return
	}

	shellId := getStringParam(r, "shellId")

	ctx := secctx.MakeUserContext(r)
	if err := c.shellService.DeleteShell(ctx, shellId); err != nil {
		respondWithError(w, "Failed to delete shell", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (c *shellControllerImpl) GetBaseShells(w http.ResponseWriter, r *http.Request) {
	respondWithJson(w, http.StatusOK, c.shellService.GetBaseShells())
}
