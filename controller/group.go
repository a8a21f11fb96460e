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

	"github.com/wecode-ai/wegent-console/secctx"
	"github.com/wecode-ai/wegent-console/service"
	"github.com/wecode-ai/wegent-console/view"
)

type GroupController interface {
	CreateGroup(w http.ResponseWriter, r *http.Request)
	UpdateGroup(w http.ResponseWriter, r *http.Request)
	GetGroup(w http.ResponseWriter, r *http.Request)
	ListGroups(w http.ResponseWriter, r *http.Request)
	DeleteGroup(w http.ResponseWriter, r *http.Request)
}

func NewGroupController(groupService service.GroupService) GroupController {
	return &groupControllerImpl{groupService: groupService}
}

type groupControllerImpl struct {
	groupService service.GroupService
}

func (c *groupControllerImpl) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req view.GroupSaveRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ctx := secctx.MakeUserContext(r)
	group, err := c.groupService.CreateGroup(ctx, req)
	if err != nil {
		respondWithError(w, "Failed to create group", err)
		return
	}

	respondWithJson(w, http.StatusCreated, group)
}

func (c *groupControllerImpl) UpdateGroup(w http.ResponseWriter, r *http.Request) {
	groupId := getStringParam(r, "groupId")

	var req view.GroupSaveRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ctx := secctx.MakeUserContext(r)
	group, err := c.groupService.UpdateGroup(ctx, groupId, req)
	if err != nil {
		respondWithError(w, "Failed to update group", err)
		return
	}

	respondWithJson(w, http.StatusOK, group)
}

func (c *groupControllerImpl) GetGroup(w http.ResponseWriter, r *http.Request) {
	groupId := getStringParam(r, "groupId")

	ctx := secctx.MakeUserContext(r)
	group, err := c.groupService.GetGroup(ctx, groupId)
	if err != nil {
		respondWithError(w, "Failed to get group", err)
		return
	}

	respondWithJson(w, http.StatusOK, group)
}

func (c *groupControllerImpl) ListGroups(w http.ResponseWriter, r *http.Request) {
	ctx := secctx.MakeUserContext(r)
	groups, err := c.groupService.ListGroups(ctx)
	if err != nil {
		respondWithError(w, "Failed to list groups", err)
		return
	}

	respondWithJson(w, http.StatusOK, groups)
}

func (c *groupControllerImpl) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	groupId := getStringParam(r, "groupId")

	ctx := secctx.MakeUserContext(r)
	if err := c.groupService.DeleteGroup(ctx, groupId); err != nil {
		respondWithError(w, "Failed to delete group", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
