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
	"strings"

	"github.com/wecode-ai/wegent-console/secctx"
	"github.com/wecode-ai/wegent-console/service"
	"github.com/wecode-ai/wegent-console/view"
)

type TaskController interface {
	CreateTask(w http.ResponseWriter, r *http.Request)
	GetTask(w http.ResponseWriter, r *http.Request)
	ListTasks(w http.ResponseWriter, r *http.Request)
	AddTaskMessage(w http.ResponseWriter, r *http.Request)
	UpdateTaskStatus(w http.ResponseWriter, r *http.Request)
	CancelTask(w http.ResponseWriter, r *http.Request)
}

func NewTaskController(taskService service.TaskService) TaskController {
	return &taskControllerImpl{taskService: taskService}
}

type taskControllerImpl struct {
	taskService service.TaskService
}

func (c *taskControllerImpl) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req view.TaskCreateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ctx := secctx.MakeUserContext(r)
	task, err := c.taskService.CreateTask(ctx, req)
	if err != nil {
		respondWithError(w, "Failed to create task", err)
		return
	}

	respondWithJson(w, http.StatusCreated, task)
}

func (c *taskControllerImpl) GetTask(w http.ResponseWriter, r *http.Request) {
	taskId := getStringParam(r, "taskId")

	ctx := secctx.MakeUserContext(r)
	task, err := c.taskService.GetTask(ctx, taskId)
	if err != nil {
		respondWithError(w, "Failed to get task", err)
		return
	}

	respondWithJson(w, http.StatusOK, task)
}

func (c *taskControllerImpl) ListTasks(w http.ResponseWriter, r *http.Request) {
	var statuses []view.TaskStatus
	if statusFilter := r.URL.Query().Get("status"); statusFilter != "" {
		for _, status := range strings.Split(statusFilter, ",") {
			statuses = append(statuses, view.TaskStatus(status))
		}
	}

	ctx := secctx.MakeUserContext(r)
	tasks, err := c.taskService.ListTasks(ctx, statuses)
	if err != nil {
		respondWithError(w, "Failed to list tasks", err)
		return
	}

	respondWithJson(w, http.StatusOK, tasks)
}

func (c *taskControllerImpl) AddTaskMessage(w http.ResponseWriter, r *http.Request) {
	taskId := getStringParam(r, "taskId")

	var req view.TaskMessageRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ctx := secctx.MakeUserContext(r)
	message, err := c.taskService.AddTaskMessage(ctx, taskId, req)
	if err != nil {
		respondWithError(w, "Failed to add task message", err)
		return
	}

	respondWithJson(w, http.StatusCreated, message)
}

func (c *taskControllerImpl) UpdateTaskStatus(w http.ResponseWriter, r *http.Request) {
	taskId := getStringParam(r, "taskId")

	var req view.TaskStatusRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ctx := secctx.MakeUserContext(r)
	task, err := c.taskService.UpdateTaskStatus(ctx, taskId, req)
	if err != nil {
		respondWithError(w, "Failed to update task status", err)
		return
	}

	respondWithJson(w, http.StatusOK, task)
}

func (c *taskControllerImpl) CancelTask(w http.ResponseWriter, r *http.Request) {
	taskId := getStringParam(r, "taskId")

	ctx := secctx.MakeUserContext(r)
	task, err := c.taskService.CancelTask(ctx, taskId)
	if err != nil {
		respondWithError(w, "Failed to cancel task", err)
		return
	}

	respondWithJson(w, http.StatusOK, task)
}
