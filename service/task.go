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

type TaskService interface {
	CreateTask(ctx context.Context, req view.TaskCreateRequest) (*view.Task, error)
	GetTask(ctx context.Context, id string) (*view.TaskWithMessages, error)
	ListTasks(ctx context.Context, statuses []view.TaskStatus) (*view.Tasks, error)
	AddTaskMessage(ctx context.Context, taskId string, req view.TaskMessageRequest) (*view.TaskMessage, error)
	UpdateTaskStatus(ctx context.Context, taskId string, req view.TaskStatusRequest) (*view.Task, error)
	CancelTask(ctx context.Context, taskId string) (*view.Task, error)
}

func NewTaskService(taskRepository repository.TaskRepository, botRepository repository.BotRepository,
	groupRepository repository.GroupRepository, broadcaster EventBroadcaster) TaskService {
	return &taskServiceImpl{
		taskRepository:  taskRepository,
		botRepository:   botRepository,
		groupRepository: groupRepository,
		broadcaster:     broadcaster,
	}
}

type taskServiceImpl struct {
	taskRepository  repository.TaskRepository
	botRepository   repository.BotRepository
	groupRepository repository.GroupRepository
	broadcaster     EventBroadcaster
}

func (t *taskServiceImpl) CreateTask(ctx context.Context, req view.TaskCreateRequest) (*view.Task, error) {
	if req.Title == "" || req.BotId == "" {
		return nil, &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.RequiredParamsMissing,
			Message: exception.RequiredParamsMissingMsg,
			Params:  map[string]interface{}{"params": "title, botId"},
		}
	}

	bot, err := t.botRepository.GetBotById(ctx, req.BotId)
	if err != nil {
		return nil, err
	}
	if bot == nil {
		return nil, entityNotFoundError("bot", req.BotId)
	}

	if req.GroupId != "" {
		group, err := t.groupRepository.GetGroupById(ctx, req.GroupId)
		if err != nil {
			return nil, err
		}
		if group == nil {
			return nil, entityNotFoundError("group", req.GroupId)
		}
	}

	now := time.Now()
	taskEnt := entity.Task{
		Id:        uuid.New().String(),
		Title:     req.Title,
		BotId:     req.BotId,
		GroupId:   req.GroupId,
		Status:    view.TaskStatusPending,
		CreatedAt: now,
		CreatedBy: secctx.GetUserId(ctx),
		UpdatedAt: now,
	}

	var messages []entity.TaskMessage
	if req.Prompt != "" {
		messages = append(messages, entity.TaskMessage{
			Id:        uuid.New().String(),
			TaskId:    taskEnt.Id,
			Role:      string(view.RoleUser),
			Content:   req.Prompt,
			CreatedAt: now,
		})
	}

	if err := t.taskRepository.SaveTask(ctx, taskEnt, messages); err != nil {
		return nil, err
	}

	task := entity.MakeTaskView(taskEnt)
	t.broadcaster.TaskStatusChanged(task)
	return &task, nil
}

func (t *taskServiceImpl) GetTask(ctx context.Context, id string) (*view.TaskWithMessages, error) {
	taskEnt, err := t.taskRepository.GetTaskById(ctx, id)
	if err != nil {
		return nil, err
	}
	if taskEnt == nil {
		return nil, entityNotFoundError("task", id)
	}

	messageEnts, err := t.taskRepository.GetTaskMessages(ctx, id)
	if err != nil {
		return nil, err
	}
	messages := make([]view.TaskMessage, 0, len(messageEnts))
	for _, ent := range messageEnts {
		messages = append(messages, entity.MakeTaskMessageView(ent))
	}

	return &view.TaskWithMessages{Task: entity.MakeTaskView(*taskEnt), Messages: messages}, nil
}

func (t *taskServiceImpl) ListTasks(ctx context.Context, statuses []view.TaskStatus) (*view.Tasks, error) {
	for _, status := range statuses {
		if !view.ValidTaskStatus(status) {
			return nil, &exception.CustomError{
				Status:  http.StatusBadRequest,
				Code:    exception.InvalidParameterValue,
				Message: exception.InvalidParameterValueMsg,
				Params:  map[string]interface{}{"param": "status", "value": string(status)},
			}
		}
	}

	createdBy := ""
	if !secctx.IsSysadm(ctx) {
		createdBy = secctx.GetUserId(ctx)
	}

	ents, err := t.taskRepository.ListTasks(ctx, createdBy, statuses)
	if err != nil {
		return nil, err
	}
	tasks := make([]view.Task, 0, len(ents))
	for _, ent := range ents {
		tasks = append(tasks, entity.MakeTaskView(ent))
	}
	return &view.Tasks{Tasks: tasks}, nil
}

func (t *taskServiceImpl) AddTaskMessage(ctx context.Context, taskId string, req view.TaskMessageRequest) (*view.TaskMessage, error) {
	if req.Content == "" {
		return nil, &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.RequiredParamsMissing,
			Message: exception.RequiredParamsMissingMsg,
			Params:  map[string]interface{}{"params": "content"},
		}
	}

	taskEnt, err := t.taskRepository.GetTaskById(ctx, taskId)
	if err != nil {
		return nil, err
	}
	if taskEnt == nil {
		return nil, entityNotFoundError("task", taskId)
	}
	if taskEnt.Status.IsTerminal() {
		return nil, &exception.CustomError{
			Status:  http.StatusConflict,
			Code:    exception.InvalidParameterValue,
			Message: exception.InvalidParameterValueMsg,
			Params:  map[string]interface{}{"param": "taskId", "value": taskId},
			Debug:   "task is finished, no more messages can be added",
		}
	}

	role := req.Role
	if role == "" {
		role = view.RoleUser
	}

	msgEnt := entity.TaskMessage{
		Id:        uuid.New().String(),
		TaskId:    taskId,
		Role:      string(role),
		Content:   req.Content,
		CreatedAt: time.Now(),
	}
	if err := t.taskRepository.SaveTaskMessage(ctx, msgEnt); err != nil {
		return nil, err
	}

	// A user reply resolves a pending clarification, the runner picks the
	// task up again.
	if role == view.RoleUser && taskEnt.Status == view.TaskStatusWaitingConfirm {
		if err := t.taskRepository.UpdateTaskStatus(ctx, taskId, view.TaskStatusRunning, taskEnt.Details); err != nil {
			return nil, err
		}
		taskEnt.Status = view.TaskStatusRunning
		t.broadcaster.TaskStatusChanged(entity.MakeTaskView(*taskEnt))
	}

	msg := entity.MakeTaskMessageView(msgEnt)
	return &msg, nil
}

func (t *taskServiceImpl) UpdateTaskStatus(ctx context.Context, taskId string, req view.TaskStatusRequest) (*view.Task, error) {
	if !view.ValidTaskStatus(req.Status) {
		return nil, &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.InvalidParameterValue,
			Message: exception.InvalidParameterValueMsg,
			Params:  map[string]interface{}{"param": "status", "value": string(req.Status)},
		}
	}

	taskEnt, err := t.taskRepository.GetTaskById(ctx, taskId)
	if err != nil {
		return nil, err
	}
	if taskEnt == nil {
		return nil, entityNotFoundError("task", taskId)
	}
	if taskEnt.Status.IsTerminal() {
		return nil, &exception.CustomError{
			Status:  http.StatusConflict,
			Code:    exception.InvalidParameterValue,
			Message: exception.InvalidParameterValueMsg,
			Params:  map[string]interface{}{"param": "status", "value": string(req.Status)},
			Debug:   "task already reached a terminal status",
		}
	}

	if err := t.taskRepository.UpdateTaskStatus(ctx, taskId, req.Status, req.Details); err != nil {
		return nil, err
	}

	taskEnt.Status = req.Status
	taskEnt.Details = req.Details
	taskEnt.UpdatedAt = time.Now()

	task := entity.MakeTaskView(*taskEnt)
	t.broadcaster.TaskStatusChanged(task)
	return &task, nil
}

func (t *taskServiceImpl) CancelTask(ctx context.Context, taskId string) (*view.Task, error) {
	return t.UpdateTaskStatus(ctx, taskId, view.TaskStatusRequest{Status: view.TaskStatusCancelled, Details: "cancelled by user"})
}
