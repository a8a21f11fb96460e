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

type ShellService interface {
	CreateShell(ctx context.Context, req view.ShellSaveRequest) (*view.Shell, error)
	UpdateShell(ctx context.Context, id string, req view.ShellSaveRequest) (*view.Shell, error)
	GetShell(ctx context.Context, id string) (*view.Shell, error)
	ListShells(ctx context.Context, req view.ShellListReq) (*view.Shells, error)
	DeleteShell(ctx context.Context, id string) error
	GetBaseShells() *view.BaseShells
}

func NewShellService(shellRepository repository.ShellRepository, botRepository repository.BotRepository, validationService ValidationService) ShellService {
	return &shellServiceImpl{
		shellRepository:   shellRepository,
		botRepository:     botRepository,
		validationService: validationService,
	}
}

type shellServiceImpl struct {
	shellRepository   repository.ShellRepository
	botRepository     repository.BotRepository
	validationService ValidationService
}

// baseShells is the platform catalog of shell types the dialog offers.
// Entries with RequiresValidation demand a successful image validation
// session before a custom base image may be saved.
var baseShells = []view.BaseShell{
	{ShellType: "claude-code", DisplayName: "Claude Code", DefaultImage: "wegent/claude-code:latest", RequiresValidation: true},
	{ShellType: "agent-tars", DisplayName: "Agent TARS", DefaultImage: "wegent/agent-tars:latest", RequiresValidation: true},
	{ShellType: "openhands", DisplayName: "OpenHands", DefaultImage: "wegent/openhands:latest", RequiresValidation: true},
	{ShellType: "custom", DisplayName: "Custom", RequiresValidation: true},
}

func (s *shellServiceImpl) GetBaseShells() *view.BaseShells {
	return &view.BaseShells{BaseShells: baseShells}
}

func shellTypeRequiresValidation(shellType string) bool {
	for _, base := range baseShells {
		if base.ShellType == shellType {
			return base.RequiresValidation
		}
	}
	return true
}

func validShellType(shellType string) bool {
	for _, base := range baseShells {
		if base.ShellType == shellType {
			return true
		}
	}
	return false
}

// SaveDisabled is the save gating rule shared by the dialog and the server
// side check. An empty base image never blocks saving: the shell then runs on
// the platform default image which is validated upstream. Editing without
// touching the image keeps the previously accepted state.
func SaveDisabled(baseImage string, editing bool, imageChanged bool, session *view.ValidationSession) bool {
	if baseImage == "" {
		return false
	}
	if editing && !imageChanged {
		return false
	}
	if session == nil {
		return true
	}
	return !(session.Stage == view.StageSuccess && session.IsValid != nil && *session.IsValid)
}

func (s *shellServiceImpl) CreateShell(ctx context.Context, req view.ShellSaveRequest) (*view.Shell, error) {
	if err := s.validateSaveRequest(req); err != nil {
		return nil, err
	}
	if err := s.checkImageValidated(req, false, false); err != nil {
		return nil, err
	}

	existing, err := s.shellRepository.GetShellByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &exception.CustomError{
			Status:  http.StatusConflict,
			Code:    exception.EntityNameAlreadyTaken,
			Message: exception.EntityNameAlreadyTakenMsg,
			Params:  map[string]interface{}{"entity": "shell", "name": req.Name},
		}
	}

	now := time.Now()
	ent := entity.Shell{
		Id:          uuid.New().String(),
		Name:        req.Name,
		ShellType:   req.ShellType,
		BaseImage:   req.BaseImage,
		Description: req.Description,
		CreatedAt:   now,
		CreatedBy:   secctx.GetUserId(ctx),
		UpdatedAt:   now,
	}
	if err := s.shellRepository.SaveShell(ctx, ent); err != nil {
		return nil, err
	}

	shell := entity.MakeShellView(ent)
	return &shell, nil
}

func (s *shellServiceImpl) UpdateShell(ctx context.Context, id string, req view.ShellSaveRequest) (*view.Shell, error) {
	if err := s.validateSaveRequest(req); err != nil {
		return nil, err
	}

	existing, err := s.shellRepository.GetShellById(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, &exception.CustomError{
			Status:  http.StatusNotFound,
			Code:    exception.EntityNotFound,
			Message: exception.EntityNotFoundMsg,
			Params:  map[string]interface{}{"entity": "shell", "id": id},
		}
	}

	imageChanged := existing.BaseImage != req.BaseImage
	if err := s.checkImageValidated(req, true, imageChanged); err != nil {
		return nil, err
	}

	existing.Name = req.Name
	existing.ShellType = req.ShellType
	existing.BaseImage = req.BaseImage
	existing.Description = req.Description
	if err := s.shellRepository.UpdateShell(ctx, *existing); err != nil {
		return nil, err
	}

	updated, err := s.shellRepository.GetShellById(ctx, id)
	if err != nil {
		return nil, err
	}
	shell := entity.MakeShellView(*updated)
	return &shell, nil
}

func (s *shellServiceImpl) validateSaveRequest(req view.ShellSaveRequest) error {
	if req.Name == "" {
		return &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.InvalidEntityName,
			Message: exception.InvalidEntityNameMsg,
			Params:  map[string]interface{}{"entity": "shell", "name": req.Name},
		}
	}
	if !validShellType(req.ShellType) {
		return &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.InvalidParameterValue,
			Message: exception.InvalidParameterValueMsg,
			Params:  map[string]interface{}{"param": "shellType", "value": req.ShellType},
		}
	}
	return nil
}

func (s *shellServiceImpl) checkImageValidated(req view.ShellSaveRequest, editing bool, imageChanged bool) error {
	if req.BaseImage != "" && !shellTypeRequiresValidation(req.ShellType) {
		return nil
	}

	var session *view.ValidationSession
	if req.ValidationSessionId != "" {
		session = s.validationService.GetValidationSession(req.ValidationSessionId)
		if session != nil && session.Image != req.BaseImage {
			// Session from an older image does not vouch for the new one.
			session = nil
		}
	}

	if SaveDisabled(req.BaseImage, editing, imageChanged, session) {
		return &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.ImageNotValidated,
			Message: exception.ImageNotValidatedMsg,
			Params:  map[string]interface{}{"image": req.BaseImage},
		}
	}
	return nil
}

func (s *shellServiceImpl) GetShell(ctx context.Context, id string) (*view.Shell, error) {
	ent, err := s.shellRepository.GetShellById(ctx, id)
	if err != nil {
		return nil, err
	}
	if ent == nil {
		return nil, &exception.CustomError{
			Status:  http.StatusNotFound,
			Code:    exception.EntityNotFound,
			Message: exception.EntityNotFoundMsg,
			Params:  map[string]interface{}{"entity": "shell", "id": id},
		}
	}
	shell := entity.MakeShellView(*ent)
	return &shell, nil
}

func (s *shellServiceImpl) ListShells(ctx context.Context, req view.ShellListReq) (*view.Shells, error) {
	ents, err := s.shellRepository.ListShells(ctx, req)
	if err != nil {
		return nil, err
	}
	shells := make([]view.Shell, 0, len(ents))
	for _, ent := range ents {
		shells = append(shells, entity.MakeShellView(ent))
	}
	return &view.Shells{Shells: shells}, nil
}

func (s *shellServiceImpl) DeleteShell(ctx context.Context, id string) error {
	ent, err := s.shellRepository.GetShellById(ctx, id)
	if err != nil {
		return err
	}
	if ent == nil {
		return &exception.CustomError{
			Status:  http.StatusNotFound,
			Code:    exception.EntityNotFound,
			Message: exception.EntityNotFoundMsg,
			Params:  map[string]interface{}{"entity": "shell", "id": id},
		}
	}

	refs, err := s.botRepository.CountBotsByShellId(ctx, id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return &exception.CustomError{
			Status:  http.StatusConflict,
			Code:    exception.EntityReferenced,
			Message: exception.EntityReferencedMsg,
			Params:  map[string]interface{}{"entity": "shell", "id": id, "refCount": refs},
		}
	}

	return s.shellRepository.DeleteShell(ctx, id)
}
