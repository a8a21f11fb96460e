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

	log "github.com/sirupsen/logrus"
	"github.com/wecode-ai/wegent-console/exception"
	"github.com/wecode-ai/wegent-console/secctx"
	"github.com/wecode-ai/wegent-console/service"
	"github.com/wecode-ai/wegent-console/view"
)

type ValidationController interface {
	StartValidation(w http.ResponseWriter, r *http.Request)
	GetValidationSession(w http.ResponseWriter, r *http.Request)
	CancelValidationSession(w http.ResponseWriter, r *http.Request)
}

func NewValidationController(validationService service.ValidationService) ValidationController {
	return &validationControllerImpl{validationService: validationService}
}

type validationControllerImpl struct {
	validationService service.ValidationService
}

func (v *validationControllerImpl) StartValidation(w http.ResponseWriter, r *http.Request) {
	var req view.ValidateImageRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ctx := secctx.MakeUserContext(r)
	session, err := v.validationService.StartValidation(ctx, req)
	if err != nil {
		respondWithError(w, "Failed to start image validation", err)
		return
	}

	log.Debugf("Validation session %s started for image %s", session.SessionId, req.Image)

	respondWithJson(w, http.StatusAccepted, session)
}

func (v *validationControllerImpl) GetValidationSession(w http.ResponseWriter, r *http.Request) {
	sessionId := getStringParam(r, "sessionId")

	session := v.validationService.GetValidationSession(sessionId)
	if session == nil {
		RespondWithCustomError(w, &exception.CustomError{
			Status:  http.StatusNotFound,
			Code:    exception.ValidationSessionNotFound,
			Message: exception.ValidationSessionNotFoundMsg,
			Params:  map[string]interface{}{"sessionId": sessionId},
		})
		return
	}

	respondWithJson(w, http.StatusOK, session)
}

func (v *validationControllerImpl) CancelValidationSession(w http.ResponseWriter, r *http.Request) {
	sessionId := getStringParam(r, "sessionId")

	if err := v.validationService.CancelValidationSession(sessionId); err != nil {
		respondWithError(w, "Failed to cancel validation session", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
