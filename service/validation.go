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
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/wecode-ai/wegent-console/client"
	"github.com/wecode-ai/wegent-console/exception"
	"github.com/wecode-ai/wegent-console/utils"
	"github.com/wecode-ai/wegent-console/view"
)

const (
	defaultPollInterval    = time.Second * 2
	defaultMaxPollAttempts = 60

	validationFailedFallbackMsg = "Image validation failed"
)

// ValidationNotifier receives a session snapshot once the session reaches a
// terminal stage.
type ValidationNotifier interface {
	ValidationCompleted(session view.ValidationSession)
}

// ValidationService drives image validation sessions. A session is local to
// the replica that created it: the dialog that started the validation holds a
// sticky connection to the same replica, so session state is plain in-process
// memory rather than a table.
type ValidationService interface {
	StartValidation(ctx context.Context, req view.ValidateImageRequest) (*view.ValidationSession, error)
	GetValidationSession(sessionId string) *view.ValidationSession
	CancelValidationSession(sessionId string) error
	EvictStaleSessions(olderThan time.Duration) int
}

// NewValidationService uses the production poll timing. The executor reports
// a stage roughly every few seconds, so 60 polls at 2s cover the worst image
// pull before the session is declared dead.
func NewValidationService(executorClient client.ExecutorClient, notifier ValidationNotifier) ValidationService {
	return NewValidationServiceWithTiming(executorClient, notifier, defaultPollInterval, defaultMaxPollAttempts)
}

func NewValidationServiceWithTiming(executorClient client.ExecutorClient, notifier ValidationNotifier, pollInterval time.Duration, maxPollAttempts int) ValidationService {
	return &validationServiceImpl{
		executorClient:  executorClient,
		notifier:        notifier,
		pollInterval:    pollInterval,
		maxPollAttempts: maxPollAttempts,
		sessions:        make(map[string]*sessionState),
	}
}

type validationServiceImpl struct {
	executorClient  client.ExecutorClient
	notifier        ValidationNotifier
	pollInterval    time.Duration
	maxPollAttempts int

	mutex    sync.RWMutex
	sessions map[string]*sessionState
}

type sessionState struct {
	session view.ValidationSession
	// cancel is owned by the poll loop of this session, closed at most once
	cancel    chan struct{}
	cancelled bool
}

func (v *validationServiceImpl) StartValidation(ctx context.Context, req view.ValidateImageRequest) (*view.ValidationSession, error) {
	if req.Image == "" || req.ShellType == "" {
		return nil, &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.RequiredParamsMissing,
			Message: exception.RequiredParamsMissingMsg,
			Params:  map[string]interface{}{"params": "image, shellType"},
		}
	}

	if req.PreviousSessionId != "" {
		// Re-submission from the same dialog, the prior loop must not keep
		// polling for a stale image.
		if err := v.CancelValidationSession(req.PreviousSessionId); err != nil {
			log.Debugf("Previous validation session %s is not cancellable: %v", req.PreviousSessionId, err)
		}
	}

	now := time.Now()
	state := &sessionState{
		session: view.ValidationSession{
			SessionId:       uuid.New().String(),
			Image:           req.Image,
			ShellType:       req.ShellType,
			Stage:           view.StageSubmitted,
			ProgressPercent: view.StageSubmitted.Progress(),
			Checks:          []view.CheckResult{},
			Errors:          []string{},
			CreatedAt:       now,
			UpdatedAt:       now,
		},
		cancel: make(chan struct{}),
	}

	v.mutex.Lock()
	v.sessions[state.session.SessionId] = state
	v.mutex.Unlock()

	// The caller gets the submitted snapshot right away, the executor
	// round-trip resolves in background.
	result := state.session

	utils.SafeAsync(func() {
		v.submitAndPoll(state.session.SessionId, req)
	})

	return &result, nil
}

func (v *validationServiceImpl) submitAndPoll(sessionId string, req view.ValidateImageRequest) {
	ctx := context.Background()

	resp, err := v.executorClient.SubmitImageValidation(ctx, view.ExecutorValidateRequest{Image: req.Image, ShellType: req.ShellType})
	if err != nil {
		log.Errorf("Failed to submit validation for image %s: %v", req.Image, err)
		v.finishSession(sessionId, view.StageError, nil, nil, []string{err.Error()})
		return
	}

	switch resp.Status {
	case view.ExecutorSkipped:
		// Image already known to the executor, no run is scheduled.
		valid := true
		v.finishSession(sessionId, view.StageSuccess, &valid, nil, nil)
		return
	case view.ExecutorError:
		errs := resp.Errors
		if len(errs) == 0 && resp.Message != "" {
			errs = []string{resp.Message}
		}
		v.finishSession(sessionId, view.StageError, nil, nil, errs)
		return
	}

	v.mutex.Lock()
	state, exists := v.sessions[sessionId]
	if exists {
		state.session.ValidationId = resp.ValidationId
		state.session.UpdatedAt = time.Now()
	}
	v.mutex.Unlock()
	if !exists {
		return
	}

	v.pollLoop(sessionId, resp.ValidationId)
}

func (v *validationServiceImpl) pollLoop(sessionId string, validationId string) {
	ticker := time.NewTicker(v.pollInterval)
	defer ticker.Stop()

	v.mutex.RLock()
	state, exists := v.sessions[sessionId]
	v.mutex.RUnlock()
	if !exists {
		return
	}
	cancel := state.cancel

	attempts := 0
	for {
		select {
		case <-cancel:
			log.Debugf("Validation session %s cancelled after %d polls", sessionId, attempts)
			return
		case <-ticker.C:
			attempts++
			if attempts > v.maxPollAttempts {
				timeoutSec := int64(v.pollInterval.Seconds()) * int64(v.maxPollAttempts)
				v.finishSession(sessionId, view.StageError, nil, nil,
					[]string{fmt.Sprintf("Validation timed out after %d seconds", timeoutSec)})
				return
			}

			ctx := context.Background()
			status, err := v.executorClient.GetValidationStatus(ctx, validationId)
			if err != nil {
				// Transient failure, the next tick retries.
				log.Warnf("Validation status poll %d for session %s failed: %v", attempts, sessionId, err)
				v.bumpAttempts(sessionId, attempts)
				continue
			}
			if status == nil {
				log.Warnf("Validation %s is not known to the executor yet, poll %d", validationId, attempts)
				v.bumpAttempts(sessionId, attempts)
				continue
			}

			if terminal := v.applyPoll(sessionId, attempts, status); terminal {
				return
			}
		}
	}
}

func (v *validationServiceImpl) bumpAttempts(sessionId string, attempts int) {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	if state, exists := v.sessions[sessionId]; exists {
		state.session.AttemptCount = attempts
		state.session.UpdatedAt = time.Now()
	}
}

// applyPoll folds one executor status response into the session. Fields
// follow the latest poll, progress only ever grows.
func (v *validationServiceImpl) applyPoll(sessionId string, attempts int, status *view.ExecutorStatusResponse) bool {
	v.mutex.Lock()
	state, exists := v.sessions[sessionId]
	if !exists {
		v.mutex.Unlock()
		return true
	}

	s := &state.session
	s.AttemptCount = attempts
	s.UpdatedAt = time.Now()
	s.IsValid = status.Valid
	if status.Checks != nil {
		s.Checks = status.Checks
	}
	if status.Errors != nil {
		s.Errors = status.Errors
	}

	stage := status.Stage
	switch stage {
	case view.StageCompleted:
		if status.Valid != nil && *status.Valid {
			stage = view.StageSuccess
		} else {
			stage = view.StageFailed
			if len(s.Errors) == 0 {
				s.Errors = []string{validationFailedFallbackMsg}
			}
		}
	case view.StageError:
		if status.ErrorMessage != "" {
			s.Errors = append(s.Errors, status.ErrorMessage)
		}
	}
	s.Stage = stage
	if p := stage.Progress(); p > s.ProgressPercent {
		s.ProgressPercent = p
	}

	terminal := stage.IsTerminal()
	var snapshot view.ValidationSession
	if terminal {
		snapshot = *s
	}
	v.mutex.Unlock()

	if terminal {
		log.Infof("Validation session %s finished with stage %s after %d polls", sessionId, snapshot.Stage, attempts)
		if v.notifier != nil {
			v.notifier.ValidationCompleted(snapshot)
		}
	}
	return terminal
}

// finishSession moves the session straight to a terminal stage, bypassing the
// poll loop (submit failures, skipped images, timeout).
func (v *validationServiceImpl) finishSession(sessionId string, stage view.ValidationStage, isValid *bool, checks []view.CheckResult, errs []string) {
	v.mutex.Lock()
	state, exists := v.sessions[sessionId]
	if !exists {
		v.mutex.Unlock()
		return
	}

	s := &state.session
	s.Stage = stage
	s.IsValid = isValid
	if checks != nil {
		s.Checks = checks
	}
	if errs != nil {
		s.Errors = errs
	}
	if p := stage.Progress(); p > s.ProgressPercent {
		s.ProgressPercent = p
	}
	s.UpdatedAt = time.Now()
	snapshot := *s
	v.mutex.Unlock()

	log.Infof("Validation session %s finished with stage %s", sessionId, stage)
	if v.notifier != nil {
		v.notifier.ValidationCompleted(snapshot)
	}
}

func (v *validationServiceImpl) GetValidationSession(sessionId string) *view.ValidationSession {
	v.mutex.RLock()
	defer v.mutex.RUnlock()

	state, exists := v.sessions[sessionId]
	if !exists {
		return nil
	}
	session := state.session
	return &session
}

func (v *validationServiceImpl) CancelValidationSession(sessionId string) error {
	v.mutex.Lock()
	defer v.mutex.Unlock()

	state, exists := v.sessions[sessionId]
	if !exists {
		return &exception.CustomError{
			Status:  http.StatusNotFound,
			Code:    exception.ValidationSessionNotFound,
			Message: exception.ValidationSessionNotFoundMsg,
			Params:  map[string]interface{}{"sessionId": sessionId},
		}
	}
	if !state.cancelled {
		state.cancelled = true
		close(state.cancel)
	}
	return nil
}

// EvictStaleSessions drops sessions that have not been touched for olderThan.
// Called by the janitor, the dialog that owned them is long gone.
func (v *validationServiceImpl) EvictStaleSessions(olderThan time.Duration) int {
	cutoff := time.Now().Add(-olderThan)

	v.mutex.Lock()
	defer v.mutex.Unlock()

	evicted := 0
	for sessionId, state := range v.sessions {
		if state.session.UpdatedAt.Before(cutoff) {
			if !state.cancelled {
				state.cancelled = true
				close(state.cancel)
			}
			delete(v.sessions, sessionId)
			evicted++
		}
	}
	return evicted
}
