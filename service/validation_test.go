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
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wecode-ai/wegent-console/view"
)

const (
	testPollInterval = time.Millisecond * 5
	testMaxAttempts  = 50
)

// fakeExecutor plays back a scripted sequence of status responses, one per
// poll. The last response repeats once the script is exhausted.
type fakeExecutor struct {
	mutex        sync.Mutex
	submitResp   *view.ExecutorSubmitResponse
	submitErr    error
	statusScript []statusStep
	submitCalls  int
	statusCalls  int
}

type statusStep struct {
	resp *view.ExecutorStatusResponse
	err  error
}

func (f *fakeExecutor) SubmitImageValidation(ctx context.Context, req view.ExecutorValidateRequest) (*view.ExecutorSubmitResponse, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.submitCalls++
	return f.submitResp, f.submitErr
}

func (f *fakeExecutor) GetValidationStatus(ctx context.Context, validationId string) (*view.ExecutorStatusResponse, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	idx := f.statusCalls
	f.statusCalls++
	if idx >= len(f.statusScript) {
		idx = len(f.statusScript) - 1
	}
	step := f.statusScript[idx]
	return step.resp, step.err
}

func (f *fakeExecutor) statusCallCount() int {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return f.statusCalls
}

type fakeNotifier struct {
	mutex    sync.Mutex
	sessions []view.ValidationSession
}

func (f *fakeNotifier) ValidationCompleted(session view.ValidationSession) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.sessions = append(f.sessions, session)
}

func (f *fakeNotifier) completed() []view.ValidationSession {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	result := make([]view.ValidationSession, len(f.sessions))
	copy(result, f.sessions)
	return result
}

func boolPtr(b bool) *bool { return &b }

func submittedResp() *view.ExecutorSubmitResponse {
	return &view.ExecutorSubmitResponse{Status: view.ExecutorSubmitted, ValidationId: "val-1"}
}

func waitForStage(t *testing.T, svc ValidationService, sessionId string, stage view.ValidationStage) *view.ValidationSession {
	t.Helper()
	require.Eventually(t, func() bool {
		session := svc.GetValidationSession(sessionId)
		return session != nil && session.Stage == stage
	}, time.Second*5, time.Millisecond*2)
	return svc.GetValidationSession(sessionId)
}

func TestValidationSuccessPath(t *testing.T) {
	executor := &fakeExecutor{
		submitResp: submittedResp(),
		statusScript: []statusStep{
			{resp: &view.ExecutorStatusResponse{Stage: view.StagePullingImage}},
			{resp: &view.ExecutorStatusResponse{Stage: view.StageStartingContainer}},
			{resp: &view.ExecutorStatusResponse{Stage: view.StageRunningChecks}},
			{resp: &view.ExecutorStatusResponse{
				Stage: view.StageCompleted,
				Valid: boolPtr(true),
				Checks: []view.CheckResult{
					{Name: "node", Status: view.CheckStatusPass, Version: "20.11.0"},
					{Name: "git", Status: view.CheckStatusPass, Version: "2.43.0"},
				},
			}},
		},
	}
	notifier := &fakeNotifier{}
	svc := NewValidationServiceWithTiming(executor, notifier, testPollInterval, testMaxAttempts)

	session, err := svc.StartValidation(context.Background(), view.ValidateImageRequest{Image: "custom/img:1", ShellType: "claude-code"})
	require.NoError(t, err)
	assert.Equal(t, view.StageSubmitted, session.Stage)
	assert.Equal(t, 10, session.ProgressPercent)

	final := waitForStage(t, svc, session.SessionId, view.StageSuccess)
	assert.Equal(t, 100, final.ProgressPercent)
	require.NotNil(t, final.IsValid)
	assert.True(t, *final.IsValid)
	assert.Len(t, final.Checks, 2)
	assert.Empty(t, final.Errors)

	completed := notifier.completed()
	require.Len(t, completed, 1)
	assert.Equal(t, view.StageSuccess, completed[0].Stage)
}

func TestValidationFailedUsesFallbackMessage(t *testing.T) {
	executor := &fakeExecutor{
		submitResp: submittedResp(),
		statusScript: []statusStep{
			{resp: &view.ExecutorStatusResponse{Stage: view.StageRunningChecks}},
			{resp: &view.ExecutorStatusResponse{
				Stage:  view.StageCompleted,
				Valid:  boolPtr(false),
				Checks: []view.CheckResult{{Name: "node", Status: view.CheckStatusFail}},
			}},
		},
	}
	svc := NewValidationServiceWithTiming(executor, &fakeNotifier{}, testPollInterval, testMaxAttempts)

	session, err := svc.StartValidation(context.Background(), view.ValidateImageRequest{Image: "custom/img:1", ShellType: "claude-code"})
	require.NoError(t, err)

	final := waitForStage(t, svc, session.SessionId, view.StageFailed)
	assert.Equal(t, 100, final.ProgressPercent)
	require.Len(t, final.Errors, 1)
	assert.Equal(t, validationFailedFallbackMsg, final.Errors[0])
}

func TestValidationFailedKeepsExecutorErrors(t *testing.T) {
	executor := &fakeExecutor{
		submitResp: submittedResp(),
		statusScript: []statusStep{
			{resp: &view.ExecutorStatusResponse{
				Stage:  view.StageCompleted,
				Valid:  boolPtr(false),
				Errors: []string{"node version 14 is below the required 18"},
			}},
		},
	}
	svc := NewValidationServiceWithTiming(executor, &fakeNotifier{}, testPollInterval, testMaxAttempts)

	session, err := svc.StartValidation(context.Background(), view.ValidateImageRequest{Image: "custom/img:1", ShellType: "claude-code"})
	require.NoError(t, err)

	final := waitForStage(t, svc, session.SessionId, view.StageFailed)
	require.Len(t, final.Errors, 1)
	assert.Equal(t, "node version 14 is below the required 18", final.Errors[0])
}

func TestValidationSkippedResolvesWithoutPolling(t *testing.T) {
	executor := &fakeExecutor{
		submitResp: &view.ExecutorSubmitResponse{Status: view.ExecutorSkipped, Message: "image already validated"},
	}
	notifier := &fakeNotifier{}
	svc := NewValidationServiceWithTiming(executor, notifier, testPollInterval, testMaxAttempts)

	session, err := svc.StartValidation(context.Background(), view.ValidateImageRequest{Image: "known/img:1", ShellType: "claude-code"})
	require.NoError(t, err)

	final := waitForStage(t, svc, session.SessionId, view.StageSuccess)
	assert.Equal(t, 100, final.ProgressPercent)
	require.NotNil(t, final.IsValid)
	assert.True(t, *final.IsValid)

	// Give a few ticks a chance to fire, none may reach the executor.
	time.Sleep(testPollInterval * 4)
	assert.Equal(t, 0, executor.statusCallCount())
}

func TestValidationSubmitErrorIsTerminal(t *testing.T) {
	executor := &fakeExecutor{submitErr: fmt.Errorf("connection refused")}
	svc := NewValidationServiceWithTiming(executor, &fakeNotifier{}, testPollInterval, testMaxAttempts)

	session, err := svc.StartValidation(context.Background(), view.ValidateImageRequest{Image: "custom/img:1", ShellType: "claude-code"})
	require.NoError(t, err)

	final := waitForStage(t, svc, session.SessionId, view.StageError)
	require.Len(t, final.Errors, 1)
	assert.Contains(t, final.Errors[0], "connection refused")
}

func TestValidationTimesOutAtPollCeiling(t *testing.T) {
	executor := &fakeExecutor{
		submitResp: submittedResp(),
		statusScript: []statusStep{
			{resp: &view.ExecutorStatusResponse{Stage: view.StageRunningChecks}},
		},
	}
	notifier := &fakeNotifier{}
	svc := NewValidationServiceWithTiming(executor, notifier, testPollInterval, 5)

	session, err := svc.StartValidation(context.Background(), view.ValidateImageRequest{Image: "slow/img:1", ShellType: "claude-code"})
	require.NoError(t, err)

	final := waitForStage(t, svc, session.SessionId, view.StageError)
	require.Len(t, final.Errors, 1)
	assert.Contains(t, final.Errors[0], "timed out")

	completed := notifier.completed()
	require.Len(t, completed, 1)
	assert.Equal(t, view.StageError, completed[0].Stage)
}

func TestValidationSurvivesTransientPollErrors(t *testing.T) {
	executor := &fakeExecutor{
		submitResp: submittedResp(),
		statusScript: []statusStep{
			{err: fmt.Errorf("temporary network failure")},
			{resp: nil}, // executor does not know the validation yet
			{resp: &view.ExecutorStatusResponse{Stage: view.StageCompleted, Valid: boolPtr(true)}},
		},
	}
	svc := NewValidationServiceWithTiming(executor, &fakeNotifier{}, testPollInterval, testMaxAttempts)

	session, err := svc.StartValidation(context.Background(), view.ValidateImageRequest{Image: "custom/img:1", ShellType: "claude-code"})
	require.NoError(t, err)

	final := waitForStage(t, svc, session.SessionId, view.StageSuccess)
	assert.GreaterOrEqual(t, final.AttemptCount, 3)
}

func TestValidationProgressIsMonotonic(t *testing.T) {
	// The executor reports an earlier stage after a later one, the progress
	// bar must not move backwards.
	executor := &fakeExecutor{
		submitResp: submittedResp(),
		statusScript: []statusStep{
			{resp: &view.ExecutorStatusResponse{Stage: view.StageRunningChecks}},
			{resp: &view.ExecutorStatusResponse{Stage: view.StagePullingImage}},
			{resp: &view.ExecutorStatusResponse{Stage: view.StageCompleted, Valid: boolPtr(true)}},
		},
	}
	svc := NewValidationServiceWithTiming(executor, &fakeNotifier{}, testPollInterval, testMaxAttempts)

	session, err := svc.StartValidation(context.Background(), view.ValidateImageRequest{Image: "custom/img:1", ShellType: "claude-code"})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		s := svc.GetValidationSession(session.SessionId)
		return s != nil && s.ProgressPercent >= 70
	}, time.Second*5, time.Millisecond*2)

	s := svc.GetValidationSession(session.SessionId)
	if s.Stage == view.StagePullingImage {
		assert.GreaterOrEqual(t, s.ProgressPercent, 70)
	}

	final := waitForStage(t, svc, session.SessionId, view.StageSuccess)
	assert.Equal(t, 100, final.ProgressPercent)
}

func TestCancelValidationSessionStopsPolling(t *testing.T) {
	executor := &fakeExecutor{
		submitResp: submittedResp(),
		statusScript: []statusStep{
			{resp: &view.ExecutorStatusResponse{Stage: view.StageRunningChecks}},
		},
	}
	svc := NewValidationServiceWithTiming(executor, &fakeNotifier{}, testPollInterval, testMaxAttempts)

	session, err := svc.StartValidation(context.Background(), view.ValidateImageRequest{Image: "custom/img:1", ShellType: "claude-code"})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return executor.statusCallCount() > 0
	}, time.Second*5, time.Millisecond*2)

	require.NoError(t, svc.CancelValidationSession(session.SessionId))

	// Cancelling twice is a no-op, not a panic.
	require.NoError(t, svc.CancelValidationSession(session.SessionId))

	time.Sleep(testPollInterval * 3)
	callsAfterCancel := executor.statusCallCount()
	time.Sleep(testPollInterval * 5)
	assert.Equal(t, callsAfterCancel, executor.statusCallCount())
}

func TestCancelUnknownSession(t *testing.T) {
	svc := NewValidationServiceWithTiming(&fakeExecutor{}, &fakeNotifier{}, testPollInterval, testMaxAttempts)
	err := svc.CancelValidationSession("no-such-session")
	require.Error(t, err)
}

func TestResubmissionCancelsPreviousSession(t *testing.T) {
	executor := &fakeExecutor{
		submitResp: submittedResp(),
		statusScript: []statusStep{
			{resp: &view.ExecutorStatusResponse{Stage: view.StageRunningChecks}},
		},
	}
	svc := NewValidationServiceWithTiming(executor, &fakeNotifier{}, testPollInterval, testMaxAttempts)

	first, err := svc.StartValidation(context.Background(), view.ValidateImageRequest{Image: "custom/img:1", ShellType: "claude-code"})
	require.NoError(t, err)

	second, err := svc.StartValidation(context.Background(), view.ValidateImageRequest{
		Image:             "custom/img:2",
		ShellType:         "claude-code",
		PreviousSessionId: first.SessionId,
	})
	require.NoError(t, err)
	assert.NotEqual(t, first.SessionId, second.SessionId)

	// The first session stays readable but its loop is stopped.
	require.NotNil(t, svc.GetValidationSession(first.SessionId))
	err = svc.CancelValidationSession(first.SessionId)
	require.NoError(t, err)
}

func TestStartValidationRequiredParams(t *testing.T) {
	svc := NewValidationServiceWithTiming(&fakeExecutor{}, &fakeNotifier{}, testPollInterval, testMaxAttempts)

	_, err := svc.StartValidation(context.Background(), view.ValidateImageRequest{ShellType: "claude-code"})
	require.Error(t, err)

	_, err = svc.StartValidation(context.Background(), view.ValidateImageRequest{Image: "custom/img:1"})
	require.Error(t, err)
}

func TestEvictStaleSessions(t *testing.T) {
	executor := &fakeExecutor{
		submitResp: &view.ExecutorSubmitResponse{Status: view.ExecutorSkipped},
	}
	svc := NewValidationServiceWithTiming(executor, &fakeNotifier{}, testPollInterval, testMaxAttempts)

	session, err := svc.StartValidation(context.Background(), view.ValidateImageRequest{Image: "known/img:1", ShellType: "claude-code"})
	require.NoError(t, err)
	waitForStage(t, svc, session.SessionId, view.StageSuccess)

	assert.Equal(t, 0, svc.EvictStaleSessions(time.Hour))
	require.Eventually(t, func() bool {
		return svc.EvictStaleSessions(0) == 1
	}, time.Second, time.Millisecond*10)
	assert.Nil(t, svc.GetValidationSession(session.SessionId))
}
