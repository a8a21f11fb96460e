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

package view

import "time"

// ValidationStage is a lifecycle stage of an image validation session.
// The executor reports the pipeline stages (submitted..completed); the
// console resolves completed into success or failed locally.
type ValidationStage string

const (
	StageSubmitted         ValidationStage = "submitted"
	StagePullingImage      ValidationStage = "pulling_image"
	StageStartingContainer ValidationStage = "starting_container"
	StageRunningChecks     ValidationStage = "running_checks"
	StageCompleted         ValidationStage = "completed"
	StageError             ValidationStage = "error"
	StageSuccess           ValidationStage = "success"
	StageFailed            ValidationStage = "failed"
)

// Progress returns the fixed progress percent for the stage.
// The mapping is monotonic along the pipeline order.
func (s ValidationStage) Progress() int {
	switch s {
	case StageSubmitted:
		return 10
	case StagePullingImage:
		return 30
	case StageStartingContainer:
		return 50
	case StageRunningChecks:
		return 70
	case StageCompleted, StageSuccess, StageFailed:
		return 100
	default:
		return 0
	}
}

// IsTerminal reports whether no further polling may happen for the stage.
func (s ValidationStage) IsTerminal() bool {
	switch s {
	case StageSuccess, StageFailed, StageError:
		return true
	default:
		return false
	}
}

const (
	CheckStatusPass = "pass"
	CheckStatusFail = "fail"
)

type CheckResult struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Message string `json:"message,omitempty"`
}

// ValidationSession is the snapshot of one image validation attempt as
// exposed to the console UI. All fields except SessionId reflect the
// latest executor poll, they are never merged across polls.
type ValidationSession struct {
	SessionId       string          `json:"sessionId"`
	ValidationId    string          `json:"validationId,omitempty"`
	Image           string          `json:"image"`
	ShellType       string          `json:"shellType"`
	Stage           ValidationStage `json:"stage"`
	ProgressPercent int             `json:"progressPercent"`
	IsValid         *bool           `json:"isValid,omitempty"`
	Checks          []CheckResult   `json:"checks"`
	Errors          []string        `json:"errors"`
	AttemptCount    int             `json:"attemptCount"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

type ValidateImageRequest struct {
	Image             string `json:"image"`
	ShellType         string `json:"shellType"`
	ShellName         string `json:"shellName,omitempty"`
	PreviousSessionId string `json:"previousSessionId,omitempty"`
}
