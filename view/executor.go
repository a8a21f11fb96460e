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

// Wire types for the sandbox executor API.

type ExecutorValidateRequest struct {
	Image     string `json:"image"`
	ShellType string `json:"shellType"`
}

const (
	ExecutorSubmitted = "submitted"
	ExecutorSkipped   = "skipped" // image already validated, no run scheduled
	ExecutorError     = "error"
)

type ExecutorSubmitResponse struct {
	Status       string   `json:"status"`
	ValidationId string   `json:"validationId,omitempty"`
	Message      string   `json:"message,omitempty"`
	Errors       []string `json:"errors,omitempty"`
}

type ExecutorStatusResponse struct {
	Stage        ValidationStage `json:"stage"`
	Valid        *bool           `json:"valid,omitempty"`
	Checks       []CheckResult   `json:"checks,omitempty"`
	Errors       []string        `json:"errors,omitempty"`
	ErrorMessage string          `json:"errorMessage,omitempty"`
}
