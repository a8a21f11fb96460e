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

type Shell struct {
	Id          string    `json:"id"`
	Name        string    `json:"name"`
	ShellType   string    `json:"shellType"`
	BaseImage   string    `json:"baseImage,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	CreatedBy   string    `json:"createdBy,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Shells struct {
	Shells []Shell `json:"shells"`
}

type ShellSaveRequest struct {
	Name        string `json:"name"`
	ShellType   string `json:"shellType"`
	BaseImage   string `json:"baseImage,omitempty"`
	Description string `json:"description,omitempty"`
	// ValidationSessionId points to the validation session the shell editor
	// dialog ran for BaseImage. Required when the image needs validation.
	ValidationSessionId string `json:"validationSessionId,omitempty"`
}

type ShellListReq struct {
	TextFilter string
	ShellType  string
	Limit      *int
	Page       *int
}

// BaseShell is a platform-provided shell type the editor dialog resolves
// shellType from.
type BaseShell struct {
	ShellType          string `json:"shellType"`
	DisplayName        string `json:"displayName"`
	DefaultImage       string `json:"defaultImage,omitempty"`
	RequiresValidation bool   `json:"requiresValidation"`
}

type BaseShells struct {
	BaseShells []BaseShell `json:"baseShells"`
}
