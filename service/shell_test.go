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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wecode-ai/wegent-console/view"
)

func sessionWith(stage view.ValidationStage, isValid *bool) *view.ValidationSession {
	return &view.ValidationSession{
		SessionId: "session-1",
		Image:     "custom/img:1",
		Stage:     stage,
		IsValid:   isValid,
	}
}

func TestSaveDisabled(t *testing.T) {
	valid := true
	invalid := false

	testCases := []struct {
		name         string
		baseImage    string
		editing      bool
		imageChanged bool
		session      *view.ValidationSession
		disabled     bool
	}{
		{
			name:      "empty image never blocks",
			baseImage: "",
			session:   nil,
			disabled:  false,
		},
		{
			name:         "editing with untouched image never blocks",
			baseImage:    "custom/img:1",
			editing:      true,
			imageChanged: false,
			session:      nil,
			disabled:     false,
		},
		{
			name:      "new shell without a session blocks",
			baseImage: "custom/img:1",
			session:   nil,
			disabled:  true,
		},
		{
			name:      "successful validation unblocks",
			baseImage: "custom/img:1",
			session:   sessionWith(view.StageSuccess, &valid),
			disabled:  false,
		},
		{
			name:      "failed validation blocks",
			baseImage: "custom/img:1",
			session:   sessionWith(view.StageFailed, &invalid),
			disabled:  true,
		},
		{
			name:      "validation still in flight blocks",
			baseImage: "custom/img:1",
			session:   sessionWith(view.StageRunningChecks, nil),
			disabled:  true,
		},
		{
			name:      "success stage without a verdict blocks",
			baseImage: "custom/img:1",
			session:   sessionWith(view.StageSuccess, nil),
			disabled:  true,
		},
		{
			name:         "editing with a changed image requires a fresh session",
			baseImage:    "custom/img:2",
			editing:      true,
			imageChanged: true,
			session:      nil,
			disabled:     true,
		},
		{
			name:         "editing with a changed and revalidated image unblocks",
			baseImage:    "custom/img:2",
			editing:      true,
			imageChanged: true,
			session:      sessionWith(view.StageSuccess, &valid),
			disabled:     false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.disabled, SaveDisabled(tc.baseImage, tc.editing, tc.imageChanged, tc.session))
		})
	}
}

func TestShellTypeRequiresValidation(t *testing.T) {
	assert.True(t, shellTypeRequiresValidation("claude-code"))
	assert.True(t, shellTypeRequiresValidation("custom"))
	// Unknown types fail closed.
	assert.True(t, shellTypeRequiresValidation("something-new"))
}

func TestValidShellType(t *testing.T) {
	assert.True(t, validShellType("openhands"))
	assert.False(t, validShellType("not-a-shell"))
}
