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

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationStageProgress(t *testing.T) {
	assert.Equal(t, 10, StageSubmitted.Progress())
	assert.Equal(t, 30, StagePullingImage.Progress())
	assert.Equal(t, 50, StageStartingContainer.Progress())
	assert.Equal(t, 70, StageRunningChecks.Progress())
	assert.Equal(t, 100, StageCompleted.Progress())
	assert.Equal(t, 100, StageSuccess.Progress())
	assert.Equal(t, 100, StageFailed.Progress())
	assert.Equal(t, 0, ValidationStage("unknown").Progress())
}

func TestValidationStageIsTerminal(t *testing.T) {
	terminal := []ValidationStage{StageSuccess, StageFailed, StageError}
	for _, stage := range terminal {
		assert.True(t, stage.IsTerminal(), string(stage))
	}
	nonTerminal := []ValidationStage{StageSubmitted, StagePullingImage, StageStartingContainer, StageRunningChecks, StageCompleted}
	for _, stage := range nonTerminal {
		assert.False(t, stage.IsTerminal(), string(stage))
	}
}
