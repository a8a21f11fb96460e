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

// ModelCategory separates provider configurations by backend kind.
type ModelCategory string

const (
	LLMModel       ModelCategory = "llm"
	TTSModel       ModelCategory = "tts"
	STTModel       ModelCategory = "stt"
	EmbeddingModel ModelCategory = "embedding"
	RerankModel    ModelCategory = "rerank"
)

func ValidModelCategory(c ModelCategory) bool {
	switch c {
	case LLMModel, TTSModel, STTModel, EmbeddingModel, RerankModel:
		return true
	default:
		return false
	}
}

// ModelConfig is the per-category tuning payload. Its JSON schema is exposed
// to the console for form rendering, see /api/v1/models/schema.
type ModelConfig struct {
	Temperature *float64 `json:"temperature,omitempty" jsonschema:"minimum=0,maximum=2"`
	MaxTokens   *int     `json:"maxTokens,omitempty" jsonschema:"minimum=1"`
	TopP        *float64 `json:"topP,omitempty" jsonschema:"minimum=0,maximum=1"`
	Dimensions  *int     `json:"dimensions,omitempty" jsonschema:"minimum=1"`
	Voice       string   `json:"voice,omitempty"`
	Language    string   `json:"language,omitempty"`
}

type Model struct {
	Id        string        `json:"id"`
	Name      string        `json:"name"`
	Category  ModelCategory `json:"category"`
	Provider  string        `json:"provider"`
	BaseUrl   string        `json:"baseUrl,omitempty"`
	ModelName string        `json:"modelName"`
	Config    ModelConfig   `json:"config"`
	CreatedAt time.Time     `json:"createdAt"`
	CreatedBy string        `json:"createdBy,omitempty"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

type Models struct {
	Models []Model `json:"models"`
}

type ModelSaveRequest struct {
	Name      string        `json:"name"`
	Category  ModelCategory `json:"category"`
	Provider  string        `json:"provider"`
	BaseUrl   string        `json:"baseUrl,omitempty"`
	ApiKey    string        `json:"apiKey,omitempty"` // write-only, never echoed back
	ModelName string        `json:"modelName"`
	Config    ModelConfig   `json:"config"`
}

// ModelCheckResult reports a connectivity probe against the configured
// provider. Shape mirrors image validation checks so the console renders
// both with the same component.
type ModelCheckResult struct {
	ModelId   string        `json:"modelId"`
	Status    string        `json:"status"` // pass, fail or skipped
	Checks    []CheckResult `json:"checks"`
	Errors    []string      `json:"errors,omitempty"`
	LatencyMs int64         `json:"latencyMs"`
}

const (
	ModelCheckPass    = "pass"
	ModelCheckFail    = "fail"
	ModelCheckSkipped = "skipped"
)
