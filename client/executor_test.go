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

package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wecode-ai/wegent-console/exception"
	"github.com/wecode-ai/wegent-console/view"
)

func TestSubmitImageValidation(t *testing.T) {
	var gotApiKey string
	var gotBody view.ExecutorValidateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/validate-image", r.URL.Path)
		gotApiKey = r.Header.Get("api-key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode(view.ExecutorSubmitResponse{Status: view.ExecutorSubmitted, ValidationId: "val-42"})
	}))
	defer srv.Close()

	ec := NewExecutorClient(srv.URL, "secret-key")
	resp, err := ec.SubmitImageValidation(context.Background(), view.ExecutorValidateRequest{Image: "custom/img:1", ShellType: "claude-code"})
	require.NoError(t, err)
	assert.Equal(t, view.ExecutorSubmitted, resp.Status)
	assert.Equal(t, "val-42", resp.ValidationId)
	assert.Equal(t, "secret-key", gotApiKey)
	assert.Equal(t, "custom/img:1", gotBody.Image)
}

func TestSubmitImageValidationUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	ec := NewExecutorClient(srv.URL, "wrong-key")
	_, err := ec.SubmitImageValidation(context.Background(), view.ExecutorValidateRequest{Image: "custom/img:1"})
	require.Error(t, err)

	var customError *exception.CustomError
	require.True(t, errors.As(err, &customError))
	assert.Equal(t, http.StatusFailedDependency, customError.Status)
	assert.Equal(t, exception.NoExecutorAccess, customError.Code)
}

func TestGetValidationStatus(t *testing.T) {
	valid := true
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/validation-status/val-42", r.URL.Path)
		json.NewEncoder(w).Encode(view.ExecutorStatusResponse{
			Stage:  view.StageCompleted,
			Valid:  &valid,
			Checks: []view.CheckResult{{Name: "node", Status: view.CheckStatusPass, Version: "20.11.0"}},
		})
	}))
	defer srv.Close()

	ec := NewExecutorClient(srv.URL, "secret-key")
	status, err := ec.GetValidationStatus(context.Background(), "val-42")
	require.NoError(t, err)
	require.NotNil(t, status)
	assert.Equal(t, view.StageCompleted, status.Stage)
	require.NotNil(t, status.Valid)
	assert.True(t, *status.Valid)
	require.Len(t, status.Checks, 1)
}

func TestGetValidationStatusNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	ec := NewExecutorClient(srv.URL, "secret-key")
	status, err := ec.GetValidationStatus(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, status)
}

func TestGetValidationStatusServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	ec := NewExecutorClient(srv.URL, "secret-key")
	_, err := ec.GetValidationStatus(context.Background(), "val-42")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status code 500")
}
