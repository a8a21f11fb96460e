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
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
	"gopkg.in/resty.v1"

	"github.com/wecode-ai/wegent-console/exception"
	"github.com/wecode-ai/wegent-console/view"
)

// ExecutorClient talks to the sandbox executor that pulls shell images and
// runs the compliance checks inside a disposable container.
type ExecutorClient interface {
	SubmitImageValidation(ctx context.Context, req view.ExecutorValidateRequest) (*view.ExecutorSubmitResponse, error)
	GetValidationStatus(ctx context.Context, validationId string) (*view.ExecutorStatusResponse, error)
}

func NewExecutorClient(executorUrl, apiKey string) ExecutorClient {
	parsedExecutorUrl, err := url.Parse(executorUrl)
	executorHost := ""
	if err != nil {
		log.Errorf("Can't parse executor url: %v", err)
	} else {
		executorHost = parsedExecutorUrl.Hostname()
	}

	tr := http.Transport{TLSClientConfig: &tls.Config{InsecureSkipVerify: true}}
	cl := http.Client{Transport: &tr, Timeout: time.Second * 60}
	client := resty.NewWithClient(&cl)
	if executorHost != "" {
		client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(executorHost))
	}

	return &executorClientImpl{executorUrl: executorUrl, apiKey: apiKey, client: client}
}

type executorClientImpl struct {
	executorUrl string
	apiKey      string
	client      *resty.Client
}

func (e executorClientImpl) SubmitImageValidation(ctx context.Context, req view.ExecutorValidateRequest) (*view.ExecutorSubmitResponse, error) {
	request := e.makeRequest(ctx)
	request.SetBody(req)

	resp, err := request.Post(fmt.Sprintf("%s/api/v1/validate-image", e.executorUrl))
	if err != nil {
		return nil, fmt.Errorf("failed to submit validation for image %s: %s", req.Image, err.Error())
	}
	if resp.StatusCode() != http.StatusOK && resp.StatusCode() != http.StatusAccepted {
		if authErr := checkExecutorUnauthorized(resp); authErr != nil {
			return nil, authErr
		}
		return nil, fmt.Errorf("failed to submit validation for image %s: status code %d %s", req.Image, resp.StatusCode(), string(resp.Body()))
	}

	var submitResponse view.ExecutorSubmitResponse
	err = json.Unmarshal(resp.Body(), &submitResponse)
	if err != nil {
		return nil, err
	}
	return &submitResponse, nil
}

func (e executorClientImpl) GetValidationStatus(ctx context.Context, validationId string) (*view.ExecutorStatusResponse, error) {
	request := e.makeRequest(ctx)

	resp, err := request.Get(fmt.Sprintf("%s/api/v1/validation-status/%s", e.executorUrl, url.PathEscape(validationId)))
	if err != nil {
		return nil, fmt.Errorf("failed to get validation status for %s: %s", validationId, err.Error())
	}
	if resp.StatusCode() != http.StatusOK {
		if resp.StatusCode() == http.StatusNotFound {
			return nil, nil
		}
		if authErr := checkExecutorUnauthorized(resp); authErr != nil {
			return nil, authErr
		}
		return nil, fmt.Errorf("failed to get validation status for %s: status code %d %s", validationId, resp.StatusCode(), string(resp.Body()))
	}

	var statusResponse view.ExecutorStatusResponse
	err = json.Unmarshal(resp.Body(), &statusResponse)
	if err != nil {
		return nil, err
	}
	return &statusResponse, nil
}

func checkExecutorUnauthorized(resp *resty.Response) error {
	if resp != nil && (resp.StatusCode() == http.StatusUnauthorized || resp.StatusCode() == http.StatusForbidden) {
		log.Errorf("Incorrect executor api key detected!")
		return &exception.CustomError{
			Status:  http.StatusFailedDependency,
			Code:    exception.NoExecutorAccess,
			Message: exception.NoExecutorAccessMsg,
			Params:  map[string]interface{}{"code": strconv.Itoa(resp.StatusCode())},
		}
	}
	return nil
}

func (e executorClientImpl) makeRequest(ctx context.Context) *resty.Request {
	req := e.client.R()
	req.SetContext(ctx)
	req.SetHeader("api-key", e.apiKey)
	return req
}
