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

package exception

import (
	"fmt"
	"strings"
)

type CustomError struct {
	Status  int                    `json:"status"`
	Code    string                 `json:"code,omitempty"`
	Message string                 `json:"message,omitempty"`
	Params  map[string]interface{} `json:"params,omitempty"`
	Debug   string                 `json:"debug,omitempty"`
}

func (c CustomError) Error() string {
	msg := c.Message
	for k, v := range c.Params {
		//todo make smart replace (e.g. now it replaces $shellId if we have $shell in params)
		msg = strings.ReplaceAll(msg, "$"+k, fmt.Sprintf("%v", v))
	}
	return msg
}

const NoExecutorAccess = "200"
const NoExecutorAccessMsg = "No access to sandbox executor with code: $code. Probably incorrect configuration: api key."

const InvalidURLEscape = "6"
const InvalidURLEscapeMsg = "Failed to unescape parameter $param"

const InvalidParameterValue = "9"
const InvalidParameterValueMsg = "Value '$value' is not allowed for parameter $param"

const BadRequestBody = "10"
const BadRequestBodyMsg = "Failed to decode body"

const RequiredParamsMissing = "15"
const RequiredParamsMissingMsg = "Required parameters are missing: $params"

const InsufficientPrivileges = "1900"
const InsufficientPrivilegesMsg = "You don't have enough privileges to perform this operation"

const EntityNotFound = "100"
const EntityNotFoundMsg = "$entity with id $id is not found"

const InvalidEntityName = "110"
const InvalidEntityNameMsg = "Name '$name' is not a valid $entity name"

const EntityNameAlreadyTaken = "120"
const EntityNameAlreadyTakenMsg = "$entity with name $name already exists"

const ImageNotValidated = "3000"
const ImageNotValidatedMsg = "Base image '$image' has not passed validation, the shell can not be saved"

const ValidationSessionNotFound = "3100"
const ValidationSessionNotFoundMsg = "Validation session with id $sessionId is not found"

const ValidationTimeout = "3200"
const ValidationTimeoutMsg = "Image validation timed out after $seconds seconds"

const EntityReferenced = "3300"
const EntityReferencedMsg = "$entity with id $id is still referenced by $refCount other entities and can not be deleted"

const ModelCheckNotSupported = "3400"
const ModelCheckNotSupportedMsg = "Connectivity check is not supported for model category $category"
