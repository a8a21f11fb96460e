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

// Group is a collaboration roster: several bots plus human members that
// share group-chat task sessions.
type Group struct {
	Id          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	BotIds      []string  `json:"botIds"`
	Members     []string  `json:"members"`
	CreatedAt   time.Time `json:"createdAt"`
	CreatedBy   string    `json:"createdBy,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Groups struct {
	Groups []Group `json:"groups"`
}

type GroupSaveRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	BotIds      []string `json:"botIds"`
	Members     []string `json:"members,omitempty"`
}
