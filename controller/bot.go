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

package controller

import (
	"net/http"

	"github.com/wecode-ai/wegent-console/secctx"
	"github.com/wecode-ai/wegent-console/service"
	"github.com/wecode-ai/wegent-console/view"
)

type BotController interface {
	CreateBot(w http.ResponseWriter, r *http.Request)
	UpdateBot(w http.ResponseWriter, r *http.Request)
	GetBot(w http.ResponseWriter, r *http.Request)
	ListBots(w http.ResponseWriter, r *http.Request)
	DeleteBot(w http.ResponseWriter, r *http.Request)
}

func NewBotController(botService service.BotService) BotController {
	return &botControllerImpl{botService: botService}
}

type botControllerImpl struct {
	botService service.BotService
}

func (c *botControllerImpl) CreateBot(w http.ResponseWriter, r *http.Request) {
	var req view.BotSaveRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ctx := secctx.MakeUserContext(r)
	bot, err := c.botService.CreateBot(ctx, req)
	if err != nil {
		respondWithError(w, "Failed to create bot", err)
		return
	}

	respondWithJson(w, http.StatusCreated, bot)
}

func (c *botControllerImpl) UpdateBot(w http.ResponseWriter, r *http.Request) {
	botId := getStringParam(r, "botId")

	var req view.BotSaveRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ctx := secctx.MakeUserContext(r)
	bot, err := c.botService.UpdateBot(ctx, botId, req)
	if err != nil {
		respondWithError(w, "Failed to update bot", err)
		return
	}

	respondWithJson(w, http.StatusOK, bot)
}

func (c *botControllerImpl) GetBot(w http.ResponseWriter, r *http.Request) {
	botId := getStringParam(r, "botId")

	ctx := secctx.MakeUserContext(r)
	bot, err := c.botService.GetBot(ctx, botId)
	if err != nil {
		respondWithError(w, "Failed to get bot", err)
		return
	}

	respondWithJson(w, http.StatusOK, bot)
}

func (c *botControllerImpl) ListBots(w http.ResponseWriter, r *http.Request) {
	ctx := secctx.MakeUserContext(r)
	bots, err := c.botService.ListBots(ctx)
	if err != nil {
		respondWithError(w, "Failed to list bots", err)
		return
	}

	respondWithJson(w, http.StatusOK, bots)
}

func (c *botControllerImpl) DeleteBot(w http.ResponseWriter, r *http.Request) {
	botId := getStringParam(r, "botId")

	ctx := secctx.MakeUserContext(r)
	if err := c.botService.DeleteBot(ctx, botId); err != nil {
		respondWithError(w, "Failed to delete bot", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
