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

package main

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/wecode-ai/wegent-console/client"
	"github.com/wecode-ai/wegent-console/controller"
	"github.com/wecode-ai/wegent-console/db"
	"github.com/wecode-ai/wegent-console/repository"
	"github.com/wecode-ai/wegent-console/security"
	"github.com/wecode-ai/wegent-console/service"
)

func main() {
	systemInfoService, err := service.NewSystemInfoService()
	if err != nil {
		panic(err)
	}
	setupLogging(systemInfoService.GetLogLevel())

	cp := db.NewConnectionProvider(systemInfoService.GetCredsFromEnv())

	shellRepository := repository.NewShellRepository(cp)
	modelRepository := repository.NewModelRepository(cp)
	botRepository := repository.NewBotRepository(cp)
	groupRepository := repository.NewGroupRepository(cp)
	taskRepository := repository.NewTaskRepository(cp)

	olricProvider, err := client.NewOlricProvider(
		systemInfoService.GetOlricDiscoveryMode(),
		systemInfoService.GetReplicaCount(),
		systemInfoService.GetNamespace())
	if err != nil {
		log.Fatalf("Failed to create olric provider: %v", err)
	}

	executorClient := client.NewExecutorClient(systemInfoService.GetExecutorUrl(), systemInfoService.GetExecutorApiKey())
	llmClient := client.NewLLMClient()
	embeddingClient := client.NewEmbeddingClient()

	eventHub := service.NewEventHub()
	eventBroadcaster := service.NewEventBroadcaster(olricProvider, eventHub)
	eventBroadcaster.Start()

	validationService := service.NewValidationService(executorClient, eventBroadcaster)
	shellService := service.NewShellService(shellRepository, botRepository, validationService)
	modelService := service.NewModelService(modelRepository, botRepository, llmClient, embeddingClient)
	botService := service.NewBotService(botRepository, shellRepository, modelRepository, taskRepository)
	groupService := service.NewGroupService(groupRepository, botRepository)
	taskService := service.NewTaskService(taskRepository, botRepository, groupRepository, eventBroadcaster)
	authorizationService := service.NewAuthorizationService()

	cleanupService := service.NewCleanupService(taskRepository, validationService, systemInfoService.GetTaskRetentionDays())
	if err := cleanupService.Start(); err != nil {
		log.Fatalf("Failed to start cleanup scheduler: %v", err)
	}

	if err := security.SetupGoGuardian(systemInfoService.GetJwtPublicKey(), systemInfoService.GetConsoleApiKey()); err != nil {
		log.Fatalf("Failed to set up authentication: %v", err)
	}

	validationController := controller.NewValidationController(validationService)
	shellController := controller.NewShellController(shellService, authorizationService)
	modelController := controller.NewModelController(modelService, authorizationService)
	botController := controller.NewBotController(botService)
	groupController := controller.NewGroupController(groupService)
	taskController := controller.NewTaskController(taskService)
	eventsController := controller.NewEventsController(eventHub, systemInfoService.GetOriginAllowed())

	ready := false
	healthController := controller.NewHealthController(func() bool { return ready })

	router := mux.NewRouter()

	router.HandleFunc("/api/v1/validations", security.Secure(validationController.StartValidation)).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/validations/{sessionId}", security.Secure(validationController.GetValidationSession)).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/validations/{sessionId}", security.Secure(validationController.CancelValidationSession)).Methods(http.MethodDelete)

	router.HandleFunc("/api/v1/baseShells", security.Secure(shellController.GetBaseShells)).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/shells", security.Secure(shellController.CreateShell)).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/shells", security.Secure(shellController.ListShells)).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/shells/{shellId}", security.Secure(shellController.GetShell)).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/shells/{shellId}", security.Secure(shellController.UpdateShell)).Methods(http.MethodPut)
	router.HandleFunc("/api/v1/shells/{shellId}", security.Secure(shellController.DeleteShell)).Methods(http.MethodDelete)

	router.HandleFunc("/api/v1/models/schema", security.Secure(modelController.GetConfigSchema)).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/models", security.Secure(modelController.CreateModel)).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/models", security.Secure(modelController.ListModels)).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/models/{modelId}", security.Secure(modelController.GetModel)).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/models/{modelId}", security.Secure(modelController.UpdateModel)).Methods(http.MethodPut)
	router.HandleFunc("/api/v1/models/{modelId}", security.Secure(modelController.DeleteModel)).Methods(http.MethodDelete)
	router.HandleFunc("/api/v1/models/{modelId}/check", security.Secure(modelController.CheckModel)).Methods(http.MethodPost)

	router.HandleFunc("/api/v1/bots", security.Secure(botController.CreateBot)).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/bots", security.Secure(botController.ListBots)).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/bots/{botId}", security.Secure(botController.GetBot)).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/bots/{botId}", security.Secure(botController.UpdateBot)).Methods(http.MethodPut)
	router.HandleFunc("/api/v1/bots/{botId}", security.Secure(botController.DeleteBot)).Methods(http.MethodDelete)

	router.HandleFunc("/api/v1/groups", security.Secure(groupController.CreateGroup)).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/groups", security.Secure(groupController.ListGroups)).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/groups/{groupId}", security.Secure(groupController.GetGroup)).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/groups/{groupId}", security.Secure(groupController.UpdateGroup)).Methods(http.MethodPut)
	router.HandleFunc("/api/v1/groups/{groupId}", security.Secure(groupController.DeleteGroup)).Methods(http.MethodDelete)

	router.HandleFunc("/api/v1/tasks", security.Secure(taskController.CreateTask)).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/tasks", security.Secure(taskController.ListTasks)).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/tasks/{taskId}", security.Secure(taskController.GetTask)).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/tasks/{taskId}/messages", security.Secure(taskController.AddTaskMessage)).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/tasks/{taskId}/status", security.Secure(taskController.UpdateTaskStatus)).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/tasks/{taskId}/cancel", security.Secure(taskController.CancelTask)).Methods(http.MethodPost)

	router.HandleFunc("/api/v1/ws", security.Secure(eventsController.ConnectEvents)).Methods(http.MethodGet)

	router.HandleFunc("/live", security.NoSecure(healthController.HandleLivenessProbe)).Methods(http.MethodGet)
	router.HandleFunc("/ready", security.NoSecure(healthController.HandleReadinessProbe)).Methods(http.MethodGet)

	ready = true

	debug.SetGCPercent(30)

	srv := makeServer(systemInfoService, router)
	log.Fatalf("%v", srv.ListenAndServe())
}

func setupLogging(logLevel string) {
	if logLevel == "" {
		return
	}
	level, err := log.ParseLevel(logLevel)
	if err != nil {
		log.Warnf("Unknown log level %s, keeping default", logLevel)
		return
	}
	log.SetLevel(level)
}

func makeServer(systemInfoService service.SystemInfoService, r *mux.Router) *http.Server {
	listenAddr := systemInfoService.GetListenAddress()

	log.Infof("Listen addr = %s", listenAddr)

	var corsOptions []handlers.CORSOption

	corsOptions = append(corsOptions, handlers.AllowedHeaders([]string{"Connection", "Accept-Encoding", "Content-Encoding", "X-Requested-With", "Content-Type", "Authorization"}))

	allowedOrigin := systemInfoService.GetOriginAllowed()
	if allowedOrigin != "" {
		corsOptions = append(corsOptions, handlers.AllowedOrigins([]string{allowedOrigin}))
	}
	corsOptions = append(corsOptions, handlers.AllowedMethods([]string{"GET", "HEAD", "POST", "PUT", "DELETE", "OPTIONS"}))

	return &http.Server{
		Handler:      handlers.CompressHandler(handlers.CORS(corsOptions...)(r)),
		Addr:         listenAddr,
		WriteTimeout: 600 * time.Second,
		ReadTimeout:  60 * time.Second,
	}
}
