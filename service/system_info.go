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
	"fmt"
	"os"
	"strconv"

	log "github.com/sirupsen/logrus"
	"github.com/wecode-ai/wegent-console/db"
)

const (
	LISTEN_ADDRESS = "LISTEN_ADDRESS"
	ORIGIN_ALLOWED = "ORIGIN_ALLOWED"
	LOG_LEVEL      = "LOG_LEVEL"

	EXECUTOR_URL     = "EXECUTOR_URL"
	EXECUTOR_API_KEY = "EXECUTOR_API_KEY"

	JWT_PUBLIC_KEY  = "JWT_PUBLIC_KEY"
	CONSOLE_API_KEY = "CONSOLE_API_KEY"

	PG_HOST     = "PG_HOST"
	PG_PORT     = "PG_PORT"
	PG_DB       = "PG_DB"
	PG_USER     = "PG_USER"
	PG_PASSWORD = "PG_PASSWORD"

	OLRIC_DISCOVERY_MODE = "OLRIC_DISCOVERY_MODE"
	REPLICA_COUNT        = "REPLICA_COUNT"
	NAMESPACE            = "NAMESPACE"

	TASK_RETENTION_DAYS = "TASK_RETENTION_DAYS"
)

type SystemInfoService interface {
	Init() error
	GetListenAddress() string
	GetOriginAllowed() string
	GetLogLevel() string
	GetExecutorUrl() string
	GetExecutorApiKey() string
	GetJwtPublicKey() string
	GetConsoleApiKey() string
	GetCredsFromEnv() *db.Credentials
	GetOlricDiscoveryMode() string
	GetReplicaCount() int
	GetNamespace() string
	GetTaskRetentionDays() int
}

func NewSystemInfoService() (SystemInfoService, error) {
	s := &systemInfoServiceImpl{
		systemInfoMap: make(map[string]interface{})}
	if err := s.Init(); err != nil {
		log.Error("Failed to read system info: " + err.Error())
		return nil, err
	}
	return s, nil
}

type systemInfoServiceImpl struct {
	systemInfoMap map[string]interface{}
}

func (g systemInfoServiceImpl) Init() error {
	g.setListenAddress()
	g.setOriginAllowed()
	g.setLogLevel()
	if err := g.setExecutorUrl(); err != nil {
		return err
	}
	g.setExecutorApiKey()
	g.setJwtPublicKey()
	g.setConsoleApiKey()
	g.setDBCreds()
	g.setOlricDiscoveryMode()
	g.setReplicaCount()
	g.setNamespace()
	g.setTaskRetentionDays()

	return nil
}

func (g systemInfoServiceImpl) setListenAddress() {
	listenAddr := os.Getenv(LISTEN_ADDRESS)
	if listenAddr == "" {
		listenAddr = ":8080"
	}
	g.systemInfoMap[LISTEN_ADDRESS] = listenAddr
}

func (g systemInfoServiceImpl) GetListenAddress() string {
	return g.systemInfoMap[LISTEN_ADDRESS].(string)
}

func (g systemInfoServiceImpl) setOriginAllowed() {
	g.systemInfoMap[ORIGIN_ALLOWED] = os.Getenv(ORIGIN_ALLOWED)
}

func (g systemInfoServiceImpl) GetOriginAllowed() string {
	return g.systemInfoMap[ORIGIN_ALLOWED].(string)
}

func (g systemInfoServiceImpl) setLogLevel() {
	g.systemInfoMap[LOG_LEVEL] = os.Getenv(LOG_LEVEL)
}

func (g systemInfoServiceImpl) GetLogLevel() string {
	return g.systemInfoMap[LOG_LEVEL].(string)
}

func (g systemInfoServiceImpl) setExecutorUrl() error {
	executorUrl := os.Getenv(EXECUTOR_URL)
	if executorUrl == "" {
		return fmt.Errorf("%s env is not set", EXECUTOR_URL)
	}
	g.systemInfoMap[EXECUTOR_URL] = executorUrl
	return nil
}

func (g systemInfoServiceImpl) GetExecutorUrl() string {
	return g.systemInfoMap[EXECUTOR_URL].(string)
}

func (g systemInfoServiceImpl) setExecutorApiKey() {
	g.systemInfoMap[EXECUTOR_API_KEY] = os.Getenv(EXECUTOR_API_KEY)
}

func (g systemInfoServiceImpl) GetExecutorApiKey() string {
	return g.systemInfoMap[EXECUTOR_API_KEY].(string)
}

func (g systemInfoServiceImpl) setJwtPublicKey() {
	g.systemInfoMap[JWT_PUBLIC_KEY] = os.Getenv(JWT_PUBLIC_KEY)
}

func (g systemInfoServiceImpl) GetJwtPublicKey() string {
	return g.systemInfoMap[JWT_PUBLIC_KEY].(string)
}

func (g systemInfoServiceImpl) setConsoleApiKey() {
	g.systemInfoMap[CONSOLE_API_KEY] = os.Getenv(CONSOLE_API_KEY)
}

func (g systemInfoServiceImpl) GetConsoleApiKey() string {
	return g.systemInfoMap[CONSOLE_API_KEY].(string)
}

func (g systemInfoServiceImpl) setDBCreds() {
	host := os.Getenv(PG_HOST)
	if host == "" {
		host = "localhost"
	}
	port, err := strconv.Atoi(os.Getenv(PG_PORT))
	if err != nil {
		port = 5432
	}
	database := os.Getenv(PG_DB)
	if database == "" {
		database = "wegent"
	}
	username := os.Getenv(PG_USER)
	password := os.Getenv(PG_PASSWORD)

	g.systemInfoMap["dbCreds"] = &db.Credentials{
		Host:     host,
		Port:     port,
		Database: database,
		Username: username,
		Password: password,
	}
}

func (g systemInfoServiceImpl) GetCredsFromEnv() *db.Credentials {
	return g.systemInfoMap["dbCreds"].(*db.Credentials)
}

func (g systemInfoServiceImpl) setOlricDiscoveryMode() {
	g.systemInfoMap[OLRIC_DISCOVERY_MODE] = os.Getenv(OLRIC_DISCOVERY_MODE)
}

func (g systemInfoServiceImpl) GetOlricDiscoveryMode() string {
	return g.systemInfoMap[OLRIC_DISCOVERY_MODE].(string)
}

func (g systemInfoServiceImpl) setReplicaCount() {
	replicaCount, err := strconv.Atoi(os.Getenv(REPLICA_COUNT))
	if err != nil {
		replicaCount = 1
	}
	g.systemInfoMap[REPLICA_COUNT] = replicaCount
}

func (g systemInfoServiceImpl) GetReplicaCount() int {
	return g.systemInfoMap[REPLICA_COUNT].(int)
}

func (g systemInfoServiceImpl) setNamespace() {
	g.systemInfoMap[NAMESPACE] = os.Getenv(NAMESPACE)
}

func (g systemInfoServiceImpl) GetNamespace() string {
	return g.systemInfoMap[NAMESPACE].(string)
}

func (g systemInfoServiceImpl) setTaskRetentionDays() {
	retentionDays, err := strconv.Atoi(os.Getenv(TASK_RETENTION_DAYS))
	if err != nil || retentionDays <= 0 {
		retentionDays = 30
	}
	g.systemInfoMap[TASK_RETENTION_DAYS] = retentionDays
}

func (g systemInfoServiceImpl) GetTaskRetentionDays() int {
	return g.systemInfoMap[TASK_RETENTION_DAYS].(int)
}
