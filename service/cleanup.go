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
	"context"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
	"github.com/wecode-ai/wegent-console/repository"
)

// staleSessionAge is how long an untouched validation session survives in
// memory. Terminal sessions are kept around so the dialog can re-read them.
const staleSessionAge = time.Hour

type CleanupService interface {
	Start() error
	RunRetentionCleanup(ctx context.Context) error
}

func NewCleanupService(taskRepository repository.TaskRepository, validationService ValidationService, retentionDays int) CleanupService {
	return &cleanupServiceImpl{
		taskRepository:    taskRepository,
		validationService: validationService,
		retentionDays:     retentionDays,
		scheduler:         cron.New(),
	}
}

type cleanupServiceImpl struct {
	taskRepository    repository.TaskRepository
	validationService ValidationService
	retentionDays     int
	scheduler         *cron.Cron
}

func (s *cleanupServiceImpl) Start() error {
	_, err := s.scheduler.AddFunc("0 3 * * *", func() {
		if err := s.RunRetentionCleanup(context.Background()); err != nil {
			log.Errorf("Retention cleanup failed: %v", err)
		}
	})
	if err != nil {
		return err
	}

	_, err = s.scheduler.AddFunc("@every 15m", func() {
		evicted := s.validationService.EvictStaleSessions(staleSessionAge)
		if evicted > 0 {
			log.Debugf("Evicted %d stale validation sessions", evicted)
		}
	})
	if err != nil {
		return err
	}

	s.scheduler.Start()
	return nil
}

func (s *cleanupServiceImpl) RunRetentionCleanup(ctx context.Context) error {
	cutoff := time.Now().AddDate(0, 0, -s.retentionDays)
	deleted, err := s.taskRepository.DeleteTerminalTasksBefore(ctx, cutoff)
	if err != nil {
		return err
	}
	log.Infof("Retention cleanup removed %d finished tasks older than %s", deleted, cutoff.Format(time.RFC3339))
	return nil
}
