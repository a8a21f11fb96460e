package repository

import (
	"context"
	"errors"
	"time"

	"github.com/go-pg/pg/v10"
	"github.com/wecode-ai/wegent-console/db"
	"github.com/wecode-ai/wegent-console/entity"
	"github.com/wecode-ai/wegent-console/view"
)

type TaskRepository interface {
	SaveTask(ctx context.Context, task entity.Task, messages []entity.TaskMessage) error
	UpdateTaskStatus(ctx context.Context, id string, status view.TaskStatus, details string) error
	GetTaskById(ctx context.Context, id string) (*entity.Task, error)
	ListTasks(ctx context.Context, createdBy string, statuses []view.TaskStatus) ([]entity.Task, error)
	SaveTaskMessage(ctx context.Context, msg entity.TaskMessage) error
	GetTaskMessages(ctx context.Context, taskId string) ([]entity.TaskMessage, error)
	CountActiveTasksByBotId(ctx context.Context, botId string) (int, error)
	DeleteTerminalTasksBefore(ctx context.Context, cutoff time.Time) (int, error)
}

func NewTaskRepository(cp db.ConnectionProvider) TaskRepository {
	return &taskRepositoryImpl{cp: cp}
}

type taskRepositoryImpl struct {
	cp db.ConnectionProvider
}

func (r *taskRepositoryImpl) SaveTask(ctx context.Context, task entity.Task, messages []entity.TaskMessage) error {
	return r.cp.GetConnection().RunInTransaction(ctx, func(tx *pg.Tx) error {
		_, err := tx.ModelContext(ctx, &task).Insert()
		if err != nil {
			return err
		}
		for i := range messages {
			_, err = tx.ModelContext(ctx, &messages[i]).Insert()
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *taskRepositoryImpl) UpdateTaskStatus(ctx context.Context, id string, status view.TaskStatus, details string) error {
	_, err := r.cp.GetConnection().ModelContext(ctx, (*entity.Task)(nil)).
		Set("status = ?", status).
		Set("details = ?", details).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).
		Update()
	return err
}

func (r *taskRepositoryImpl) GetTaskById(ctx context.Context, id string) (*entity.Task, error) {
	var task entity.Task
	err := r.cp.GetConnection().ModelContext(ctx, &task).
		Where("id = ?", id).
		Select()
	if err != nil {
		if errors.Is(err, pg.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &task, nil
}

func (r *taskRepositoryImpl) ListTasks(ctx context.Context, createdBy string, statuses []view.TaskStatus) ([]entity.Task, error) {
	var tasks []entity.Task
	query := r.cp.GetConnection().ModelContext(ctx, &tasks).Order("created_at DESC")
	if createdBy != "" {
		query.Where("created_by = ?", createdBy)
	}
	if len(statuses) > 0 {
		query.Where("status in (?)", pg.In(statuses))
	}
	err := query.Select()
	if err != nil {
		if errors.Is(err, pg.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepositoryImpl) SaveTaskMessage(ctx context.Context, msg entity.TaskMessage) error {
	_, err := r.cp.GetConnection().ModelContext(ctx, &msg).Insert()
	return err
}

func (r *taskRepositoryImpl) GetTaskMessages(ctx context.Context, taskId string) ([]entity.TaskMessage, error) {
	var messages []entity.TaskMessage
	err := r.cp.GetConnection().ModelContext(ctx, &messages).
		Where("task_id = ?", taskId).
		Order("created_at ASC").
		Select()
	if err != nil {
		if errors.Is(err, pg.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return messages, nil
}

func (r *taskRepositoryImpl) CountActiveTasksByBotId(ctx context.Context, botId string) (int, error) {
	return r.cp.GetConnection().ModelContext(ctx, (*entity.Task)(nil)).
		Where("bot_id = ?", botId).
		Where("status not in (?)", pg.In([]view.TaskStatus{
			view.TaskStatusCompleted, view.TaskStatusFailed, view.TaskStatusCancelled,
		})).
		Count()
}

// DeleteTerminalTasksBefore removes finished tasks and their messages, used by
// the retention janitor.
func (r *taskRepositoryImpl) DeleteTerminalTasksBefore(ctx context.Context, cutoff time.Time) (int, error) {
	deleted := 0
	err := r.cp.GetConnection().RunInTransaction(ctx, func(tx *pg.Tx) error {
		_, err := tx.ModelContext(ctx, (*entity.TaskMessage)(nil)).
			Where("task_id in (select id from task where updated_at < ? and status in (?))",
				cutoff, pg.In([]view.TaskStatus{
					view.TaskStatusCompleted, view.TaskStatusFailed, view.TaskStatusCancelled,
				})).
			Delete()
		if err != nil {
			return err
		}
		res, err := tx.ModelContext(ctx, (*entity.Task)(nil)).
			Where("updated_at < ?", cutoff).
			Where("status in (?)", pg.In([]view.TaskStatus{
				view.TaskStatusCompleted, view.TaskStatusFailed, view.TaskStatusCancelled,
			})).
			Delete()
		if err != nil {
			return err
		}
		deleted = res.RowsAffected()
		return nil
	})
	return deleted, err
}
