package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/openlingua/academy-api/internal/models"
)

// ScheduleRepository persists weekly teacher schedules.
type ScheduleRepository struct {
	db *sqlx.DB
}

// NewScheduleRepository constructs the repository.
func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// GetByTeacher returns the stored weekly schedule for a teacher.
func (r *ScheduleRepository) GetByTeacher(ctx context.Context, teacherID string) (*models.TeacherSchedule, error) {
	const query = `SELECT id, teacher_id, work_hours, break_hours, working_days, created_at, updated_at FROM teacher_schedules WHERE teacher_id = $1`
	var schedule models.TeacherSchedule
	if err := r.db.GetContext(ctx, &schedule, query, teacherID); err != nil {
		return nil, err
	}
	return &schedule, nil
}

// Upsert creates or replaces a teacher's weekly schedule.
func (r *ScheduleRepository) Upsert(ctx context.Context, schedule *models.TeacherSchedule) error {
	if schedule.ID == "" {
		schedule.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if schedule.CreatedAt.IsZero() {
		schedule.CreatedAt = now
	}
	schedule.UpdatedAt = now
	if len(schedule.WorkHours) == 0 {
		schedule.WorkHours = []byte("{}")
	}
	if len(schedule.BreakHours) == 0 {
		schedule.BreakHours = []byte("{}")
	}
	if len(schedule.WorkingDays) == 0 {
		schedule.WorkingDays = []byte("[]")
	}

	const query = `INSERT INTO teacher_schedules (id, teacher_id, work_hours, break_hours, working_days, created_at, updated_at)
		VALUES (:id, :teacher_id, :work_hours, :break_hours, :working_days, :created_at, :updated_at)
		ON CONFLICT (teacher_id) DO UPDATE
		SET work_hours = EXCLUDED.work_hours,
		    break_hours = EXCLUDED.break_hours,
		    working_days = EXCLUDED.working_days,
		    updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, schedule); err != nil {
		return fmt.Errorf("upsert teacher schedule: %w", err)
	}
	return nil
}
