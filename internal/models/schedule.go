package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

// TeacherSchedule stores a teacher's weekly working pattern. Work hours,
// break hours and working days are kept as JSON documents keyed by
// lowercase day names (monday..sunday).
type TeacherSchedule struct {
	ID          string         `db:"id" json:"id"`
	TeacherID   string         `db:"teacher_id" json:"teacher_id"`
	WorkHours   types.JSONText `db:"work_hours" json:"work_hours"`
	BreakHours  types.JSONText `db:"break_hours" json:"break_hours"`
	WorkingDays types.JSONText `db:"working_days" json:"working_days"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updated_at"`
}
