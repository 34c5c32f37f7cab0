// Package tasks manages worker task assignments and salesman day plans.
// Each worker has at most one active task; completions are appended to a
// history that is never rewritten.
package tasks

import (
	"context"
	"time"

	"karobar/internal/core/apperror"
	"karobar/internal/core/id"
)

// Progress is the state of a worker's active task.
type Progress string

const (
	ProgressAssigned   Progress = "assigned"
	ProgressInProgress Progress = "in_progress"
	ProgressDone       Progress = "done"
)

// ValidProgress reports whether p is a known progress value.
func ValidProgress(p Progress) bool {
	switch p {
	case ProgressAssigned, ProgressInProgress, ProgressDone:
		return true
	}
	return false
}

// WorkerTask is the single active assignment for a worker.
// WorkerID is the user ID of the worker, one row per worker.
type WorkerTask struct {
	WorkerID   string    `db:"worker_id" json:"workerId"`
	WorkerName string    `db:"worker_name" json:"workerName"`
	Task       string    `db:"task" json:"task"`
	Progress   Progress  `db:"progress" json:"progress"`
	AssignedBy string    `db:"assigned_by" json:"assignedBy"`
	AssignedAt time.Time `db:"assigned_at" json:"assignedAt"`
	UpdatedAt  time.Time `db:"updated_at" json:"updatedAt"`
}

// Validate checks required fields.
func (t *WorkerTask) Validate(ctx context.Context) error {
	if t.WorkerID == "" {
		return apperror.NewValidation("worker is required").
			WithDetail("field", "workerId")
	}
	if t.Task == "" {
		return apperror.NewValidation("task text is required").
			WithDetail("field", "task")
	}
	if !ValidProgress(t.Progress) {
		return apperror.NewValidation("unknown progress value").
			WithDetail("progress", string(t.Progress))
	}
	return nil
}

// HistoryEntry is one completed task, appended when a worker finishes.
type HistoryEntry struct {
	ID          id.ID     `db:"id" json:"id"`
	WorkerID    string    `db:"worker_id" json:"workerId"`
	WorkerName  string    `db:"worker_name" json:"workerName"`
	Task        string    `db:"task" json:"task"`
	AssignedAt  time.Time `db:"assigned_at" json:"assignedAt"`
	CompletedAt time.Time `db:"completed_at" json:"completedAt"`
}

// SalesmanPlan is the day plan assigned to a salesman: where to go and
// what stock to carry. One row per salesman, overwritten on reassignment.
type SalesmanPlan struct {
	SalesmanID   string    `db:"salesman_id" json:"salesmanId"`
	SalesmanName string    `db:"salesman_name" json:"salesmanName"`
	Location     string    `db:"location" json:"location"`
	ItemsToCarry []string  `db:"items_to_carry" json:"itemsToCarry"`
	AssignedBy   string    `db:"assigned_by" json:"assignedBy"`
	AssignedAt   time.Time `db:"assigned_at" json:"assignedAt"`
}

// Validate checks required fields.
func (p *SalesmanPlan) Validate(ctx context.Context) error {
	if p.SalesmanID == "" {
		return apperror.NewValidation("salesman is required").
			WithDetail("field", "salesmanId")
	}
	if p.Location == "" {
		return apperror.NewValidation("location is required").
			WithDetail("field", "location")
	}
	return nil
}
