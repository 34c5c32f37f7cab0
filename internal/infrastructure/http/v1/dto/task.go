package dto

import (
	"time"

	"karobar/internal/domain/tasks"
)

// AssignWorkerTaskRequest assigns (or replaces) a worker's active task.
// The worker ID comes from the URL path.
type AssignWorkerTaskRequest struct {
	WorkerName string `json:"workerName" binding:"required"`
	Task       string `json:"task" binding:"required"`
}

// ToEntity converts request to domain entity.
func (r *AssignWorkerTaskRequest) ToEntity(workerID string) *tasks.WorkerTask {
	return &tasks.WorkerTask{
		WorkerID:   workerID,
		WorkerName: r.WorkerName,
		Task:       r.Task,
		AssignedAt: time.Now().UTC(),
	}
}

// UpdateProgressRequest moves a task through its progress states.
type UpdateProgressRequest struct {
	Progress tasks.Progress `json:"progress" binding:"required"`
}

// AssignSalesmanPlanRequest assigns (or replaces) a salesman's day plan.
// The salesman ID comes from the URL path.
type AssignSalesmanPlanRequest struct {
	SalesmanName string   `json:"salesmanName" binding:"required"`
	Location     string   `json:"location" binding:"required"`
	ItemsToCarry []string `json:"itemsToCarry"`
}

// ToEntity converts request to domain entity.
func (r *AssignSalesmanPlanRequest) ToEntity(salesmanID string) *tasks.SalesmanPlan {
	return &tasks.SalesmanPlan{
		SalesmanID:   salesmanID,
		SalesmanName: r.SalesmanName,
		Location:     r.Location,
		ItemsToCarry: r.ItemsToCarry,
		AssignedAt:   time.Now().UTC(),
	}
}
