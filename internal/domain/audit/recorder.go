// Package audit defines the audit trail contract for ledger mutations.
package audit

import (
	"context"

	"karobar/internal/core/id"
)

// Action represents the type of audited operation.
type Action string

const (
	ActionCreate  Action = "create"
	ActionUpdate  Action = "update"
	ActionDelete  Action = "delete"
	ActionPayment Action = "payment"
	ActionRestock Action = "restock"
)

// Recorder persists audit entries. Implementations must participate in the
// caller's transaction when one is present in the context, so an aborted
// ledger operation leaves no audit rows behind.
type Recorder interface {
	RecordChange(ctx context.Context, entityType string, entityID id.ID, action Action, changes map[string]any) error
}

// Nop is a Recorder that discards entries. Used in tests.
type Nop struct{}

func (Nop) RecordChange(ctx context.Context, entityType string, entityID id.ID, action Action, changes map[string]any) error {
	return nil
}
