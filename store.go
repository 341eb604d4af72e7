package flow

import (
	"context"
	"errors"
)

var (
	ErrWorkflowNotFound = errors.New("flow: workflow not found")
	ErrNoPersister      = errors.New("flow: no persister configured")
)

// Persister saves and loads workflow snapshots. Selection is not persisted.
type Persister interface {
	// Schema
	CreateSchema(ctx context.Context) error
	DropSchema(ctx context.Context) error

	// Workflows
	SaveWorkflow(ctx context.Context, workflowID string, s Snapshot) error
	LoadWorkflow(ctx context.Context, workflowID string) (*Snapshot, error)
	DeleteWorkflow(ctx context.Context, workflowID string) error
	ListWorkflows(ctx context.Context) ([]string, error)
}
