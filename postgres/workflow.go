package postgres

import (
	"context"
	"fmt"

	"github.com/meikuraledutech/flow"
	"go.uber.org/zap"
)

const (
	upsertWorkflowSQL = `INSERT INTO workflows (id) VALUES ($1) ON CONFLICT (id) DO UPDATE SET updated_at = NOW()`
	deleteEdgesSQL    = `DELETE FROM workflow_edges WHERE workflow_id = $1`
	deleteNodesSQL    = `DELETE FROM workflow_nodes WHERE workflow_id = $1`
	deleteWorkflowSQL = `DELETE FROM workflows WHERE id = $1`
	findWorkflowSQL   = `SELECT id FROM workflows WHERE id = $1`
	listWorkflowsSQL  = `SELECT id FROM workflows ORDER BY id`
)

// SaveWorkflow stores a snapshot under workflowID in one transaction,
// replacing whatever was saved there before.
func (s *PGStore) SaveWorkflow(ctx context.Context, workflowID string, snap flow.Snapshot) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("flow: begin tx: %w", err)
	}
	defer s.rollback(ctx, tx)

	if _, err := tx.Exec(ctx, upsertWorkflowSQL, workflowID); err != nil {
		return fmt.Errorf("flow: upsert workflow: %w", err)
	}

	// Replace semantics: clear the previous version first.
	if _, err := tx.Exec(ctx, deleteEdgesSQL, workflowID); err != nil {
		return fmt.Errorf("flow: delete edges: %w", err)
	}
	if _, err := tx.Exec(ctx, deleteNodesSQL, workflowID); err != nil {
		return fmt.Errorf("flow: delete nodes: %w", err)
	}

	if err := insertNodes(ctx, tx, workflowID, snap.Nodes); err != nil {
		return err
	}
	if err := insertEdges(ctx, tx, workflowID, snap.Edges); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("flow: commit: %w", err)
	}

	s.log.Debug("workflow saved",
		zap.String("workflow", workflowID),
		zap.Int("nodes", len(snap.Nodes)),
		zap.Int("edges", len(snap.Edges)),
	)
	return nil
}

// LoadWorkflow retrieves the snapshot saved under workflowID.
// Returns nil, nil if the workflow doesn't exist.
func (s *PGStore) LoadWorkflow(ctx context.Context, workflowID string) (*flow.Snapshot, error) {
	var id string
	if err := s.db.QueryRow(ctx, findWorkflowSQL, workflowID).Scan(&id); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("flow: find workflow: %w", err)
	}

	nodes, err := s.listNodes(ctx, workflowID)
	if err != nil {
		return nil, err
	}
	edges, err := s.listEdges(ctx, workflowID)
	if err != nil {
		return nil, err
	}
	return &flow.Snapshot{Nodes: nodes, Edges: edges}, nil
}

// DeleteWorkflow removes a workflow; nodes and edges are cascade-deleted by
// the DB. Returns flow.ErrWorkflowNotFound if nothing was deleted.
func (s *PGStore) DeleteWorkflow(ctx context.Context, workflowID string) error {
	tag, err := s.db.Exec(ctx, deleteWorkflowSQL, workflowID)
	if err != nil {
		return fmt.Errorf("flow: delete workflow: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return flow.ErrWorkflowNotFound
	}
	return nil
}

// ListWorkflows returns the ids of all saved workflows.
// Returns an empty slice (not nil) if none found.
func (s *PGStore) ListWorkflows(ctx context.Context) ([]string, error) {
	rows, err := s.db.Query(ctx, listWorkflowsSQL)
	if err != nil {
		return nil, fmt.Errorf("flow: list workflows: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("flow: scan workflow: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("flow: rows workflows: %w", err)
	}
	return ids, nil
}

var _ flow.Persister = (*PGStore)(nil)
