package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/meikuraledutech/flow"
)

const (
	insertEdgeSQL = `INSERT INTO workflow_edges (workflow_id, id, seq, source_node_id, target_node_id, source_port, target_port, label, stroke_color, line_style, tip_style, label_background) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	listEdgesSQL  = `SELECT id, source_node_id, target_node_id, source_port, target_port, label, stroke_color, line_style, tip_style, label_background FROM workflow_edges WHERE workflow_id = $1 ORDER BY seq`
)

func insertEdges(ctx context.Context, tx pgx.Tx, workflowID string, edges []flow.Edge) error {
	for i, e := range edges {
		if _, err := tx.Exec(ctx, insertEdgeSQL,
			workflowID, e.ID, i, e.Source, e.Target, e.SourcePort, e.TargetPort,
			e.Label, e.StrokeColor, string(e.LineStyle), string(e.TipStyle), string(e.LabelBackground),
		); err != nil {
			return fmt.Errorf("flow: insert edge %s: %w", e.ID, err)
		}
	}
	return nil
}

// listEdges returns all edges of a workflow in saved order.
// Returns an empty slice (not nil) if none found.
func (s *PGStore) listEdges(ctx context.Context, workflowID string) ([]flow.Edge, error) {
	rows, err := s.db.Query(ctx, listEdgesSQL, workflowID)
	if err != nil {
		return nil, fmt.Errorf("flow: list edges: %w", err)
	}
	defer rows.Close()

	edges := []flow.Edge{}
	for rows.Next() {
		var (
			e                    flow.Edge
			line, tip, labelFill string
		)
		if err := rows.Scan(&e.ID, &e.Source, &e.Target, &e.SourcePort, &e.TargetPort,
			&e.Label, &e.StrokeColor, &line, &tip, &labelFill); err != nil {
			return nil, fmt.Errorf("flow: scan edge: %w", err)
		}
		e.LineStyle = flow.LineStyle(line)
		e.TipStyle = flow.TipStyle(tip)
		e.LabelBackground = flow.LabelBackground(labelFill)
		edges = append(edges, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("flow: rows edges: %w", err)
	}
	return edges, nil
}
