package postgres

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/meikuraledutech/flow"
)

const (
	insertNodeSQL = `INSERT INTO workflow_nodes (workflow_id, id, seq, pos_x, pos_y, category, label, template_id, ai_capable, settings, run_state) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	listNodesSQL  = `SELECT id, pos_x, pos_y, category, label, template_id, ai_capable, settings, run_state FROM workflow_nodes WHERE workflow_id = $1 ORDER BY seq`
)

func insertNodes(ctx context.Context, tx pgx.Tx, workflowID string, nodes []flow.Node) error {
	for i, n := range nodes {
		settings, err := encodeSettings(n.Settings)
		if err != nil {
			return fmt.Errorf("flow: encode settings of node %s: %w", n.ID, err)
		}
		if _, err := tx.Exec(ctx, insertNodeSQL,
			workflowID, n.ID, i, n.Position.X, n.Position.Y,
			string(n.Category), n.Label, n.TemplateID, n.AICapable,
			settings, string(n.RunState),
		); err != nil {
			return fmt.Errorf("flow: insert node %s: %w", n.ID, err)
		}
	}
	return nil
}

// listNodes returns all nodes of a workflow in saved order.
// Returns an empty slice (not nil) if none found.
func (s *PGStore) listNodes(ctx context.Context, workflowID string) ([]flow.Node, error) {
	rows, err := s.db.Query(ctx, listNodesSQL, workflowID)
	if err != nil {
		return nil, fmt.Errorf("flow: list nodes: %w", err)
	}
	defer rows.Close()

	nodes := []flow.Node{}
	for rows.Next() {
		var (
			n                  flow.Node
			category, runState string
			settings           []byte
		)
		if err := rows.Scan(&n.ID, &n.Position.X, &n.Position.Y, &category, &n.Label,
			&n.TemplateID, &n.AICapable, &settings, &runState); err != nil {
			return nil, fmt.Errorf("flow: scan node: %w", err)
		}
		n.Category = flow.Category(category)
		n.RunState = flow.RunState(runState)
		if n.Settings, err = decodeSettings(settings); err != nil {
			return nil, fmt.Errorf("flow: decode settings of node %s: %w", n.ID, err)
		}
		nodes = append(nodes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("flow: rows nodes: %w", err)
	}
	return nodes, nil
}

func encodeSettings(s flow.Settings) ([]byte, error) {
	if s == nil {
		s = flow.Settings{}
	}
	return json.Marshal(s)
}

// decodeSettings reads integers back as int64, the type TOML defaults use,
// and other numbers as float64.
func decodeSettings(data []byte) (flow.Settings, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var s flow.Settings
	if err := dec.Decode(&s); err != nil {
		return nil, err
	}
	for i := range s {
		s[i].Value = normalizeNumbers(s[i].Value)
	}
	return s, nil
}

func normalizeNumbers(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		f, _ := t.Float64()
		return f
	case []any:
		for i := range t {
			t[i] = normalizeNumbers(t[i])
		}
		return t
	case map[string]any:
		for k, e := range t {
			t[k] = normalizeNumbers(e)
		}
		return t
	default:
		return v
	}
}
