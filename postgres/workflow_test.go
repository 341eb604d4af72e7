package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/meikuraledutech/flow"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func sampleSnapshot() flow.Snapshot {
	return flow.Snapshot{
		Nodes: []flow.Node{
			{
				ID: "n1", Position: flow.Position{X: 10, Y: 20}, Category: flow.CategoryTrigger,
				Label: "Webhook", TemplateID: "webhook", RunState: flow.RunIdle,
				Settings: flow.Settings{{Key: "path", Value: "/hook"}},
			},
			{
				ID: "n2", Position: flow.Position{X: 200, Y: 20}, Category: flow.CategoryCondition,
				Label: "Check", TemplateID: "if", RunState: flow.RunIdle,
			},
		},
		Edges: []flow.Edge{
			{
				ID: "e1", Source: "n1", Target: "n2", SourcePort: flow.PortOutput,
				StrokeColor: flow.ColorBlack, LineStyle: flow.LineSolid,
				TipStyle: flow.TipArrowClosed, LabelBackground: flow.BackgroundCanvas,
			},
		},
	}
}

func newMockStore(t *testing.T) (*PGStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return New(mock, zap.NewNop()), mock
}

func TestSaveWorkflow(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces the workflow in one transaction", func(t *testing.T) {
		store, mock := newMockStore(t)
		snap := sampleSnapshot()

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(upsertWorkflowSQL)).WithArgs("wf").
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectExec(regexp.QuoteMeta(deleteEdgesSQL)).WithArgs("wf").
			WillReturnResult(pgxmock.NewResult("DELETE", 0))
		mock.ExpectExec(regexp.QuoteMeta(deleteNodesSQL)).WithArgs("wf").
			WillReturnResult(pgxmock.NewResult("DELETE", 0))
		for i, n := range snap.Nodes {
			mock.ExpectExec(regexp.QuoteMeta(insertNodeSQL)).
				WithArgs("wf", n.ID, i, n.Position.X, n.Position.Y, string(n.Category),
					n.Label, n.TemplateID, n.AICapable, pgxmock.AnyArg(), string(n.RunState)).
				WillReturnResult(pgxmock.NewResult("INSERT", 1))
		}
		e := snap.Edges[0]
		mock.ExpectExec(regexp.QuoteMeta(insertEdgeSQL)).
			WithArgs("wf", e.ID, 0, e.Source, e.Target, e.SourcePort, e.TargetPort, e.Label,
				e.StrokeColor, string(e.LineStyle), string(e.TipStyle), string(e.LabelBackground)).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectCommit()

		require.NoError(t, store.SaveWorkflow(ctx, "wf", snap))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when a node insert fails", func(t *testing.T) {
		store, mock := newMockStore(t)
		insertErr := errors.New("constraint violation")

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(upsertWorkflowSQL)).WithArgs("wf").
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectExec(regexp.QuoteMeta(deleteEdgesSQL)).WithArgs("wf").
			WillReturnResult(pgxmock.NewResult("DELETE", 0))
		mock.ExpectExec(regexp.QuoteMeta(deleteNodesSQL)).WithArgs("wf").
			WillReturnResult(pgxmock.NewResult("DELETE", 0))
		mock.ExpectExec(regexp.QuoteMeta(insertNodeSQL)).WillReturnError(insertErr)
		mock.ExpectRollback()

		err := store.SaveWorkflow(ctx, "wf", sampleSnapshot())
		require.Error(t, err)
		assert.ErrorIs(t, err, insertErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestLoadWorkflow(t *testing.T) {
	ctx := context.Background()

	t.Run("returns nil when the workflow is unknown", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectQuery(regexp.QuoteMeta(findWorkflowSQL)).WithArgs("missing").
			WillReturnError(pgx.ErrNoRows)

		snap, err := store.LoadWorkflow(ctx, "missing")
		require.NoError(t, err)
		assert.Nil(t, snap)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reads nodes and edges in saved order", func(t *testing.T) {
		store, mock := newMockStore(t)

		mock.ExpectQuery(regexp.QuoteMeta(findWorkflowSQL)).WithArgs("wf").
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("wf"))
		mock.ExpectQuery(regexp.QuoteMeta(listNodesSQL)).WithArgs("wf").
			WillReturnRows(pgxmock.NewRows([]string{"id", "pos_x", "pos_y", "category", "label", "template_id", "ai_capable", "settings", "run_state"}).
				AddRow("n1", 10.0, 20.0, "trigger", "Webhook", "webhook", false, []byte(`[{"key":"path","value":"/hook"},{"key":"timeout_seconds","value":30},{"key":"ratio","value":0.5},{"key":"retry","value":{"max":3,"codes":[429,503]}}]`), "idle").
				AddRow("n2", 200.0, 20.0, "condition", "Check", "if", false, []byte(`[]`), "completed"))
		mock.ExpectQuery(regexp.QuoteMeta(listEdgesSQL)).WithArgs("wf").
			WillReturnRows(pgxmock.NewRows([]string{"id", "source_node_id", "target_node_id", "source_port", "target_port", "label", "stroke_color", "line_style", "tip_style", "label_background"}).
				AddRow("e1", "n1", "n2", "output", "", "", flow.ColorBlack, "dashed", "arrowOpen", "transparent"))

		snap, err := store.LoadWorkflow(ctx, "wf")
		require.NoError(t, err)
		require.NotNil(t, snap)
		require.Len(t, snap.Nodes, 2)
		require.Len(t, snap.Edges, 1)

		assert.Equal(t, flow.CategoryTrigger, snap.Nodes[0].Category)
		v, ok := snap.Nodes[0].Settings.Get("path")
		require.True(t, ok)
		assert.Equal(t, "/hook", v)
		v, _ = snap.Nodes[0].Settings.Get("timeout_seconds")
		assert.Equal(t, int64(30), v)
		v, _ = snap.Nodes[0].Settings.Get("ratio")
		assert.Equal(t, 0.5, v)
		v, _ = snap.Nodes[0].Settings.Get("retry")
		assert.Equal(t, map[string]any{"max": int64(3), "codes": []any{int64(429), int64(503)}}, v)
		assert.Equal(t, flow.RunCompleted, snap.Nodes[1].RunState)

		e := snap.Edges[0]
		assert.Equal(t, flow.LineDashed, e.LineStyle)
		assert.Equal(t, flow.TipArrowOpen, e.TipStyle)
		assert.Equal(t, flow.BackgroundTransparent, e.LabelBackground)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestListAndDeleteWorkflows(t *testing.T) {
	ctx := context.Background()
	store, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(listWorkflowsSQL)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("a").AddRow("b"))
	mock.ExpectExec(regexp.QuoteMeta(deleteWorkflowSQL)).WithArgs("a").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(regexp.QuoteMeta(deleteWorkflowSQL)).WithArgs("gone").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	ids, err := store.ListWorkflows(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)

	require.NoError(t, store.DeleteWorkflow(ctx, "a"))
	assert.ErrorIs(t, store.DeleteWorkflow(ctx, "gone"), flow.ErrWorkflowNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSchema(t *testing.T) {
	ctx := context.Background()
	store, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta(schemaSQL)).WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectExec(regexp.QuoteMeta("DROP TABLE IF EXISTS workflow_edges")).WillReturnResult(pgxmock.NewResult("DROP", 0))

	require.NoError(t, store.CreateSchema(ctx))
	require.NoError(t, store.DropSchema(ctx))
	assert.NoError(t, mock.ExpectationsWereMet())
}
