package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/meikuraledutech/flow"
	"github.com/meikuraledutech/flow/palette"
	"github.com/meikuraledutech/flow/postgres"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	catalog, err := palette.Builtin()
	if err != nil {
		log.Fatalf("palette: %v", err)
	}
	mustGet := func(id string) flow.Template {
		t, err := catalog.Lookup(id)
		if err != nil {
			log.Fatal(err)
		}
		return t
	}

	g := flow.NewGraph(flow.WithLogger(logger))
	ctrl := flow.NewController(g)
	origin := flow.Position{X: 240, Y: 60}

	// ── Drop nodes from the palette ───────────────────────────────────
	hook := ctrl.CompletePaletteDrop(mustGet("webhook"), flow.Position{X: 400, Y: 200}, origin)
	summarize := ctrl.CompletePaletteDrop(mustGet("summarize"), flow.Position{X: 700, Y: 200}, origin)
	approve := ctrl.CompletePaletteDrop(mustGet("approval"), flow.Position{X: 1000, Y: 200}, origin)
	slack := ctrl.CompletePaletteDrop(mustGet("slack"), flow.Position{X: 1300, Y: 120}, origin)
	end := ctrl.CompletePaletteDrop(mustGet("end"), flow.Position{X: 1300, Y: 320}, origin)
	fmt.Printf("dropped %d nodes\n", len(g.Nodes()))

	// ── Connect ports ─────────────────────────────────────────────────
	ctrl.CompleteConnectGesture(hook.ID, flow.PortOutput, summarize.ID, flow.PortInput)
	ctrl.CompleteConnectGesture(summarize.ID, flow.PortSuccess, approve.ID, flow.PortInput)
	ctrl.CompleteConnectGesture(summarize.ID, flow.PortFailure, end.ID, flow.PortInput)
	ctrl.CompleteConnectGesture(approve.ID, flow.PortTrue, slack.ID, flow.PortInput)
	rejected, _ := ctrl.CompleteConnectGesture(approve.ID, flow.PortFalse, end.ID, flow.PortInput)

	// ── Restyle the rejection branch ──────────────────────────────────
	g.UpdateEdgeLineStyle(rejected.ID, flow.LineDashed)
	g.UpdateEdgeLabelText(rejected.ID, "Rejected")
	g.UpdateEdgeLabelBackground(rejected.ID, flow.BackgroundTransparent)

	// ── Duplicate and delete through the selection ────────────────────
	ctrl.OnEntityClicked(flow.NodeRef(slack.ID))
	copied, _ := ctrl.OnDuplicateCommand()
	g.RenameNode(copied.ID, "Notify #ops")
	ctrl.OnEntityClicked(flow.NodeRef(copied.ID))
	ctrl.OnDeletePressed()

	// ── Simulate a run ────────────────────────────────────────────────
	g.SetRunState(hook.ID, flow.RunCompleted)
	g.SetRunState(summarize.ID, flow.RunRunning)

	snap := g.Snapshot()
	fmt.Println("\nsnapshot:")
	printJSON(snap)

	fmt.Println("\nedge presentations:")
	for _, e := range snap.Edges {
		printJSON(map[string]any{"id": e.ID, "presentation": e.Presentation(flow.DefaultCanvasColor)})
	}

	// ── Optional round trip through postgres ──────────────────────────
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		fmt.Println("\nDATABASE_URL is not set; skipping persistence")
		return
	}

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer pool.Close()

	var store flow.Persister = postgres.New(pool, logger)
	if err := store.CreateSchema(ctx); err != nil {
		log.Fatalf("schema: %v", err)
	}
	if err := store.SaveWorkflow(ctx, "triage", snap); err != nil {
		log.Fatalf("save: %v", err)
	}
	fmt.Println("\nworkflow saved")

	loaded, err := store.LoadWorkflow(ctx, "triage")
	if err != nil {
		log.Fatalf("load: %v", err)
	}
	restored := flow.NewGraph()
	dropped := restored.Restore(*loaded)
	fmt.Printf("workflow loaded: %d nodes, %d edges, %d dropped\n", len(restored.Nodes()), len(restored.Edges()), dropped)

	if err := store.DeleteWorkflow(ctx, "triage"); err != nil {
		log.Fatalf("delete: %v", err)
	}
	fmt.Println("workflow deleted")
}

func printJSON(v any) {
	out, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(out))
}
