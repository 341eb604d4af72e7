// Package server exposes a workflow canvas over HTTP.
package server

import (
	"errors"
	"sync"

	"github.com/gofiber/fiber/v3"
	"github.com/meikuraledutech/flow"
	"github.com/meikuraledutech/flow/palette"
	"go.uber.org/zap"
)

// Server serializes canvas gestures onto a single Controller.
type Server struct {
	mu          sync.Mutex
	ctrl        *flow.Controller
	catalog     *palette.Catalog
	store       flow.Persister
	canvasColor string
	log         *zap.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithPersister enables the /workflows routes.
func WithPersister(p flow.Persister) Option {
	return func(s *Server) { s.store = p }
}

// WithCanvasColor sets the color canvas-matched label fills resolve to.
func WithCanvasColor(color string) Option {
	return func(s *Server) {
		if color != "" {
			s.canvasColor = color
		}
	}
}

// WithLogger sets the server's logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l.Named("server")
		}
	}
}

// New creates a Server around ctrl. catalog resolves template ids for palette
// drops.
func New(ctrl *flow.Controller, catalog *palette.Catalog, opts ...Option) *Server {
	s := &Server{
		ctrl:        ctrl,
		catalog:     catalog,
		canvasColor: flow.DefaultCanvasColor,
		log:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// App builds the fiber application with every route registered.
func (s *Server) App() *fiber.App {
	// Params and bodies are stored in the graph; they must outlive the request.
	app := fiber.New(fiber.Config{Immutable: true})

	// ── Canvas ────────────────────────────────────────────────────────
	app.Get("/workflow", s.getWorkflow)
	app.Post("/workflow/click", s.click)
	app.Post("/workflow/background-click", s.backgroundClick)
	app.Post("/workflow/delete-selection", s.deleteSelection)
	app.Post("/workflow/duplicate-selection", s.duplicateSelection)

	// ── Nodes ─────────────────────────────────────────────────────────
	app.Post("/workflow/nodes", s.dropNode)
	app.Post("/workflow/nodes/:id/duplicate", s.duplicateNode)
	app.Patch("/workflow/nodes/:id", s.patchNode)
	app.Put("/workflow/nodes/:id/settings/:key", s.putSetting)
	app.Put("/workflow/nodes/:id/run-state", s.putRunState)
	app.Delete("/workflow/nodes/:id", s.deleteNode)
	app.Get("/workflow/nodes/:id/ports", s.nodePorts)

	// ── Edges ─────────────────────────────────────────────────────────
	app.Post("/workflow/edges", s.connect)
	app.Patch("/workflow/edges/:id", s.patchEdge)
	app.Delete("/workflow/edges/:id", s.deleteEdge)

	// ── Palette ───────────────────────────────────────────────────────
	app.Get("/palette", s.listPalette)
	app.Get("/palette/:id", s.getTemplate)

	// ── Persistence ───────────────────────────────────────────────────
	if s.store != nil {
		app.Get("/workflows", s.listWorkflows)
		app.Post("/workflows/:name/save", s.saveWorkflow)
		app.Post("/workflows/:name/load", s.loadWorkflow)
		app.Delete("/workflows/:name", s.deleteWorkflow)
	}

	return app
}

// mutate runs fn under the lock and replies with the outcome and the
// resulting snapshot.
func (s *Server) mutate(c fiber.Ctx, fn func(g *flow.Graph) (bool, fiber.Map)) error {
	s.mu.Lock()
	applied, extra := fn(s.ctrl.Graph())
	snap := s.view(s.ctrl.Graph().Snapshot())
	s.mu.Unlock()

	body := fiber.Map{"applied": applied, "snapshot": snap}
	for k, v := range extra {
		body[k] = v
	}
	return c.JSON(body)
}

func badRequest(c fiber.Ctx, msg string) error {
	return c.Status(400).JSON(fiber.Map{"error": msg})
}

func internalError(c fiber.Ctx, err error) error {
	return c.Status(500).JSON(fiber.Map{"error": err.Error()})
}

func notFound(c fiber.Ctx, msg string) error {
	return c.Status(404).JSON(fiber.Map{"error": msg})
}

func isNotFound(err error) bool {
	return errors.Is(err, flow.ErrWorkflowNotFound) || errors.Is(err, palette.ErrTemplateNotFound)
}
