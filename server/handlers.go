package server

import (
	"github.com/gofiber/fiber/v3"
	"github.com/meikuraledutech/flow"
	"go.uber.org/zap"
)

type dropRequest struct {
	TemplateID string        `json:"templateId"`
	Pointer    flow.Position `json:"pointer"`
	Origin     flow.Position `json:"origin"`
}

type nodePatch struct {
	Label    *string        `json:"label"`
	Position *flow.Position `json:"position"`
}

type settingRequest struct {
	Value any `json:"value"`
}

type runStateRequest struct {
	State flow.RunState `json:"state"`
}

type connectRequest struct {
	Source     string `json:"source"`
	SourcePort string `json:"sourcePort"`
	Target     string `json:"target"`
	TargetPort string `json:"targetPort"`
}

type edgePatch struct {
	Color           *string               `json:"color"`
	LineStyle       *flow.LineStyle       `json:"lineStyle"`
	TipStyle        *flow.TipStyle        `json:"tipStyle"`
	Label           *string               `json:"label"`
	LabelBackground *flow.LabelBackground `json:"labelBackground"`
}

// ── Canvas ────────────────────────────────────────────────────────────

func (s *Server) getWorkflow(c fiber.Ctx) error {
	s.mu.Lock()
	snap := s.view(s.ctrl.Graph().Snapshot())
	s.mu.Unlock()
	return c.JSON(snap)
}

func (s *Server) click(c fiber.Ctx) error {
	var ref flow.EntityRef
	if err := c.Bind().JSON(&ref); err != nil {
		return badRequest(c, "invalid body")
	}
	return s.mutate(c, func(*flow.Graph) (bool, fiber.Map) {
		return s.ctrl.OnEntityClicked(ref), nil
	})
}

func (s *Server) backgroundClick(c fiber.Ctx) error {
	return s.mutate(c, func(*flow.Graph) (bool, fiber.Map) {
		s.ctrl.OnBackgroundClicked()
		return true, nil
	})
}

func (s *Server) deleteSelection(c fiber.Ctx) error {
	return s.mutate(c, func(*flow.Graph) (bool, fiber.Map) {
		return s.ctrl.OnDeletePressed(), nil
	})
}

func (s *Server) duplicateSelection(c fiber.Ctx) error {
	return s.mutate(c, func(*flow.Graph) (bool, fiber.Map) {
		n, ok := s.ctrl.OnDuplicateCommand()
		if !ok {
			return false, nil
		}
		return true, fiber.Map{"node": n}
	})
}

// ── Nodes ─────────────────────────────────────────────────────────────

func (s *Server) dropNode(c fiber.Ctx) error {
	var req dropRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	t, err := s.catalog.Lookup(req.TemplateID)
	if err != nil {
		return notFound(c, err.Error())
	}

	c.Status(201)
	return s.mutate(c, func(*flow.Graph) (bool, fiber.Map) {
		n := s.ctrl.CompletePaletteDrop(t, req.Pointer, req.Origin)
		return true, fiber.Map{"node": n}
	})
}

func (s *Server) duplicateNode(c fiber.Ctx) error {
	id := c.Params("id")
	return s.mutate(c, func(g *flow.Graph) (bool, fiber.Map) {
		n, ok := g.DuplicateNode(id)
		if !ok {
			return false, nil
		}
		return true, fiber.Map{"node": n}
	})
}

func (s *Server) patchNode(c fiber.Ctx) error {
	var req nodePatch
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if req.Label == nil && req.Position == nil {
		return badRequest(c, "nothing to update")
	}
	id := c.Params("id")
	return s.mutate(c, func(g *flow.Graph) (bool, fiber.Map) {
		applied := false
		if req.Label != nil {
			_, ok := g.RenameNode(id, *req.Label)
			applied = applied || ok
		}
		if req.Position != nil {
			_, ok := g.MoveNode(id, *req.Position)
			applied = applied || ok
		}
		return applied, nil
	})
}

func (s *Server) putSetting(c fiber.Ctx) error {
	var req settingRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	id, key := c.Params("id"), c.Params("key")
	return s.mutate(c, func(g *flow.Graph) (bool, fiber.Map) {
		_, ok := g.SetNodeSetting(id, key, req.Value)
		return ok, nil
	})
}

func (s *Server) putRunState(c fiber.Ctx) error {
	var req runStateRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if !req.State.Valid() {
		return badRequest(c, "unknown run state")
	}
	id := c.Params("id")
	return s.mutate(c, func(g *flow.Graph) (bool, fiber.Map) {
		_, ok := g.SetRunState(id, req.State)
		return ok, nil
	})
}

func (s *Server) deleteNode(c fiber.Ctx) error {
	id := c.Params("id")
	return s.mutate(c, func(g *flow.Graph) (bool, fiber.Map) {
		return g.DeleteNode(id), nil
	})
}

func (s *Server) nodePorts(c fiber.Ctx) error {
	s.mu.Lock()
	n, ok := s.ctrl.Graph().Node(c.Params("id"))
	s.mu.Unlock()
	if !ok {
		return notFound(c, "node not found")
	}
	return c.JSON(n.Ports())
}

// ── Edges ─────────────────────────────────────────────────────────────

func (s *Server) connect(c fiber.Ctx) error {
	var req connectRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	return s.mutate(c, func(*flow.Graph) (bool, fiber.Map) {
		e, ok := s.ctrl.CompleteConnectGesture(req.Source, req.SourcePort, req.Target, req.TargetPort)
		if !ok {
			return false, nil
		}
		return true, fiber.Map{"edge": s.edgeView(e)}
	})
}

func (s *Server) patchEdge(c fiber.Ctx) error {
	var req edgePatch
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	id := c.Params("id")
	return s.mutate(c, func(g *flow.Graph) (bool, fiber.Map) {
		applied := false
		apply := func(_ flow.Edge, ok bool) { applied = applied || ok }
		if req.Color != nil {
			apply(g.UpdateEdgeColor(id, *req.Color))
		}
		if req.LineStyle != nil {
			apply(g.UpdateEdgeLineStyle(id, *req.LineStyle))
		}
		if req.TipStyle != nil {
			apply(g.UpdateEdgeTipStyle(id, *req.TipStyle))
		}
		if req.Label != nil {
			apply(g.UpdateEdgeLabelText(id, *req.Label))
		}
		if req.LabelBackground != nil {
			apply(g.UpdateEdgeLabelBackground(id, *req.LabelBackground))
		}
		if e, ok := g.Edge(id); ok && applied {
			return true, fiber.Map{"edge": s.edgeView(e)}
		}
		return applied, nil
	})
}

func (s *Server) deleteEdge(c fiber.Ctx) error {
	id := c.Params("id")
	return s.mutate(c, func(g *flow.Graph) (bool, fiber.Map) {
		return g.DeleteEdge(id), nil
	})
}

// ── Palette ───────────────────────────────────────────────────────────

func (s *Server) listPalette(c fiber.Ctx) error {
	category := flow.Category(c.Query("category"))
	if category != "" && !category.Valid() {
		return badRequest(c, "unknown category")
	}
	results := s.catalog.Filter(c.Query("q"), category)
	if results == nil {
		results = []flow.Template{}
	}
	return c.JSON(results)
}

func (s *Server) getTemplate(c fiber.Ctx) error {
	t, err := s.catalog.Lookup(c.Params("id"))
	if err != nil {
		return notFound(c, err.Error())
	}
	return c.JSON(fiber.Map{"template": t, "ports": flow.ClassifyPorts(t.Category, t.AICapable)})
}

// ── Persistence ───────────────────────────────────────────────────────

func (s *Server) listWorkflows(c fiber.Ctx) error {
	ids, err := s.store.ListWorkflows(c.Context())
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(ids)
}

func (s *Server) saveWorkflow(c fiber.Ctx) error {
	name := c.Params("name")
	s.mu.Lock()
	snap := s.ctrl.Graph().Snapshot()
	s.mu.Unlock()

	if err := s.store.SaveWorkflow(c.Context(), name, snap); err != nil {
		s.log.Error("save workflow", zap.String("workflow", name), zap.Error(err))
		return internalError(c, err)
	}
	return c.JSON(fiber.Map{"message": "workflow saved", "nodes": len(snap.Nodes), "edges": len(snap.Edges)})
}

func (s *Server) loadWorkflow(c fiber.Ctx) error {
	name := c.Params("name")
	snap, err := s.store.LoadWorkflow(c.Context(), name)
	if err != nil {
		s.log.Error("load workflow", zap.String("workflow", name), zap.Error(err))
		return internalError(c, err)
	}
	if snap == nil {
		return notFound(c, "workflow not found")
	}

	s.mu.Lock()
	dropped := s.ctrl.Graph().Restore(*snap)
	view := s.view(s.ctrl.Graph().Snapshot())
	s.mu.Unlock()

	if dropped > 0 {
		s.log.Warn("restored workflow with dangling entries", zap.String("workflow", name), zap.Int("dropped", dropped))
	}
	return c.JSON(fiber.Map{"dropped": dropped, "snapshot": view})
}

func (s *Server) deleteWorkflow(c fiber.Ctx) error {
	err := s.store.DeleteWorkflow(c.Context(), c.Params("name"))
	if isNotFound(err) {
		return notFound(c, "workflow not found")
	}
	if err != nil {
		return internalError(c, err)
	}
	return c.SendStatus(204)
}
