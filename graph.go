package flow

import (
	"slices"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultDuplicateOffset is how far a duplicated node is shifted from its
// source on both axes.
var DefaultDuplicateOffset = Position{X: 50, Y: 50}

// Graph owns the nodes, edges and selection of one workflow.
//
// Every operation that names a missing node or edge is a no-op: it leaves the
// graph untouched and reports false instead of returning an error, so stale
// references from the canvas never break the editor.
//
// A Graph is not safe for concurrent use.
type Graph struct {
	nodes     map[string]*Node
	nodeOrder []string
	edges     map[string]*Edge
	edgeOrder []string
	selection Selection

	newID     func() string
	dupOffset Position
	log       *zap.Logger
}

// GraphOption configures a Graph.
type GraphOption func(*Graph)

// WithLogger sets the logger used for stale-reference diagnostics.
func WithLogger(l *zap.Logger) GraphOption {
	return func(g *Graph) {
		if l != nil {
			g.log = l
		}
	}
}

// WithIDGenerator replaces uuid.NewString as the id source. If the generator
// keeps returning empty or taken ids, the graph falls back to uuid.NewString.
func WithIDGenerator(fn func() string) GraphOption {
	return func(g *Graph) {
		if fn != nil {
			g.newID = fn
		}
	}
}

// WithDuplicateOffset overrides DefaultDuplicateOffset.
func WithDuplicateOffset(p Position) GraphOption {
	return func(g *Graph) { g.dupOffset = p }
}

// NewGraph returns an empty graph.
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{
		nodes:     make(map[string]*Node),
		edges:     make(map[string]*Edge),
		newID:     uuid.NewString,
		dupOffset: DefaultDuplicateOffset,
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// maxIDAttempts bounds how often the configured generator is asked for an
// unused id.
const maxIDAttempts = 16

// freshID returns an id not used by any node or edge in the graph.
func (g *Graph) freshID() string {
	for i := 0; i < maxIDAttempts; i++ {
		if id := g.newID(); g.unused(id) {
			return id
		}
	}
	g.log.Warn("id generator exhausted, falling back to uuid", zap.Int("attempts", maxIDAttempts))
	for {
		if id := uuid.NewString(); g.unused(id) {
			return id
		}
	}
}

func (g *Graph) unused(id string) bool {
	if id == "" {
		return false
	}
	if _, ok := g.nodes[id]; ok {
		return false
	}
	_, ok := g.edges[id]
	return !ok
}

func (g *Graph) stale(op, id string) {
	g.log.Debug("stale reference ignored", zap.String("op", op), zap.String("id", id))
}

// ── Reads ────────────────────────────────────────────────────────────

// Node returns a copy of the node with the given id.
func (g *Graph) Node(id string) (Node, bool) {
	n, ok := g.nodes[id]
	if !ok {
		return Node{}, false
	}
	return n.clone(), true
}

// Edge returns a copy of the edge with the given id.
func (g *Graph) Edge(id string) (Edge, bool) {
	e, ok := g.edges[id]
	if !ok {
		return Edge{}, false
	}
	return *e, true
}

// Nodes returns copies of all nodes in insertion order.
func (g *Graph) Nodes() []Node {
	out := make([]Node, 0, len(g.nodeOrder))
	for _, id := range g.nodeOrder {
		out = append(out, g.nodes[id].clone())
	}
	return out
}

// Edges returns copies of all edges in insertion order.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, len(g.edgeOrder))
	for _, id := range g.edgeOrder {
		out = append(out, *g.edges[id])
	}
	return out
}

// IncidentEdges returns the edges that start or end at nodeID.
func (g *Graph) IncidentEdges(nodeID string) []Edge {
	var out []Edge
	for _, id := range g.edgeOrder {
		if e := g.edges[id]; e.Touches(nodeID) {
			out = append(out, *e)
		}
	}
	return out
}

// Selection returns the current selection.
func (g *Graph) Selection() Selection {
	return g.selection
}

// Snapshot returns a deep copy of the graph for rendering or persistence.
func (g *Graph) Snapshot() Snapshot {
	return Snapshot{
		Nodes:     g.Nodes(),
		Edges:     g.Edges(),
		Selection: g.selection,
	}
}

// Restore replaces the graph's contents with s. Nodes with empty or repeated
// ids and edges with repeated ids or missing endpoints are dropped; the number
// of dropped entries is returned. A selection that no longer resolves is
// cleared.
func (g *Graph) Restore(s Snapshot) int {
	g.nodes = make(map[string]*Node, len(s.Nodes))
	g.nodeOrder = g.nodeOrder[:0]
	g.edges = make(map[string]*Edge, len(s.Edges))
	g.edgeOrder = g.edgeOrder[:0]
	g.selection = Selection{}

	dropped := 0
	for _, n := range s.Nodes {
		if _, dup := g.nodes[n.ID]; n.ID == "" || dup {
			dropped++
			continue
		}
		n := n.clone()
		g.nodes[n.ID] = &n
		g.nodeOrder = append(g.nodeOrder, n.ID)
	}
	for _, e := range s.Edges {
		_, dup := g.edges[e.ID]
		_, srcOK := g.nodes[e.Source]
		_, tgtOK := g.nodes[e.Target]
		if e.ID == "" || dup || !srcOK || !tgtOK {
			dropped++
			continue
		}
		e := e
		g.edges[e.ID] = &e
		g.edgeOrder = append(g.edgeOrder, e.ID)
	}

	switch s.Selection.Kind {
	case EntityNode:
		g.SelectNode(s.Selection.ID)
	case EntityEdge:
		g.SelectEdge(s.Selection.ID)
	}

	if dropped > 0 {
		g.log.Warn("dropped invalid entries while restoring", zap.Int("dropped", dropped))
	}
	return dropped
}

// ── Nodes ────────────────────────────────────────────────────────────

// AddNode instantiates t at pos with a fresh id and an idle run state.
func (g *Graph) AddNode(t Template, pos Position) Node {
	n := &Node{
		ID:         g.freshID(),
		Position:   pos,
		Category:   t.Category,
		Label:      t.DisplayName,
		TemplateID: t.ID,
		AICapable:  t.AICapable,
		Settings:   t.DefaultSettings.Clone(),
		RunState:   RunIdle,
	}
	g.nodes[n.ID] = n
	g.nodeOrder = append(g.nodeOrder, n.ID)
	return n.clone()
}

// DuplicateNode copies a node under a fresh id, shifted by the duplicate
// offset. Incident edges are not copied.
func (g *Graph) DuplicateNode(id string) (Node, bool) {
	src, ok := g.nodes[id]
	if !ok {
		g.stale("duplicateNode", id)
		return Node{}, false
	}
	n := src.clone()
	n.ID = g.freshID()
	n.Position = src.Position.Add(g.dupOffset)
	g.nodes[n.ID] = &n
	g.nodeOrder = append(g.nodeOrder, n.ID)
	return n.clone(), true
}

// DeleteNode removes a node together with every edge that touches it.
func (g *Graph) DeleteNode(id string) bool {
	if _, ok := g.nodes[id]; !ok {
		g.stale("deleteNode", id)
		return false
	}

	kept := g.edgeOrder[:0]
	for _, eid := range g.edgeOrder {
		if g.edges[eid].Touches(id) {
			delete(g.edges, eid)
			continue
		}
		kept = append(kept, eid)
	}
	g.edgeOrder = kept

	delete(g.nodes, id)
	g.nodeOrder = slices.DeleteFunc(g.nodeOrder, func(s string) bool { return s == id })

	if sel, ok := g.selection.Node(); ok && sel == id {
		g.selection = Selection{}
	}
	if sel, ok := g.selection.Edge(); ok {
		if _, alive := g.edges[sel]; !alive {
			g.selection = Selection{}
		}
	}
	return true
}

func (g *Graph) mutateNode(op, id string, fn func(*Node) bool) (Node, bool) {
	n, ok := g.nodes[id]
	if !ok {
		g.stale(op, id)
		return Node{}, false
	}
	if !fn(n) {
		return Node{}, false
	}
	return n.clone(), true
}

// RenameNode sets a node's display label.
func (g *Graph) RenameNode(id, label string) (Node, bool) {
	return g.mutateNode("renameNode", id, func(n *Node) bool {
		n.Label = label
		return true
	})
}

// MoveNode places a node at pos.
func (g *Graph) MoveNode(id string, pos Position) (Node, bool) {
	return g.mutateNode("moveNode", id, func(n *Node) bool {
		n.Position = pos
		return true
	})
}

// SetNodeSetting binds key to value in the node's settings.
func (g *Graph) SetNodeSetting(id, key string, value any) (Node, bool) {
	return g.mutateNode("setNodeSetting", id, func(n *Node) bool {
		n.Settings = n.Settings.Set(key, cloneValue(value))
		return true
	})
}

// SetRunState is the write path for an external runner reporting progress.
// Unknown states are ignored.
func (g *Graph) SetRunState(id string, state RunState) (Node, bool) {
	return g.mutateNode("setRunState", id, func(n *Node) bool {
		if !state.Valid() {
			g.log.Debug("unknown run state ignored", zap.String("id", id), zap.String("state", string(state)))
			return false
		}
		n.RunState = state
		return true
	})
}

// ── Edges ────────────────────────────────────────────────────────────

// Connect adds an edge between two existing nodes. Ports are not checked for
// cardinality or compatibility, so any number of edges may leave one port.
func (g *Graph) Connect(source, sourcePort, target, targetPort string) (Edge, bool) {
	if _, ok := g.nodes[source]; !ok {
		g.stale("connect", source)
		return Edge{}, false
	}
	if _, ok := g.nodes[target]; !ok {
		g.stale("connect", target)
		return Edge{}, false
	}

	style := DeriveInitialStyle(sourcePort)
	e := &Edge{
		ID:              g.freshID(),
		Source:          source,
		Target:          target,
		SourcePort:      sourcePort,
		TargetPort:      targetPort,
		Label:           style.Label,
		StrokeColor:     style.StrokeColor,
		LineStyle:       LineSolid,
		TipStyle:        TipArrowClosed,
		LabelBackground: BackgroundCanvas,
	}
	g.edges[e.ID] = e
	g.edgeOrder = append(g.edgeOrder, e.ID)
	return *e, true
}

// DeleteEdge removes an edge.
func (g *Graph) DeleteEdge(id string) bool {
	if _, ok := g.edges[id]; !ok {
		g.stale("deleteEdge", id)
		return false
	}
	delete(g.edges, id)
	g.edgeOrder = slices.DeleteFunc(g.edgeOrder, func(s string) bool { return s == id })
	if sel, ok := g.selection.Edge(); ok && sel == id {
		g.selection = Selection{}
	}
	return true
}

func (g *Graph) mutateEdge(op, id string, fn func(*Edge) bool) (Edge, bool) {
	e, ok := g.edges[id]
	if !ok {
		g.stale(op, id)
		return Edge{}, false
	}
	if !fn(e) {
		return Edge{}, false
	}
	return *e, true
}

// UpdateEdgeColor sets the stroke color. Label border, label text and
// arrowhead follow it through Presentation; the label background is kept.
func (g *Graph) UpdateEdgeColor(id, color string) (Edge, bool) {
	return g.mutateEdge("updateEdgeColor", id, func(e *Edge) bool {
		if color == "" {
			return false
		}
		e.StrokeColor = color
		return true
	})
}

// UpdateEdgeLineStyle sets the stroke pattern.
func (g *Graph) UpdateEdgeLineStyle(id string, style LineStyle) (Edge, bool) {
	return g.mutateEdge("updateEdgeLineStyle", id, func(e *Edge) bool {
		if !validLineStyle(style) {
			return false
		}
		e.LineStyle = style
		return true
	})
}

// UpdateEdgeTipStyle sets the arrowhead style.
func (g *Graph) UpdateEdgeTipStyle(id string, tip TipStyle) (Edge, bool) {
	return g.mutateEdge("updateEdgeTipStyle", id, func(e *Edge) bool {
		if !validTipStyle(tip) {
			return false
		}
		e.TipStyle = tip
		return true
	})
}

// UpdateEdgeLabelText sets the label text; an empty string hides the label.
func (g *Graph) UpdateEdgeLabelText(id, text string) (Edge, bool) {
	return g.mutateEdge("updateEdgeLabelText", id, func(e *Edge) bool {
		e.Label = text
		return true
	})
}

// UpdateEdgeLabelBackground sets the label fill mode. An empty value means
// canvasMatched.
func (g *Graph) UpdateEdgeLabelBackground(id string, bg LabelBackground) (Edge, bool) {
	return g.mutateEdge("updateEdgeLabelBackground", id, func(e *Edge) bool {
		if bg == "" {
			bg = BackgroundCanvas
		}
		e.LabelBackground = bg
		return true
	})
}

// ── Selection ────────────────────────────────────────────────────────

// SelectNode selects a node, replacing any previous selection.
func (g *Graph) SelectNode(id string) bool {
	if _, ok := g.nodes[id]; !ok {
		g.stale("selectNode", id)
		return false
	}
	g.selection = Selection{Kind: EntityNode, ID: id}
	return true
}

// SelectEdge selects an edge, replacing any previous selection.
func (g *Graph) SelectEdge(id string) bool {
	if _, ok := g.edges[id]; !ok {
		g.stale("selectEdge", id)
		return false
	}
	g.selection = Selection{Kind: EntityEdge, ID: id}
	return true
}

// ClearSelection deselects everything.
func (g *Graph) ClearSelection() {
	g.selection = Selection{}
}
