package flow

import "go.uber.org/zap"

// DefaultCenteringOffset is half the default node footprint, so a dropped node
// lands centered under the pointer.
var DefaultCenteringOffset = Position{X: 75, Y: 40}

// Controller turns resolved canvas gestures into Graph operations. It keeps no
// copy of the graph; the only state it holds is the palette drag in flight.
type Controller struct {
	graph    *Graph
	offset   Position
	dragging *Template
	log      *zap.Logger
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithCenteringOffset overrides DefaultCenteringOffset.
func WithCenteringOffset(p Position) ControllerOption {
	return func(c *Controller) { c.offset = p }
}

// WithControllerLogger sets the controller's logger.
func WithControllerLogger(l *zap.Logger) ControllerOption {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// NewController wraps g.
func NewController(g *Graph, opts ...ControllerOption) *Controller {
	c := &Controller{
		graph:  g,
		offset: DefaultCenteringOffset,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Graph exposes the underlying store for reads.
func (c *Controller) Graph() *Graph {
	return c.graph
}

// BeginPaletteDrag records that t is being dragged out of the palette.
func (c *Controller) BeginPaletteDrag(t Template) {
	c.dragging = &t
}

// CancelPaletteDrag forgets a drag that ended outside the canvas.
func (c *Controller) CancelPaletteDrag() {
	c.dragging = nil
}

// Dragging returns the template currently being dragged.
func (c *Controller) Dragging() (Template, bool) {
	if c.dragging == nil {
		return Template{}, false
	}
	return *c.dragging, true
}

// DropPosition converts a pointer position into the canvas position of a new
// node's top-left corner.
func (c *Controller) DropPosition(pointer, canvasOrigin Position) Position {
	return pointer.Sub(canvasOrigin).Sub(c.offset)
}

// CompletePaletteDrop instantiates t centered under the pointer.
func (c *Controller) CompletePaletteDrop(t Template, pointer, canvasOrigin Position) Node {
	c.dragging = nil
	n := c.graph.AddNode(t, c.DropPosition(pointer, canvasOrigin))
	c.log.Debug("node dropped",
		zap.String("id", n.ID),
		zap.String("template", t.ID),
		zap.Float64("x", n.Position.X),
		zap.Float64("y", n.Position.Y),
	)
	return n
}

// CompleteConnectGesture connects the endpoints the canvas resolved.
func (c *Controller) CompleteConnectGesture(source, sourcePort, target, targetPort string) (Edge, bool) {
	return c.graph.Connect(source, sourcePort, target, targetPort)
}

// OnEntityClicked selects the clicked node or edge.
func (c *Controller) OnEntityClicked(ref EntityRef) bool {
	switch ref.Kind {
	case EntityNode:
		return c.graph.SelectNode(ref.ID)
	case EntityEdge:
		return c.graph.SelectEdge(ref.ID)
	default:
		return false
	}
}

// OnBackgroundClicked clears the selection.
func (c *Controller) OnBackgroundClicked() {
	c.graph.ClearSelection()
}

// OnDeletePressed deletes whatever is selected.
func (c *Controller) OnDeletePressed() bool {
	sel := c.graph.Selection()
	switch sel.Kind {
	case EntityNode:
		return c.graph.DeleteNode(sel.ID)
	case EntityEdge:
		return c.graph.DeleteEdge(sel.ID)
	default:
		return false
	}
}

// OnDuplicateCommand duplicates the selected node and selects the copy.
func (c *Controller) OnDuplicateCommand() (Node, bool) {
	id, ok := c.graph.Selection().Node()
	if !ok {
		return Node{}, false
	}
	n, ok := c.graph.DuplicateNode(id)
	if ok {
		c.graph.SelectNode(n.ID)
	}
	return n, ok
}
