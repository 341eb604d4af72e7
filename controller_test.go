package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletePaletteDrop(t *testing.T) {
	g := newTestGraph()
	c := NewController(g)

	c.BeginPaletteDrag(tplAction)
	dragged, ok := c.Dragging()
	require.True(t, ok)
	assert.Equal(t, tplAction.ID, dragged.ID)

	n := c.CompletePaletteDrop(tplAction, Position{X: 400, Y: 300}, Position{X: 100, Y: 50})
	assert.Equal(t, Position{X: 400 - 100 - 75, Y: 300 - 50 - 40}, n.Position)
	assert.Equal(t, RunIdle, n.RunState)

	_, ok = c.Dragging()
	assert.False(t, ok, "drop ends the drag")

	stored, ok := g.Node(n.ID)
	require.True(t, ok)
	assert.Equal(t, n, stored)
}

func TestCenteringOffsetOption(t *testing.T) {
	c := NewController(newTestGraph(), WithCenteringOffset(Position{X: 10, Y: 10}))
	assert.Equal(t, Position{X: 0, Y: 0}, c.DropPosition(Position{X: 30, Y: 30}, Position{X: 20, Y: 20}))
}

func TestCancelPaletteDrag(t *testing.T) {
	c := NewController(newTestGraph())
	c.BeginPaletteDrag(tplTrigger)
	c.CancelPaletteDrag()
	_, ok := c.Dragging()
	assert.False(t, ok)
	assert.Empty(t, c.Graph().Nodes())
}

func TestCompleteConnectGesture(t *testing.T) {
	g := newTestGraph()
	c := NewController(g)
	x := c.CompletePaletteDrop(tplAI, Position{}, Position{})
	y := c.CompletePaletteDrop(tplTerminal, Position{}, Position{})

	e, ok := c.CompleteConnectGesture(x.ID, PortSuccess, y.ID, PortInput)
	require.True(t, ok)
	assert.Equal(t, ColorGreen, e.StrokeColor)
	assert.Equal(t, "Success", e.Label)
	assert.Len(t, g.Edges(), 1)
}

func TestClickRouting(t *testing.T) {
	g := newTestGraph()
	c := NewController(g)
	a := c.CompletePaletteDrop(tplAction, Position{}, Position{})
	b := c.CompletePaletteDrop(tplAction, Position{}, Position{})
	e, _ := c.CompleteConnectGesture(a.ID, PortOutput, b.ID, PortInput)

	assert.True(t, c.OnEntityClicked(NodeRef(a.ID)))
	assert.Equal(t, Selection{Kind: EntityNode, ID: a.ID}, g.Selection())

	// Switching directly from a node to an edge is atomic.
	assert.True(t, c.OnEntityClicked(EdgeRef(e.ID)))
	assert.Equal(t, Selection{Kind: EntityEdge, ID: e.ID}, g.Selection())

	assert.False(t, c.OnEntityClicked(EntityRef{Kind: "group", ID: a.ID}))
	assert.Equal(t, Selection{Kind: EntityEdge, ID: e.ID}, g.Selection())

	c.OnBackgroundClicked()
	assert.True(t, g.Selection().Empty())
}

func TestOnDeletePressed(t *testing.T) {
	g := newTestGraph()
	c := NewController(g)
	a := c.CompletePaletteDrop(tplAction, Position{}, Position{})
	b := c.CompletePaletteDrop(tplAction, Position{}, Position{})
	e, _ := c.CompleteConnectGesture(a.ID, PortOutput, b.ID, PortInput)

	assert.False(t, c.OnDeletePressed(), "nothing selected")

	c.OnEntityClicked(EdgeRef(e.ID))
	assert.True(t, c.OnDeletePressed())
	assert.Empty(t, g.Edges())
	assert.Len(t, g.Nodes(), 2)

	c.OnEntityClicked(NodeRef(a.ID))
	assert.True(t, c.OnDeletePressed())
	assert.Len(t, g.Nodes(), 1)
	assert.True(t, g.Selection().Empty())
}

func TestOnDuplicateCommand(t *testing.T) {
	g := newTestGraph()
	c := NewController(g)

	_, ok := c.OnDuplicateCommand()
	assert.False(t, ok)

	a := c.CompletePaletteDrop(tplCondition, Position{X: 175, Y: 240}, Position{})
	c.OnEntityClicked(NodeRef(a.ID))

	dup, ok := c.OnDuplicateCommand()
	require.True(t, ok)
	assert.Equal(t, a.Position.Add(DefaultDuplicateOffset), dup.Position)
	assert.Equal(t, Selection{Kind: EntityNode, ID: dup.ID}, g.Selection())
}
