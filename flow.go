// Package flow is the editing engine behind the workflow canvas: the node/edge
// graph, the rules for mutating it in response to gestures, and the derived
// visual encoding of every connection.
package flow

// Category classifies a node and decides which ports it exposes.
type Category string

const (
	CategoryTrigger   Category = "trigger"
	CategoryAction    Category = "action"
	CategoryAIAction  Category = "aiAction"
	CategoryCondition Category = "condition"
	CategoryGate      Category = "gate"
	CategoryConnector Category = "connector"
	CategoryTerminal  Category = "terminal"
)

// Categories lists every known category in palette order.
var Categories = []Category{
	CategoryTrigger,
	CategoryAction,
	CategoryAIAction,
	CategoryCondition,
	CategoryGate,
	CategoryConnector,
	CategoryTerminal,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, k := range Categories {
		if c == k {
			return true
		}
	}
	return false
}

// RunState is reported by an external runner. The engine stores it but never
// interprets it.
type RunState string

const (
	RunIdle      RunState = "idle"
	RunRunning   RunState = "running"
	RunWaiting   RunState = "waiting"
	RunCompleted RunState = "completed"
	RunError     RunState = "error"
)

// Valid reports whether s is one of the known run states.
func (s RunState) Valid() bool {
	switch s {
	case RunIdle, RunRunning, RunWaiting, RunCompleted, RunError:
		return true
	}
	return false
}

// Position is a point in canvas coordinates.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p offset by d.
func (p Position) Add(d Position) Position {
	return Position{X: p.X + d.X, Y: p.Y + d.Y}
}

// Sub returns p minus d.
func (p Position) Sub(d Position) Position {
	return Position{X: p.X - d.X, Y: p.Y - d.Y}
}

// Node is a vertex of the workflow graph.
type Node struct {
	ID         string   `json:"id"`
	Position   Position `json:"position"`
	Category   Category `json:"category"`
	Label      string   `json:"label"`
	TemplateID string   `json:"templateId"`
	AICapable  bool     `json:"aiCapable,omitempty"`
	Settings   Settings `json:"settings"`
	RunState   RunState `json:"runState"`
}

// Ports classifies the node's ports from its current category and AI flag.
func (n Node) Ports() PortSet {
	return ClassifyPorts(n.Category, n.AICapable)
}

func (n Node) clone() Node {
	n.Settings = n.Settings.Clone()
	return n
}

// Edge is a directed connection between two nodes. Only semantic fields are
// stored; everything visual is derived by Presentation.
type Edge struct {
	ID              string          `json:"id"`
	Source          string          `json:"source"`
	Target          string          `json:"target"`
	SourcePort      string          `json:"sourcePort"`
	TargetPort      string          `json:"targetPort,omitempty"`
	Label           string          `json:"label,omitempty"`
	StrokeColor     string          `json:"strokeColor"`
	LineStyle       LineStyle       `json:"lineStyle"`
	TipStyle        TipStyle        `json:"tipStyle"`
	LabelBackground LabelBackground `json:"labelBackground"`
}

// Touches reports whether nodeID is either endpoint of e.
func (e Edge) Touches(nodeID string) bool {
	return e.Source == nodeID || e.Target == nodeID
}

// Snapshot is the read-only view handed to the canvas and to persistence.
type Snapshot struct {
	Nodes     []Node    `json:"nodes"`
	Edges     []Edge    `json:"edges"`
	Selection Selection `json:"selection"`
}

// PortDecl is a port declared by a palette template.
type PortDecl struct {
	Name     string `json:"name" toml:"name" validate:"required"`
	Required bool   `json:"required,omitempty" toml:"required"`
	DataType string `json:"dataType,omitempty" toml:"data_type"`
}

// Template is a palette entry a node is instantiated from. The engine trusts
// its contents; validation belongs to the catalog that loaded it.
type Template struct {
	ID              string     `json:"templateId" toml:"id" validate:"required"`
	DisplayName     string     `json:"displayName" toml:"display_name" validate:"required"`
	Description     string     `json:"description,omitempty" toml:"description"`
	Category        Category   `json:"category" toml:"category" validate:"required,category"`
	AICapable       bool       `json:"aiCapable,omitempty" toml:"ai_capable"`
	DefaultSettings Settings   `json:"defaultSettings,omitempty" toml:"settings" validate:"dive"`
	InputPorts      []PortDecl `json:"inputPorts,omitempty" toml:"inputs" validate:"dive"`
	OutputPorts     []PortDecl `json:"outputPorts,omitempty" toml:"outputs" validate:"dive"`
}
