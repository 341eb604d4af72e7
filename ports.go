package flow

// Well-known port names.
const (
	PortInput   = "input"
	PortOutput  = "output"
	PortSuccess = "success"
	PortFailure = "failure"
	PortTrue    = "true"
	PortFalse   = "false"
)

// Side is the node edge a port sits on.
type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
)

// PortSpec is a classified port. Anchor is the fraction of the node's height
// at which the port is drawn.
type PortSpec struct {
	Name   string  `json:"name"`
	Side   Side    `json:"side"`
	Anchor float64 `json:"anchor"`
}

// PortSet holds the classified ports of a node.
type PortSet struct {
	Inputs  []PortSpec `json:"inputs"`
	Outputs []PortSpec `json:"outputs"`
}

// HasOutput reports whether the set contains an output port called name.
func (p PortSet) HasOutput(name string) bool {
	for _, o := range p.Outputs {
		if o.Name == name {
			return true
		}
	}
	return false
}

// ClassifyPorts maps a category and AI capability to the ports a node exposes.
func ClassifyPorts(category Category, aiCapable bool) PortSet {
	var ps PortSet
	if category != CategoryTrigger {
		ps.Inputs = []PortSpec{{Name: PortInput, Side: SideLeft, Anchor: 0.5}}
	}

	switch {
	case category == CategoryTerminal:
	case aiCapable && !isBranching(category):
		ps.Outputs = []PortSpec{
			{Name: PortSuccess, Side: SideRight, Anchor: 0.3},
			{Name: PortFailure, Side: SideRight, Anchor: 0.7},
		}
	case isBranching(category):
		ps.Outputs = []PortSpec{
			{Name: PortTrue, Side: SideRight, Anchor: 0.3},
			{Name: PortFalse, Side: SideRight, Anchor: 0.7},
		}
	default:
		ps.Outputs = []PortSpec{{Name: PortOutput, Side: SideRight, Anchor: 0.5}}
	}
	return ps
}

func isBranching(c Category) bool {
	return c == CategoryCondition || c == CategoryGate
}
