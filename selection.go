package flow

// EntityKind tells nodes and edges apart in selections and clicks.
type EntityKind string

const (
	EntityNone EntityKind = ""
	EntityNode EntityKind = "node"
	EntityEdge EntityKind = "edge"
)

// Selection holds at most one selected entity. A single kind field makes
// selecting a node and an edge at once unrepresentable.
type Selection struct {
	Kind EntityKind `json:"kind,omitempty"`
	ID   string     `json:"id,omitempty"`
}

// Empty reports whether nothing is selected.
func (s Selection) Empty() bool {
	return s.Kind == EntityNone
}

// Node returns the selected node id, if a node is selected.
func (s Selection) Node() (string, bool) {
	if s.Kind != EntityNode {
		return "", false
	}
	return s.ID, true
}

// Edge returns the selected edge id, if an edge is selected.
func (s Selection) Edge() (string, bool) {
	if s.Kind != EntityEdge {
		return "", false
	}
	return s.ID, true
}

// EntityRef identifies a clicked entity.
type EntityRef struct {
	Kind EntityKind `json:"kind"`
	ID   string     `json:"id"`
}

// NodeRef refers to the node with the given id.
func NodeRef(id string) EntityRef { return EntityRef{Kind: EntityNode, ID: id} }

// EdgeRef refers to the edge with the given id.
func EdgeRef(id string) EntityRef { return EntityRef{Kind: EntityEdge, ID: id} }
