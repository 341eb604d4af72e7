package server

import "github.com/meikuraledutech/flow"

// nodeView is a node with its classified ports.
type nodeView struct {
	flow.Node
	Ports flow.PortSet `json:"ports"`
}

// edgeView is an edge with the visual encoding the canvas draws.
type edgeView struct {
	flow.Edge
	Presentation flow.Presentation `json:"presentation"`
}

type snapshotView struct {
	Nodes     []nodeView     `json:"nodes"`
	Edges     []edgeView     `json:"edges"`
	Selection flow.Selection `json:"selection"`
}

func (s *Server) view(snap flow.Snapshot) snapshotView {
	v := snapshotView{
		Nodes:     make([]nodeView, 0, len(snap.Nodes)),
		Edges:     make([]edgeView, 0, len(snap.Edges)),
		Selection: snap.Selection,
	}
	for _, n := range snap.Nodes {
		v.Nodes = append(v.Nodes, nodeView{Node: n, Ports: n.Ports()})
	}
	for _, e := range snap.Edges {
		v.Edges = append(v.Edges, s.edgeView(e))
	}
	return v
}

func (s *Server) edgeView(e flow.Edge) edgeView {
	return edgeView{Edge: e, Presentation: e.Presentation(s.canvasColor)}
}
