package pipecheck

import "fmt"

// Limits bounds the size of a pipeline accepted by Build. Zero means unlimited.
type Limits struct {
	MaxNodes int
	MaxEdges int
}

// Graph is the validated, in-memory form of a Pipeline.
// Nodes are addressed by their position in the submitted node list, which
// fixes the traversal and reporting order.
type Graph struct {
	ids      []string
	types    []string
	index    map[string]int
	out      [][]int // out-neighbours in edge-list order
	in       [][]int
	numEdges int
}

// Parse decodes and validates a JSON payload in one step.
func Parse(data []byte, lim Limits) (*Graph, error) {
	p, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return Build(p, lim)
}

// Build validates p and derives its adjacency structures.
// p is not modified. Self-loops and repeated edges are accepted.
func Build(p *Pipeline, lim Limits) (*Graph, error) {
	if lim.MaxNodes > 0 && len(p.Nodes) > lim.MaxNodes {
		return nil, &InputError{
			Err:    ErrTooLarge,
			Field:  "nodes",
			Detail: fmt.Sprintf("%d nodes exceeds limit of %d", len(p.Nodes), lim.MaxNodes),
		}
	}
	if lim.MaxEdges > 0 && len(p.Edges) > lim.MaxEdges {
		return nil, &InputError{
			Err:    ErrTooLarge,
			Field:  "edges",
			Detail: fmt.Sprintf("%d edges exceeds limit of %d", len(p.Edges), lim.MaxEdges),
		}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	n := len(p.Nodes)
	g := &Graph{
		ids:   make([]string, 0, n),
		types: make([]string, 0, n),
		index: make(map[string]int, n),
		out:   make([][]int, n),
		in:    make([][]int, n),
	}

	for i, node := range p.Nodes {
		if _, ok := g.index[node.ID]; ok {
			return nil, &InputError{Err: ErrDuplicateNodeID, Field: fmt.Sprintf("nodes[%d].id", i), ID: node.ID}
		}
		g.index[node.ID] = len(g.ids)
		g.ids = append(g.ids, node.ID)
		g.types = append(g.types, node.Type)
	}

	for i, e := range p.Edges {
		from, ok := g.index[e.Source]
		if !ok {
			return nil, &InputError{Err: ErrUnknownNodeReference, Field: fmt.Sprintf("edges[%d].source", i), ID: e.Source}
		}
		to, ok := g.index[e.Target]
		if !ok {
			return nil, &InputError{Err: ErrUnknownNodeReference, Field: fmt.Sprintf("edges[%d].target", i), ID: e.Target}
		}
		g.out[from] = append(g.out[from], to)
		g.in[to] = append(g.in[to], from)
	}
	g.numEdges = len(p.Edges)

	return g, nil
}

// NumNodes returns the number of distinct node ids.
func (g *Graph) NumNodes() int { return len(g.ids) }

// NumEdges returns the number of accepted edge records.
func (g *Graph) NumEdges() int { return g.numEdges }

// NodeIDs returns the node ids in submission order.
func (g *Graph) NodeIDs() []string {
	out := make([]string, len(g.ids))
	copy(out, g.ids)
	return out
}
