package pipecheck

// Result is the outcome of analysing a Graph.
// Details is nil unless the extended analysis was requested.
type Result struct {
	NumNodes int  `json:"num_nodes" yaml:"num_nodes"`
	NumEdges int  `json:"num_edges" yaml:"num_edges"`
	IsDAG    bool `json:"is_dag" yaml:"is_dag"`

	*Details `yaml:",inline"`
}

// Details holds the extended analytics. They are computed regardless of
// whether the graph is acyclic.
type Details struct {
	NodeTypes   map[string]int `json:"node_types" yaml:"node_types"`
	SourceNodes []string       `json:"source_nodes" yaml:"source_nodes"`
	SinkNodes   []string       `json:"sink_nodes" yaml:"sink_nodes"`
}

// Analyze computes the counts and DAG status of g, plus the node-type
// histogram and source/sink sets when extended is true.
// It never fails: g has already been validated by Build.
func Analyze(g *Graph, extended bool) *Result {
	r := &Result{
		NumNodes: g.NumNodes(),
		NumEdges: g.NumEdges(),
		IsDAG:    !g.hasCycle(),
	}
	if extended {
		r.Details = g.details()
	}
	return r
}

type color uint8

const (
	unvisited color = iota
	inProgress
	done
)

// frame is one level of the explicit DFS stack: a node and the index of
// the next out-neighbour to examine.
type frame struct {
	node int
	next int
}

// hasCycle runs a three-colour depth-first search over every component,
// rooted in submission order. Reaching an inProgress node is a back-edge.
func (g *Graph) hasCycle() bool {
	colors := make([]color, len(g.ids))
	var stack []frame

	for root := range g.ids {
		if colors[root] != unvisited {
			continue
		}
		colors[root] = inProgress
		stack = append(stack[:0], frame{node: root})

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.next == len(g.out[top.node]) {
				colors[top.node] = done
				stack = stack[:len(stack)-1]
				continue
			}
			next := g.out[top.node][top.next]
			top.next++

			switch colors[next] {
			case inProgress:
				return true
			case unvisited:
				colors[next] = inProgress
				stack = append(stack, frame{node: next})
			}
		}
	}
	return false
}

// details groups nodes by type label and collects zero in-degree (source)
// and zero out-degree (sink) nodes. An empty label is a group of its own.
func (g *Graph) details() *Details {
	d := &Details{
		NodeTypes:   make(map[string]int),
		SourceNodes: []string{},
		SinkNodes:   []string{},
	}
	for i, id := range g.ids {
		d.NodeTypes[g.types[i]]++
		if len(g.in[i]) == 0 {
			d.SourceNodes = append(d.SourceNodes, id)
		}
		if len(g.out[i]) == 0 {
			d.SinkNodes = append(d.SinkNodes, id)
		}
	}
	return d
}
