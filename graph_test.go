package pipecheck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pipeline builds a Pipeline from node ids and "from", "to" pairs.
func pipeline(nodes []string, edges ...[2]string) *Pipeline {
	p := &Pipeline{}
	for _, id := range nodes {
		p.Nodes = append(p.Nodes, Node{ID: id})
	}
	for _, e := range edges {
		p.Edges = append(p.Edges, Edge{Source: e[0], Target: e[1]})
	}
	return p
}

func TestBuild(t *testing.T) {
	t.Run("adjacency follows edge order", func(t *testing.T) {
		g, err := Build(pipeline([]string{"a", "b", "c"},
			[2]string{"a", "c"},
			[2]string{"a", "b"},
			[2]string{"b", "c"},
		), Limits{})
		require.NoError(t, err)

		assert.Equal(t, []string{"a", "b", "c"}, g.NodeIDs())
		assert.Equal(t, 3, g.NumNodes())
		assert.Equal(t, 3, g.NumEdges())
		assert.Equal(t, []int{2, 1}, g.out[0])
		assert.Equal(t, []int{0, 1}, g.in[2])
		assert.Empty(t, g.in[0])
	})

	t.Run("self-loops and repeated edges are accepted", func(t *testing.T) {
		g, err := Build(pipeline([]string{"a", "b"},
			[2]string{"a", "a"},
			[2]string{"a", "b"},
			[2]string{"a", "b"},
		), Limits{})
		require.NoError(t, err)
		assert.Equal(t, 3, g.NumEdges())
		assert.Equal(t, []int{0, 1, 1}, g.out[0])
		assert.Equal(t, []int{0}, g.in[0])
	})

	t.Run("does not modify input", func(t *testing.T) {
		p := pipeline([]string{"a", "b"}, [2]string{"a", "b"})
		_, err := Build(p, Limits{})
		require.NoError(t, err)
		assert.Equal(t, pipeline([]string{"a", "b"}, [2]string{"a", "b"}), p)
	})

	t.Run("node ids are returned as a copy", func(t *testing.T) {
		g, err := Build(pipeline([]string{"a"}), Limits{})
		require.NoError(t, err)
		ids := g.NodeIDs()
		ids[0] = "mutated"
		assert.Equal(t, []string{"a"}, g.NodeIDs())
	})
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name   string
		p      *Pipeline
		lim    Limits
		target error
		field  string
		id     string
	}{
		{
			name:   "duplicate node id",
			p:      pipeline([]string{"a", "b", "a"}),
			target: ErrDuplicateNodeID,
			field:  "nodes[2].id",
			id:     "a",
		},
		{
			name:   "unknown target",
			p:      pipeline([]string{"a"}, [2]string{"a", "X"}),
			target: ErrUnknownNodeReference,
			field:  "edges[0].target",
			id:     "X",
		},
		{
			name:   "unknown source",
			p:      pipeline([]string{"a", "b"}, [2]string{"a", "b"}, [2]string{"ghost", "b"}),
			target: ErrUnknownNodeReference,
			field:  "edges[1].source",
			id:     "ghost",
		},
		{
			name:   "missing node id",
			p:      &Pipeline{Nodes: []Node{{Type: "Text"}}},
			target: ErrMalformedInput,
			field:  "nodes[0].id",
		},
		{
			name:   "too many nodes",
			p:      pipeline([]string{"a", "b", "c"}),
			lim:    Limits{MaxNodes: 2},
			target: ErrTooLarge,
			field:  "nodes",
		},
		{
			name:   "too many edges",
			p:      pipeline([]string{"a", "b"}, [2]string{"a", "b"}, [2]string{"b", "a"}),
			lim:    Limits{MaxEdges: 1},
			target: ErrTooLarge,
			field:  "edges",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Build(tt.p, tt.lim)
			assert.Nil(t, g)
			require.ErrorIs(t, err, tt.target)

			var ie *InputError
			require.ErrorAs(t, err, &ie)
			assert.Equal(t, tt.field, ie.Field)
			assert.Equal(t, tt.id, ie.ID)
		})
	}
}

func TestLimitsAtBoundary(t *testing.T) {
	_, err := Build(pipeline([]string{"a", "b"}, [2]string{"a", "b"}), Limits{MaxNodes: 2, MaxEdges: 1})
	assert.NoError(t, err)
}

func TestParse(t *testing.T) {
	g, err := Parse([]byte(`{"nodes":[{"id":"A"},{"id":"B"}],"edges":[{"id":"e1","source":"A","target":"B"}]}`), Limits{})
	require.NoError(t, err)
	assert.Equal(t, 2, g.NumNodes())
	assert.Equal(t, 1, g.NumEdges())

	_, err = Parse([]byte(`{"nodes":[{"id":"A"}],"edges":[{"source":"A","target":"X"}]}`), Limits{})
	assert.ErrorIs(t, err, ErrUnknownNodeReference)

	_, err = Parse([]byte(`not json`), Limits{})
	assert.ErrorIs(t, err, ErrMalformedInput)
}
