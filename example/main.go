package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/meikuraledutech/pipecheck"
)

func main() {
	// ── Concrete pipelines ────────────────────────────────────────────
	examples := []struct {
		name string
		raw  string
	}{
		{"empty", `{"nodes": [], "edges": []}`},
		{"chain", `{
			"nodes": [{"id": "A", "type": "Input"}, {"id": "B", "type": "Text"}, {"id": "C", "type": "Output"}],
			"edges": [{"id": "e1", "source": "A", "target": "B"}, {"id": "e2", "source": "B", "target": "C"}]
		}`},
		{"cycle", `{
			"nodes": [{"id": "A"}, {"id": "B"}, {"id": "C"}],
			"edges": [{"source": "A", "target": "B"}, {"source": "B", "target": "C"}, {"source": "C", "target": "A"}]
		}`},
		{"self-loop", `{"nodes": [{"id": "A"}], "edges": [{"source": "A", "target": "A"}]}`},
		{"isolated", `{"nodes": [{"id": "A"}, {"id": "B"}]}`},
		{"unknown reference", `{"nodes": [{"id": "A"}], "edges": [{"source": "A", "target": "X"}]}`},
	}

	for _, ex := range examples {
		g, err := pipecheck.Parse([]byte(ex.raw), pipecheck.Limits{})
		if errors.Is(err, pipecheck.ErrUnknownNodeReference) {
			fmt.Printf("\n%s: rejected: %v\n", ex.name, err)
			continue
		}
		if err != nil {
			log.Fatalf("%s: %v", ex.name, err)
		}
		fmt.Printf("\n%s:\n", ex.name)
		printJSON(pipecheck.Analyze(g, true))
	}
}

func printJSON(v any) {
	out, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(out))
}
