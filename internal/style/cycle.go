package style

import "sort"

// macroCycle is one detected recursion, reported at the call site that
// closes the loop.
type macroCycle struct {
	path []string
	rng  ByteRange
}

// findMacroCycles runs a depth-first search over the macro call graph.
// Every edge is a text macro="" reference recorded during parsing; sort
// keys call macros too but cannot participate in recursion, so only
// refs with an enclosing macro become edges.
func findMacroCycles(macros map[string][]Element, refs []macroRef) []macroCycle {
	edges := make(map[string][]macroRef)
	for _, r := range refs {
		if r.from == "" {
			continue
		}
		if _, ok := macros[r.name]; !ok {
			continue
		}
		edges[r.from] = append(edges[r.from], r)
	}

	const (
		white = iota // unvisited
		gray         // on the current path
		black        // fully explored
	)
	state := make(map[string]int, len(macros))
	var stack []string
	var cycles []macroCycle

	var visit func(name string)
	visit = func(name string) {
		state[name] = gray
		stack = append(stack, name)
		for _, ref := range edges[name] {
			switch state[ref.name] {
			case white:
				visit(ref.name)
			case gray:
				// close the loop from the first occurrence on the stack
				i := 0
				for ; stack[i] != ref.name; i++ {
				}
				path := append([]string(nil), stack[i:]...)
				path = append(path, ref.name)
				cycles = append(cycles, macroCycle{path: path, rng: ref.rng})
			}
		}
		stack = stack[:len(stack)-1]
		state[name] = black
	}

	names := make([]string, 0, len(macros))
	for name := range macros {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if state[name] == white {
			visit(name)
		}
	}
	return cycles
}
