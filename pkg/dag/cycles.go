package dag

import "sort"

// Cycles returns every elementary dependency cycle reachable by depth-first
// search, each as a path that starts and ends with the same id, e.g.
// [a b c a]. Traversal is in sorted id order so results are stable.
func (d *DAG) Cycles() [][]string {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int)
	var path []string
	var cycles [][]string

	var dfs func(id string)
	dfs = func(id string) {
		color[id] = gray
		path = append(path, id)

		children := append([]string(nil), d.outgoing[id]...)
		sort.Strings(children)
		for _, child := range children {
			switch color[child] {
			case white:
				dfs(child)
			case gray:
				for i := len(path) - 1; i >= 0; i-- {
					if path[i] == child {
						cycle := append(append([]string(nil), path[i:]...), child)
						cycles = append(cycles, cycle)
						break
					}
				}
			}
		}

		path = path[:len(path)-1]
		color[id] = black
	}

	for _, n := range d.Nodes() {
		if color[n.ID] == white {
			dfs(n.ID)
		}
	}
	return cycles
}

// HasCycle reports whether the graph contains a cycle.
func (d *DAG) HasCycle() bool {
	return len(d.Cycles()) > 0
}

// TopologicalOrder returns node ids with every dependency before its
// dependents. Ties are broken by id. It returns ErrGraphHasCycle if no
// such order exists.
func (d *DAG) TopologicalOrder() ([]string, error) {
	remaining := make(map[string]int, len(d.nodes))
	var ready []string
	for id := range d.nodes {
		remaining[id] = len(d.outgoing[id])
		if remaining[id] == 0 {
			ready = append(ready, id)
		}
	}
	sort.Strings(ready)

	order := make([]string, 0, len(d.nodes))
	for len(ready) > 0 {
		id := ready[0]
		ready = ready[1:]
		order = append(order, id)

		var next []string
		for _, parent := range d.incoming[id] {
			remaining[parent]--
			if remaining[parent] == 0 {
				next = append(next, parent)
			}
		}
		sort.Strings(next)
		ready = append(ready, next...)
		sort.Strings(ready)
	}

	if len(order) != len(d.nodes) {
		return nil, ErrGraphHasCycle
	}
	return order, nil
}
