// Package oracle computes the expected result of the recursive query by
// evaluating its two common table expressions over a fixture in Go.
package oracle

import (
	"sort"

	"github.com/mesh-intelligence/ctebug/pkg/types"
)

// Trace is the evaluated content of each CTE, in evaluation order.
type Trace struct {
	// Dummy is the recursive closure from the root over parentid.
	Dummy []int `json:"dummy"`
	// Dummy2 is Dummy joined with SIMPLETABLE on id.
	Dummy2 []int `json:"dummy2"`
	// Final is the projection of Dummy.
	Final []int `json:"final"`
	// Iterations counts the recursive steps that produced rows.
	Iterations int `json:"iterations"`
}

// Count returns the number of rows the final projection yields.
func (t Trace) Count() int {
	return len(t.Final)
}

// SortedFinal returns a sorted copy of Final.
func (t Trace) SortedFinal() []int {
	out := append([]int(nil), t.Final...)
	sort.Ints(out)
	return out
}

// Evaluate runs the query semantics over f starting at root.
//
// The base case selects the hierarchy row whose id equals root. Each
// recursive step joins the rows produced by the previous step with
// HIERARCHY on parentid, as UNION ALL does, so duplicates are kept. The
// recursion stops when a step produces nothing or after len(f.Hierarchy)
// steps, which bounds it on cyclic input.
func Evaluate(f types.Fixture, root int) Trace {
	children := make(map[int][]int, len(f.Hierarchy))
	exists := make(map[int]bool, len(f.Hierarchy))
	for _, n := range f.Hierarchy {
		children[n.ParentID] = append(children[n.ParentID], n.ID)
		exists[n.ID] = true
	}

	var t Trace
	if !exists[root] {
		return t
	}

	frontier := []int{root}
	t.Dummy = append(t.Dummy, root)
	for step := 0; step < len(f.Hierarchy) && len(frontier) > 0; step++ {
		var next []int
		for _, id := range frontier {
			next = append(next, children[id]...)
		}
		if len(next) == 0 {
			break
		}
		t.Iterations++
		t.Dummy = append(t.Dummy, next...)
		frontier = next
	}

	lookup := make(map[int]bool, len(f.Lookup))
	for _, r := range f.Lookup {
		lookup[r.ID] = true
	}
	for _, id := range t.Dummy {
		if lookup[id] {
			t.Dummy2 = append(t.Dummy2, id)
		}
	}

	t.Final = append([]int(nil), t.Dummy...)
	return t
}
