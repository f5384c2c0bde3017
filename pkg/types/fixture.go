package types

import (
	"errors"
	"fmt"
)

// RootSentinel is the parent identifier of the hierarchy root.
const RootSentinel = 0

// Fixture validation errors.
var (
	ErrDuplicateID  = errors.New("duplicate identifier")
	ErrOrphanLookup = errors.New("lookup identifier not in hierarchy")
	ErrCycle        = errors.New("parent chain does not reach the root")
)

// Node is one row of the HIERARCHY table.
type Node struct {
	ID       int `json:"id" yaml:"id"`
	ParentID int `json:"parent_id" yaml:"parent_id"`
}

// LookupRow is one row of the SIMPLETABLE table.
type LookupRow struct {
	ID    int    `json:"id" yaml:"id"`
	Value string `json:"value" yaml:"value"`
}

// Fixture is the data loaded into every fresh instance.
type Fixture struct {
	Hierarchy []Node      `json:"hierarchy" yaml:"hierarchy"`
	Lookup    []LookupRow `json:"lookup" yaml:"lookup"`
}

// ReferenceFixture returns the tree used by the reproduction: 2 and 3 under
// the root 1, 4 under 2, 5 under 4, and lookup rows for identifiers 2 to 5.
func ReferenceFixture() Fixture {
	return Fixture{
		Hierarchy: []Node{
			{ID: 1, ParentID: RootSentinel},
			{ID: 2, ParentID: 1},
			{ID: 3, ParentID: 1},
			{ID: 4, ParentID: 2},
			{ID: 5, ParentID: 4},
		},
		Lookup: []LookupRow{
			{ID: 2, Value: "somevalue"},
			{ID: 3, Value: "othervalue"},
			{ID: 4, Value: "somemore"},
			{ID: 5, Value: "..."},
		},
	}
}

// Validate checks that identifiers are unique per table, that every lookup
// identifier exists in the hierarchy, and that every parent chain ends at
// RootSentinel.
func (f Fixture) Validate() error {
	parents := make(map[int]int, len(f.Hierarchy))
	for _, n := range f.Hierarchy {
		if _, ok := parents[n.ID]; ok {
			return fmt.Errorf("%w: hierarchy id %d", ErrDuplicateID, n.ID)
		}
		parents[n.ID] = n.ParentID
	}

	seen := make(map[int]bool, len(f.Lookup))
	for _, r := range f.Lookup {
		if seen[r.ID] {
			return fmt.Errorf("%w: lookup id %d", ErrDuplicateID, r.ID)
		}
		seen[r.ID] = true
		if _, ok := parents[r.ID]; !ok {
			return fmt.Errorf("%w: %d", ErrOrphanLookup, r.ID)
		}
	}

	for _, n := range f.Hierarchy {
		id := n.ID
		for hops := 0; id != RootSentinel; hops++ {
			if hops > len(parents) {
				return fmt.Errorf("%w: starting at %d", ErrCycle, n.ID)
			}
			parent, ok := parents[id]
			if !ok {
				return fmt.Errorf("%w: %d has unknown parent", ErrCycle, n.ID)
			}
			id = parent
		}
	}
	return nil
}
