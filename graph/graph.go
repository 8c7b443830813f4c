// Package graph implements the dependency graph of Unique events (§3):
// a directed graph whose edges run child -> parent, recording "child was
// produced while parent was being processed".
//
// Nodes are addressed by event.ID rather than by pointer, following the
// arena layout from the teacher's tree.Tree generalized to an explicit
// id-indexed map (design note §9: "represent as an arena of events
// indexed by Unique.id ... no pointer cycles arise because edges go
// child->parent only").
package graph

import (
	"fmt"

	"dpor/event"
)

type node struct {
	evt       event.Unique
	parent    event.ID
	hasParent bool
	children  []event.ID
}

// DependencyGraph is the arena described above. The zero value is not
// usable; use New.
type DependencyGraph struct {
	nodes map[event.ID]*node
}

// New returns a DependencyGraph containing only the sentinel Root.
func New() *DependencyGraph {
	g := &DependencyGraph{nodes: map[event.ID]*node{}}
	g.nodes[event.Root.ID] = &node{evt: event.Root}
	return g
}

// AddChild records child as a node with a single outgoing edge to
// parent (invariant 1, §3). parent must already be present.
func (g *DependencyGraph) AddChild(child event.Unique, parent event.ID) error {
	if _, ok := g.nodes[parent]; !ok {
		return fmt.Errorf("graph: parent %d not found", parent)
	}
	if _, ok := g.nodes[child.ID]; ok {
		return fmt.Errorf("graph: node %d already present", child.ID)
	}
	g.nodes[child.ID] = &node{evt: child, parent: parent, hasParent: true}
	g.nodes[parent].children = append(g.nodes[parent].children, child.ID)
	return nil
}

// AddMarker records evt as a node with no parent edge. NetworkPartition
// and WaitQuiescence markers are inserted this way (§3).
func (g *DependencyGraph) AddMarker(evt event.Unique) {
	if _, ok := g.nodes[evt.ID]; ok {
		return
	}
	g.nodes[evt.ID] = &node{evt: evt}
}

// Has reports whether id has been added to the graph.
func (g *DependencyGraph) Has(id event.ID) bool {
	_, ok := g.nodes[id]
	return ok
}

// Get returns the Unique stored at id.
func (g *DependencyGraph) Get(id event.ID) (event.Unique, bool) {
	n, ok := g.nodes[id]
	if !ok {
		return event.Unique{}, false
	}
	return n.evt, true
}

// Parent returns id's parent and whether id has a parent edge at all.
func (g *DependencyGraph) Parent(id event.ID) (event.ID, bool) {
	n, ok := g.nodes[id]
	if !ok || !n.hasParent {
		return 0, false
	}
	return n.parent, true
}

// Siblings returns the ids of every node with an edge to parent.
// get_or_create_message (§4.2) scans this set for a structural match.
func (g *DependencyGraph) Siblings(parent event.ID) []event.ID {
	n, ok := g.nodes[parent]
	if !ok {
		return nil
	}
	return n.children
}

// PathToRoot returns the ids from id up to and including the root.
func (g *DependencyGraph) PathToRoot(id event.ID) []event.ID {
	path := []event.ID{id}
	for {
		parent, ok := g.Parent(id)
		if !ok {
			break
		}
		path = append(path, parent)
		id = parent
	}
	return path
}

// Depth returns the number of edges from id to the root.
func (g *DependencyGraph) Depth(id event.ID) int {
	return len(g.PathToRoot(id)) - 1
}

// Precedes reports whether there is a dependency-graph path from b up to
// a, i.e. a causally precedes b. Used by the co-enabledness test (§4.3).
func (g *DependencyGraph) Precedes(a, b event.ID) bool {
	for _, id := range g.PathToRoot(b) {
		if id == a {
			return true
		}
	}
	return false
}

// LastSharedAncestor returns the deepest id common to both a's and b's
// paths to root -- the branch index analyze_dep's Msg/Msg row uses
// (§4.3). Returns the root id (0) if the only shared ancestor is root.
func (g *DependencyGraph) LastSharedAncestor(a, b event.ID) event.ID {
	seen := make(map[event.ID]bool)
	for _, id := range g.PathToRoot(a) {
		seen[id] = true
	}
	for _, id := range g.PathToRoot(b) {
		if seen[id] {
			return id
		}
	}
	return event.Root.ID
}

// GetOrCreateMessage implements get_or_create_message (§4.2): search the
// siblings of parent for a node whose MsgEvent has the same receiver and
// an equal payload (Payload.Equal already folds in the timer-marker
// matching rule), returning it if found. Otherwise mint a fresh id via
// alloc and add evt as a new child of parent.
func (g *DependencyGraph) GetOrCreateMessage(evt event.MsgEvent, parent event.ID, alloc *event.Allocator) event.Unique {
	for _, sibling := range g.Siblings(parent) {
		n := g.nodes[sibling]
		sm, ok := n.evt.Evt.(event.MsgEvent)
		if !ok || sm.To != evt.To {
			continue
		}
		switch {
		case sm.Payload == nil && evt.Payload == nil:
			return n.evt
		case sm.Payload == nil || evt.Payload == nil:
			continue
		case sm.Payload.Equal(evt.Payload):
			return n.evt
		}
	}
	u := event.Unique{Evt: evt, ID: alloc.Next()}
	// parent is guaranteed present: callers only pass cursor ids already in g.
	_ = g.AddChild(u, parent)
	return u
}
