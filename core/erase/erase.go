// Package erase canonicalizes fully-labeled reference trees into valid
// inputs for the reconciliation engines: internal syntenies are
// stripped (except at the root), loss nodes lose their labels, and
// loss nodes above a branch are spliced out so that the branch below
// takes their place.
package erase

import (
	"synrec-core/event"
	"synrec-core/synteny"
)

// Tree erases t in place. Only the root synteny and the leaf syntenies
// survive; every loss node ends up a leaf with an empty synteny. The
// operation is idempotent.
func Tree(t *event.Tree) {
	subtree(t, t.Root(), true)
}

func subtree(t *event.Tree, n event.Node, isRoot bool) {
	ev := t.Event(n)

	switch ev.Kind {
	case event.None:
		return

	case event.Loss:
		ev.Synteny = synteny.Synteny{}
		ev.Segment = synteny.NoSegment
		if t.NumChildren(n) != 0 {
			// Splice the loss node out: its only child takes its
			// place, collapsing cascaded losses.
			child := t.Child(n, 0)
			t.Erase(n)
			subtree(t, child, false)
		}

	case event.Duplication, event.Speciation:
		if !isRoot {
			ev.Synteny = synteny.Synteny{}
		}
		ev.Segment = synteny.NoSegment
		subtree(t, t.Child(n, 0), false)
		subtree(t, t.Child(n, 1), false)
	}
}
