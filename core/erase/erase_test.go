package erase

import (
	"testing"

	"github.com/stretchr/testify/require"

	"synrec-core/event"
	"synrec-core/synteny"
)

type bnode struct {
	ev   event.Event
	kids []bnode
}

func build(root bnode) *event.Tree {
	t := event.New(root.ev)
	var graft func(p event.Node, b bnode)
	graft = func(p event.Node, b bnode) {
		id := t.Add(p, b.ev)
		for _, k := range b.kids {
			graft(id, k)
		}
	}
	for _, k := range root.kids {
		graft(t.Root(), k)
	}
	return t
}

func ev(kind event.Kind, genes string, kids ...bnode) bnode {
	return bnode{ev: event.Event{Kind: kind, Synteny: synteny.Parse(genes)}, kids: kids}
}

func evSeg(kind event.Kind, genes string, first, second int, kids ...bnode) bnode {
	return bnode{
		ev: event.Event{
			Kind:    kind,
			Synteny: synteny.Parse(genes),
			Segment: synteny.Segment{First: first, Second: second},
		},
		kids: kids,
	}
}

func TestStripsInternalLabels(t *testing.T) {
	tr := build(ev(event.Speciation, "a b c",
		ev(event.Duplication, "a b c",
			ev(event.None, "a b"),
			ev(event.None, "a c"),
		),
		ev(event.None, "a b c"),
	))

	Tree(tr)

	root := tr.Root()
	require.Equal(t, synteny.Parse("a b c"), tr.Event(root).Synteny,
		"root synteny survives")
	dup := tr.Child(root, 0)
	require.Equal(t, event.Duplication, tr.Event(dup).Kind)
	require.Empty(t, tr.Event(dup).Synteny, "internal syntenies are cleared")
	require.Equal(t, synteny.Parse("a b"), tr.Event(tr.Child(dup, 0)).Synteny,
		"leaf syntenies survive")
}

func TestCollapsesCascadedLosses(t *testing.T) {
	// A chain of two losses above a leaf collapses into the leaf.
	tr := build(ev(event.Speciation, "a b c",
		evSeg(event.Loss, "a b c", 0, 1,
			evSeg(event.Loss, "b c", 0, 1,
				ev(event.None, "c"),
			),
		),
		ev(event.None, "a b c"),
	))

	Tree(tr)

	root := tr.Root()
	require.Equal(t, 2, tr.NumChildren(root))
	left := tr.Child(root, 0)
	require.Equal(t, event.None, tr.Event(left).Kind)
	require.Equal(t, synteny.Parse("c"), tr.Event(left).Synteny)
	require.True(t, tr.IsLeaf(left))
}

func TestFullLossBecomesEmptyLeaf(t *testing.T) {
	tr := build(ev(event.Duplication, "a b",
		evSeg(event.Loss, "a b", 0, 2),
		ev(event.None, "a b"),
	))

	Tree(tr)

	loss := tr.Child(tr.Root(), 0)
	require.Equal(t, event.Loss, tr.Event(loss).Kind)
	require.Empty(t, tr.Event(loss).Synteny)
	require.True(t, tr.Event(loss).Segment.IsZero())
}

func TestIdempotent(t *testing.T) {
	tr := build(ev(event.Speciation, "a b c d",
		evSeg(event.Loss, "a b c d", 1, 3,
			ev(event.Duplication, "a d",
				ev(event.None, "a d"),
				ev(event.None, "a"),
			),
		),
		ev(event.None, "a b c d"),
	))

	Tree(tr)
	once := tr.Clone()
	Tree(tr)
	require.True(t, once.Equal(tr))
}

func TestLeafOnlyTreeUnchanged(t *testing.T) {
	tr := build(ev(event.None, "a b"))
	Tree(tr)
	require.Equal(t, synteny.Parse("a b"), tr.Event(tr.Root()).Synteny)
	require.Equal(t, event.None, tr.Event(tr.Root()).Kind)
}
