package simulate

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"synrec-core/event"
	"synrec-core/synteny"
)

func params() Params {
	return Params{
		Base:        synteny.Dummy(6),
		Depth:       5,
		PDup:        0.5,
		PDupLength:  0.3,
		PLoss:       0.3,
		PLossLength: 0.7,
		PRearr:      1,
	}
}

func TestDeterministicForSeed(t *testing.T) {
	p := params()
	first := Evolve(rand.New(rand.NewSource(1234)), p)
	second := Evolve(rand.New(rand.NewSource(1234)), p)
	require.True(t, first.Equal(second), "same seed must reproduce the same tree")

	other := Evolve(rand.New(rand.NewSource(5678)), p)
	// Two seeds agreeing on a depth-5 evolution would be remarkable.
	require.False(t, first.Equal(other))
}

func TestEmptyBaseIsFullLoss(t *testing.T) {
	p := params()
	p.Base = synteny.Synteny{}
	tr := Evolve(rand.New(rand.NewSource(1)), p)
	require.Equal(t, 1, tr.Len())
	require.Equal(t, event.Loss, tr.Event(tr.Root()).Kind)
	require.Empty(t, tr.Event(tr.Root()).Synteny)
}

func TestZeroDepthIsLeaf(t *testing.T) {
	p := params()
	p.Depth = 0
	tr := Evolve(rand.New(rand.NewSource(1)), p)
	require.Equal(t, 1, tr.Len())
	require.Equal(t, event.None, tr.Event(tr.Root()).Kind)
	require.Equal(t, p.Base, tr.Event(tr.Root()).Synteny)
}

// Structural invariants of simulated trees: loss nodes carry the
// pre-loss synteny and a valid segment, internal nodes are binary
// except intermediate losses, duplications record a non-empty segment.
func TestSimulatedTreeShape(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	p := params()

	for i := 0; i < 20; i++ {
		tr := Evolve(rng, p)
		for _, n := range tr.Preorder() {
			ev := tr.Event(n)
			switch ev.Kind {
			case event.Duplication, event.Speciation:
				require.Equal(t, 2, tr.NumChildren(n))
				if ev.Kind == event.Duplication {
					require.Greater(t, ev.Segment.Len(), 0)
					require.LessOrEqual(t, ev.Segment.Second, len(ev.Synteny))
				}
			case event.Loss:
				if tr.IsLeaf(n) {
					require.Empty(t, ev.Synteny)
				} else {
					require.Equal(t, 1, tr.NumChildren(n))
					require.Greater(t, ev.Segment.Len(), 0)
					require.LessOrEqual(t, ev.Segment.Second, len(ev.Synteny))
				}
			case event.None:
				require.True(t, tr.IsLeaf(n))
				require.NotEmpty(t, ev.Synteny)
			}
		}
	}
}

// With rearrangement disabled, every leaf synteny is a subsequence of
// the ancestral synteny.
func TestLeavesAreSubsequencesWithoutRearrangement(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	p := params()

	for i := 0; i < 20; i++ {
		tr := Evolve(rng, p)
		base := tr.Event(tr.Root()).Synteny
		if tr.IsLeaf(tr.Root()) {
			continue
		}
		for _, n := range tr.Leaves() {
			leaf := tr.Event(n)
			if leaf.Kind != event.None {
				continue
			}
			_, err := base.DistanceTo(leaf.Synteny, false)
			require.NoError(t, err,
				"leaf %v is not a subsequence of %v", leaf.Synteny, base)
		}
	}
}

func TestParamsKey(t *testing.T) {
	a := params()
	b := params()
	require.Equal(t, a.Key(), b.Key())

	b.PLoss = 0.9
	require.NotEqual(t, a.Key(), b.Key())

	c := params()
	c.Base = synteny.Dummy(3)
	require.NotEqual(t, a.Key(), c.Key())

	// Keys are comparable map keys.
	m := map[Key]int{a.Key(): 1}
	require.Equal(t, 1, m[params().Key()])
}
