// Package event models the labeled binary trees that the reconciliation
// engines consume and produce. Nodes live in an arena and are addressed
// by stable integer handles, so per-node side tables in the algorithms
// are plain slices indexed by node id.
package event

import (
	"synrec-core/synteny"
)

// Kind enumerates the event types a tree node can carry.
type Kind uint8

const (
	// None marks a leaf carrying an observed synteny.
	None Kind = iota

	// Duplication copies the synteny into two children in the same
	// lineage; at most one child may receive only a segment of it.
	Duplication

	// Speciation splits the lineage into two species, both inheriting
	// the full synteny.
	Speciation

	// Loss removes a segment of the synteny along a branch. A loss with
	// an empty synteny and no child is a full loss of the lineage.
	Loss
)

func (k Kind) String() string {
	switch k {
	case None:
		return "None"
	case Duplication:
		return "Duplication"
	case Speciation:
		return "Speciation"
	case Loss:
		return "Loss"
	}
	return "Invalid"
}

// Event is the payload of a tree node: what happened, over which synteny,
// and which segment of it was involved.
type Event struct {
	Kind    Kind
	Synteny synteny.Synteny
	Segment synteny.Segment
}

// Equal compares two events. The segment is only significant for
// duplications and losses.
func (e Event) Equal(o Event) bool {
	if e.Kind != o.Kind {
		return false
	}
	if (e.Kind == Duplication || e.Kind == Loss) && e.Segment != o.Segment {
		return false
	}
	return e.Synteny.Equal(o.Synteny)
}

func (e Event) String() string {
	out := "{kind=" + e.Kind.String() + ", synteny=\"" + e.Synteny.String() + "\""
	if (e.Kind == Duplication || e.Kind == Loss) && !e.Segment.IsZero() {
		out += ", segment=" + e.Segment.String()
	}
	return out + "}"
}
