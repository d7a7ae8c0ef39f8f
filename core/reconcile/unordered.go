package reconcile

import (
	"fmt"

	"synrec-core/event"
	"synrec-core/synteny"
)

// nodeInfo holds the gene-set and propagation state computed for one
// node during the first two passes of the unordered engine.
type nodeInfo struct {
	// genes is the set of families that must appear in this node's
	// synteny for the labeling to be valid and minimal.
	genes geneSet

	// shouldPropagate signals that copying the parent's gene set into
	// this node results in fewer losses overall.
	shouldPropagate bool
}

// Unordered runs the unordered super-reconciliation over t: internal
// nodes are labeled with gene sets in three passes (initialize,
// propagate, resolve), then each set is laid out in a canonical order
// and segmental losses and duplicated segments are made explicit.
func Unordered(t *event.Tree) error {
	info, err := initialize(t)
	if err != nil {
		return err
	}
	propagate(t, info)
	resolve(t, info)
	return nil
}

// initialize computes, bottom-up, the minimal gene set of every node
// and whether the node would rather inherit its parent's set.
func initialize(t *event.Tree) (map[event.Node]*nodeInfo, error) {
	info := make(map[event.Node]*nodeInfo, t.Len())

	for _, v := range t.Postorder() {
		switch t.NumChildren(v) {
		case 0:
			if kind := t.Event(v).Kind; kind == event.Duplication || kind == event.Speciation {
				return nil, fmt.Errorf("%w: leaf carrying event kind %v",
					ErrMalformedTree, kind)
			}
			// A leaf contains exactly the families it was observed
			// with, and observed leaves are never rewritten.
			info[v] = &nodeInfo{
				genes:           newGeneSet(t.Event(v).Synteny),
				shouldPropagate: false,
			}

		case 2:
			left, right := t.Child(v, 0), t.Child(v, 1)
			infoLeft, infoRight := info[left], info[right]
			union := infoLeft.genes.union(infoRight.genes)

			kindLeft := t.Event(left).Kind
			kindRight := t.Event(right).Kind

			// All cases in which inheriting the parent synteny saves
			// losses lower in the tree.
			inherits := ((!infoLeft.genes.equal(union) || infoLeft.shouldPropagate) &&
				(!infoRight.genes.equal(union) || infoRight.shouldPropagate)) ||
				(t.Event(v).Kind == event.Duplication &&
					(kindLeft == event.Loss || infoLeft.shouldPropagate ||
						kindRight == event.Loss || infoRight.shouldPropagate)) ||
				((infoLeft.shouldPropagate || kindLeft == event.Loss) &&
					(infoRight.shouldPropagate || kindRight == event.Loss))

			info[v] = &nodeInfo{genes: union, shouldPropagate: inherits}

		default:
			return nil, fmt.Errorf("%w: internal node with %d children",
				ErrMalformedTree, t.NumChildren(v))
		}
	}

	return info, nil
}

// propagate copies, top-down, the parent's gene set into every child
// that asked for it.
func propagate(t *event.Tree, info map[event.Node]*nodeInfo) {
	for _, v := range t.Preorder() {
		for _, c := range t.Children(v) {
			if info[c].shouldPropagate {
				info[c].genes = info[v].genes
			}
		}
	}
}

// resolve lays each gene set out as a synteny, inserts the loss nodes
// the layout requires, and records duplicated segments.
func resolve(t *event.Tree, info map[event.Node]*nodeInfo) {
	for _, v := range t.Postorder() {
		genesParent := info[v].genes

		// An internal node with no required families admits no
		// evolution below it: the whole subtree is one full loss.
		if len(genesParent) == 0 {
			t.EraseChildren(v)
			t.Event(v).Kind = event.Loss
			continue
		}

		if t.NumChildren(v) != 2 {
			continue
		}

		left, right := t.Child(v, 0), t.Child(v, 1)
		genesLeft, genesRight := info[left].genes, info[right].genes

		// Partition into the four disjoint pieces that determine the
		// layout: shared families first, then left-only, then the
		// families kept by neither child, then right-only.
		s1 := genesLeft.intersect(genesRight)
		s2 := genesLeft.subtract(genesRight)
		s3 := genesParent.subtract(genesLeft.union(genesRight))
		s4 := genesRight.subtract(genesLeft)

		parentSynteny := concat(s1, s2, s3, s4)
		leftTarget := concat(s1, s2)
		rightTarget := concat(s1, s4)

		ev := t.Event(v)
		ev.Synteny = parentSynteny

		total := len(s1) + len(s2) + len(s3) + len(s4)
		segmentalLeft := false

		if !leftTarget.Equal(parentSynteny) && t.Event(left).Kind != event.Loss {
			if ev.Kind == event.Duplication {
				// Duplicate only the s1.s2 prefix instead of paying a
				// loss on the left branch.
				segmentalLeft = true
				ev.Segment = synteny.Segment{First: 0, Second: len(s1) + len(s2)}
			} else {
				t.Wrap(left, event.Event{
					Kind:    event.Loss,
					Synteny: parentSynteny.Clone(),
					Segment: synteny.Segment{
						First:  len(s1) + len(s2),
						Second: total,
					},
				})
			}
		}

		if ev.Kind == event.Duplication && !segmentalLeft {
			// The left branch costs nothing extra, so the duplicated
			// segment is free to cover the right child exactly.
			if t.Event(left).Kind == event.Loss {
				// A full loss on the left forces s1 to be empty, so
				// the right child is exactly s4.
				ev.Segment = synteny.Segment{
					First:  len(s1) + len(s2) + len(s3),
					Second: total,
				}
			} else {
				// The left child equals its parent, so s4 is empty and
				// the right child is exactly s1.
				ev.Segment = synteny.Segment{First: 0, Second: len(s1)}
			}
		} else if !rightTarget.Equal(parentSynteny) && t.Event(right).Kind != event.Loss {
			t.Wrap(right, event.Event{
				Kind:    event.Loss,
				Synteny: parentSynteny.Clone(),
				Segment: synteny.Segment{
					First:  len(s1),
					Second: len(s1) + len(s2) + len(s3),
				},
			})
		}
	}
}
