package reconcile

import (
	"fmt"

	"synrec-core/cost"
	"synrec-core/event"
	"synrec-core/synteny"
)

// candidate records, for one (node, synteny) pair of the dynamic
// program, the minimum subtree cost and the child assignment that
// attains it.
type candidate struct {
	// cost is d(v, X): the minimum number of duplications and segmental
	// losses in the subtree rooted at v when v carries X. Infinite when
	// no assignment below v is compatible with X.
	cost cost.Cost

	// Optimal syntenies for the two children. Not significant on
	// leaves.
	left  synteny.Synteny
	right synteny.Synteny

	// For duplications, whether the corresponding child was obtained by
	// a partial (segmental) duplication that absorbs its terminal
	// losses.
	partialLeft  bool
	partialRight bool
}

// table maps candidate syntenies, keyed by their canonical string form,
// to the information computed for them at one node.
type table map[string]candidate

// Ordered runs the ordered super-reconciliation over t. The root must
// carry the ancestral synteny; internal nodes must be duplications or
// speciations; leaves carry observed syntenies (empty for full losses).
//
// On return every internal node carries its optimal synteny, every
// duplication carries the duplicated segment of its synteny, and
// segmental losses are reified as explicit loss nodes along edges. The
// minimum duplication-loss cost is returned.
//
// Implements the dynamic program of "Reconstructing the History of
// Syntenies Through Super-Reconciliation" (El-Mabrouk et al.).
func Ordered(t *event.Tree) (int, error) {
	ancestral := t.Event(t.Root()).Synteny
	possibilities := ancestral.Subsequences()

	tables := make(map[event.Node]table)

	for _, v := range t.Postorder() {
		var nodeTable table
		var err error

		switch t.NumChildren(v) {
		case 0:
			if kind := t.Event(v).Kind; kind == event.Duplication || kind == event.Speciation {
				return 0, fmt.Errorf("%w: leaf carrying event kind %v",
					ErrMalformedTree, kind)
			}
			nodeTable = leafTable(t.Event(v).Synteny, possibilities)
		case 2:
			nodeTable, err = internalTable(t, v, possibilities, tables)
			if err != nil {
				return 0, err
			}
		default:
			return 0, fmt.Errorf("%w: internal node with %d children",
				ErrMalformedTree, t.NumChildren(v))
		}

		if !hasFiniteCandidate(nodeTable) {
			return 0, fmt.Errorf(
				"%w: no candidate for node %v under the root synteny (%v)",
				ErrInconsistentInput, t.Event(v), ancestral)
		}
		tables[v] = nodeTable
	}

	// The root keeps the ancestral synteny it came with; its candidate
	// fully determines the optimal assignment of the rest of the tree.
	rootInfo, ok := tables[t.Root()][ancestral.String()]
	if !ok || rootInfo.cost.IsInf() {
		return 0, fmt.Errorf(
			"%w: the root synteny (%v) admits no reconciliation",
			ErrInconsistentInput, ancestral)
	}

	if err := traceback(t, tables); err != nil {
		return 0, err
	}

	total, err := rootInfo.cost.Int()
	if err != nil {
		return 0, err
	}
	return total, nil
}

// leafTable affixes the observed synteny: the only candidate with a
// finite cost is the one already present on the leaf.
func leafTable(observed synteny.Synteny, possibilities []synteny.Synteny) table {
	out := make(table, len(possibilities))
	for _, cand := range possibilities {
		info := candidate{cost: cost.PosInf()}
		if cand.Equal(observed) {
			info.cost = cost.New(0)
		}
		out[cand.String()] = info
	}
	return out
}

// internalTable evaluates every candidate synteny for an internal node
// against the already-computed tables of its two children.
func internalTable(
	t *event.Tree,
	v event.Node,
	possibilities []synteny.Synteny,
	tables map[event.Node]table,
) (table, error) {
	kind := t.Event(v).Kind
	if kind != event.Duplication && kind != event.Speciation {
		return nil, fmt.Errorf("%w: invalid event kind %v on an internal node",
			ErrMalformedTree, kind)
	}

	leftTable := tables[t.Child(v, 0)]
	rightTable := tables[t.Child(v, 1)]

	out := make(table, len(possibilities))
	for _, cand := range possibilities {
		best, err := evalCandidate(kind, cand, leftTable, rightTable)
		if err != nil {
			return nil, err
		}
		out[cand.String()] = best
	}
	return out, nil
}

// evalCandidate computes d(v, X) for one candidate X by scanning the
// subsequences of X and combining, per the event kind, the cheapest
// total-mode and substring-mode child assignments.
func evalCandidate(
	kind event.Kind,
	cand synteny.Synteny,
	leftTable, rightTable table,
) (candidate, error) {
	type best struct {
		cost    cost.Cost
		synteny synteny.Synteny
	}
	bestTotalLeft := best{cost: cost.PosInf()}
	bestPartialLeft := best{cost: cost.PosInf()}
	bestTotalRight := best{cost: cost.PosInf()}
	bestPartialRight := best{cost: cost.PosInf()}

	for _, sub := range cand.Subsequences() {
		totalDist, err := cand.DistanceTo(sub, false)
		if err != nil {
			return candidate{}, err
		}
		partialDist, err := cand.DistanceTo(sub, true)
		if err != nil {
			return candidate{}, err
		}

		key := sub.String()
		leftCost := leftTable[key].cost
		rightCost := rightTable[key].cost

		if c, err := cost.New(totalDist).Add(leftCost); err != nil {
			return candidate{}, err
		} else if c.Less(bestTotalLeft.cost) {
			bestTotalLeft = best{c, sub}
		}
		if c, err := cost.New(partialDist).Add(leftCost); err != nil {
			return candidate{}, err
		} else if c.Less(bestPartialLeft.cost) {
			bestPartialLeft = best{c, sub}
		}
		if c, err := cost.New(totalDist).Add(rightCost); err != nil {
			return candidate{}, err
		} else if c.Less(bestTotalRight.cost) {
			bestTotalRight = best{c, sub}
		}
		if c, err := cost.New(partialDist).Add(rightCost); err != nil {
			return candidate{}, err
		} else if c.Less(bestPartialRight.cost) {
			bestPartialRight = best{c, sub}
		}
	}

	fullCost, err := bestTotalLeft.cost.Add(bestTotalRight.cost)
	if err != nil {
		return candidate{}, err
	}

	var info candidate
	switch kind {
	case event.Speciation:
		// Both children receive a full copy; any divergence is paid for
		// with explicit segmental losses.
		info = candidate{
			cost:  fullCost,
			left:  bestTotalLeft.synteny,
			right: bestTotalRight.synteny,
		}

	case event.Duplication:
		// One child may be a segmental copy that absorbs its terminal
		// losses. Ties break in favor of the full copy, then the
		// partial right, then the partial left.
		partialRightCost, err := bestTotalLeft.cost.Add(bestPartialRight.cost)
		if err != nil {
			return candidate{}, err
		}
		partialLeftCost, err := bestPartialLeft.cost.Add(bestTotalRight.cost)
		if err != nil {
			return candidate{}, err
		}

		switch {
		case fullCost.LessEq(partialRightCost) && fullCost.LessEq(partialLeftCost):
			info = candidate{
				cost:  fullCost,
				left:  bestTotalLeft.synteny,
				right: bestTotalRight.synteny,
			}
		case partialRightCost.LessEq(fullCost) && partialRightCost.LessEq(partialLeftCost):
			info = candidate{
				cost:         partialRightCost,
				left:         bestTotalLeft.synteny,
				right:        bestPartialRight.synteny,
				partialRight: true,
			}
		default:
			info = candidate{
				cost:        partialLeftCost,
				left:        bestPartialLeft.synteny,
				right:       bestTotalRight.synteny,
				partialLeft: true,
			}
		}

		if info.cost.IsFinite() {
			c, err := info.cost.Add(cost.New(1))
			if err != nil {
				return candidate{}, err
			}
			info.cost = c
		}
	}

	return info, nil
}

func hasFiniteCandidate(tab table) bool {
	for _, info := range tab {
		if info.cost.IsFinite() {
			return true
		}
	}
	return false
}

// traceback propagates the optimal assignment from the root downward,
// setting child syntenies, duplication segments, and reifying losses.
func traceback(t *event.Tree, tables map[event.Node]table) error {
	for _, v := range t.Preorder() {
		if t.NumChildren(v) != 2 {
			continue
		}

		ev := t.Event(v)
		parentSynteny := ev.Synteny

		// A node assigned an empty synteny has nothing left to pass
		// down: its whole subtree degenerates to a full loss.
		if parentSynteny.IsEmpty() {
			t.EraseChildren(v)
			ev.Kind = event.Loss
			ev.Segment = synteny.NoSegment
			continue
		}

		info, ok := tables[v][parentSynteny.String()]
		if !ok || info.cost.IsInf() {
			return fmt.Errorf("%w: node %v cannot carry synteny (%v)",
				ErrInconsistentInput, ev, parentSynteny)
		}

		childLeft := t.Child(v, 0)
		childRight := t.Child(v, 1)
		t.Event(childLeft).Synteny = info.left.Clone()
		t.Event(childRight).Synteny = info.right.Clone()

		// What actually flows down each branch: the full synteny, or
		// only the duplicated segment on the segmental side.
		downLeft, downRight := parentSynteny, parentSynteny
		if ev.Kind == event.Duplication {
			switch {
			case info.partialLeft:
				seg := coveringSegment(parentSynteny, info.left)
				ev.Segment = seg
				downLeft = parentSynteny.Slice(seg)
			case info.partialRight:
				seg := coveringSegment(parentSynteny, info.right)
				ev.Segment = seg
				downRight = parentSynteny.Slice(seg)
			default:
				ev.Segment = synteny.Segment{First: 0, Second: len(parentSynteny)}
			}
		}

		if err := resolveLosses(t, downLeft, childLeft); err != nil {
			return err
		}
		if err := resolveLosses(t, downRight, childRight); err != nil {
			return err
		}
	}
	return nil
}

// coveringSegment returns the interval of source spanned by the mapping
// of target onto source: from the first matched position to one past
// the last. Prefix and suffix losses fall outside the interval.
func coveringSegment(source, target synteny.Synteny) synteny.Segment {
	if target.IsEmpty() {
		return synteny.NoSegment
	}
	first, last := 0, 0
	j := 0
	for i := 0; i < len(source) && j < len(target); i++ {
		if source[i] != target[j] {
			continue
		}
		if j == 0 {
			first = i
		}
		last = i
		j++
	}
	return synteny.Segment{First: first, Second: last + 1}
}

// resolveLosses makes sure the synteny flowing into child differs from
// the child's own synteny by at most one lost segment for loss children
// and not at all otherwise, inserting intermediate loss nodes until the
// condition holds.
func resolveLosses(t *event.Tree, upstream synteny.Synteny, child event.Node) error {
	allowed := 0
	if t.Event(child).Kind == event.Loss {
		allowed = 1
	}

	distance, err := upstream.DistanceTo(t.Event(child).Synteny, false)
	if err != nil {
		return fmt.Errorf("%w: %v does not descend from (%v)",
			ErrInconsistentInput, t.Event(child), upstream)
	}
	if distance <= allowed {
		return nil
	}

	segments, err := upstream.Reconcile(t.Event(child).Synteny, false, cost.New(1))
	if err != nil || len(segments) == 0 {
		return fmt.Errorf("%w: %v does not descend from (%v)",
			ErrInconsistentInput, t.Event(child), upstream)
	}
	seg := segments[0]
	t.Wrap(child, event.Event{
		Kind:    event.Loss,
		Synteny: upstream.Clone(),
		Segment: seg,
	})
	return resolveLosses(t, upstream.Remove(seg), child)
}
