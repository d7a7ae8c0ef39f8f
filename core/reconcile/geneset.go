package reconcile

import "synrec-core/synteny"

// geneSet is a sorted set of gene families. Keeping the elements sorted
// makes union, intersection and difference linear merges without
// hashing, and gives every set a single canonical ordering for the
// synteny concatenations of the unordered engine.
type geneSet []synteny.Gene

func newGeneSet(s synteny.Synteny) geneSet {
	return geneSet(s.Families())
}

func (a geneSet) equal(b geneSet) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (a geneSet) union(b geneSet) geneSet {
	out := make(geneSet, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		case a[i] > b[j]:
			out = append(out, b[j])
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}

func (a geneSet) intersect(b geneSet) geneSet {
	var out geneSet
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	return out
}

func (a geneSet) subtract(b geneSet) geneSet {
	var out geneSet
	i, j := 0, 0
	for i < len(a) {
		switch {
		case j >= len(b) || a[i] < b[j]:
			out = append(out, a[i])
			i++
		case a[i] > b[j]:
			j++
		default:
			i++
			j++
		}
	}
	return out
}

// concat builds a synteny from set pieces laid out one after another.
func concat(pieces ...geneSet) synteny.Synteny {
	size := 0
	for _, p := range pieces {
		size += len(p)
	}
	out := make(synteny.Synteny, 0, size)
	for _, p := range pieces {
		out = append(out, p...)
	}
	return out
}
