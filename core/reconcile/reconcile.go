// Package reconcile implements the two super-reconciliation engines:
// the ordered dynamic program over subsequences of a known ancestral
// synteny, and the unordered three-pass labeling over gene-family sets.
// Both assign syntenies to internal nodes and reify segmental losses as
// explicit loss nodes so as to minimize the duplication-loss score.
package reconcile

import "errors"

// ErrMalformedTree reports an input tree the engines cannot process: a
// unary internal node, or an internal node carrying a leaf-only event.
var ErrMalformedTree = errors.New("malformed event tree")

// ErrInconsistentInput reports that no assignment of internal syntenies
// can reconcile the observed leaves with the given ancestral synteny.
var ErrInconsistentInput = errors.New("leaf syntenies are inconsistent with the ancestral synteny")
