// Package synteny models ordered blocks of gene families and the
// segment-based edit operations between a synteny and its subsequences.
package synteny

import (
	"errors"
	"sort"
	"strconv"
	"strings"

	"synrec-core/cost"
)

// ErrNotSubsequence reports that a target synteny cannot be obtained from
// a source synteny by deleting segments.
var ErrNotSubsequence = errors.New("target is not a subsequence of the source synteny")

// Gene identifies a gene family. Equality and lexicographic order are the
// only operations the algorithms rely on.
type Gene string

// Synteny is an ordered sequence of gene families. Order is significant
// and duplicate families are allowed.
type Synteny []Gene

// Segment is a half-open interval [First, Second) of positions within a
// synteny.
type Segment struct {
	First  int
	Second int
}

// NoSegment is the distinguished empty interval meaning "not applicable".
var NoSegment = Segment{}

// Len returns the number of positions covered by the segment.
func (g Segment) Len() int { return g.Second - g.First }

// IsZero reports whether the segment is the NoSegment marker.
func (g Segment) IsZero() bool { return g == NoSegment }

func (g Segment) String() string {
	return "[" + strconv.Itoa(g.First) + ", " + strconv.Itoa(g.Second) + ")"
}

// Parse splits a whitespace-separated list of gene tokens into a synteny.
// An empty or blank input yields an empty synteny.
func Parse(s string) Synteny {
	fields := strings.Fields(s)
	out := make(Synteny, len(fields))
	for i, f := range fields {
		out[i] = Gene(f)
	}
	return out
}

// Dummy generates a synteny of the given length with incrementing
// alphabetic gene families (a, b, ..., z, aa, ab, ...).
func Dummy(length int) Synteny {
	out := make(Synteny, 0, length)
	current := []byte("a")
	for i := 0; i < length; i++ {
		out = append(out, Gene(current))
		j := len(current) - 1
		for j >= 0 && current[j] == 'z' {
			current[j] = 'a'
			j--
		}
		if j < 0 {
			current = append([]byte("a"), current...)
		} else {
			current[j]++
		}
	}
	return out
}

func (s Synteny) String() string {
	var b strings.Builder
	for i, g := range s {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(string(g))
	}
	return b.String()
}

// Clone returns a freshly allocated copy of s.
func (s Synteny) Clone() Synteny {
	out := make(Synteny, len(s))
	copy(out, s)
	return out
}

// Equal reports whether s and o hold the same genes in the same order.
func (s Synteny) Equal(o Synteny) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if s[i] != o[i] {
			return false
		}
	}
	return true
}

// IsEmpty reports whether s holds no genes.
func (s Synteny) IsEmpty() bool { return len(s) == 0 }

// Slice returns a copy of the genes covered by the segment.
func (s Synteny) Slice(g Segment) Synteny {
	out := make(Synteny, g.Len())
	copy(out, s[g.First:g.Second])
	return out
}

// Remove returns a copy of s with the genes covered by the segment
// deleted.
func (s Synteny) Remove(g Segment) Synteny {
	out := make(Synteny, 0, len(s)-g.Len())
	out = append(out, s[:g.First]...)
	out = append(out, s[g.Second:]...)
	return out
}

// Families returns the sorted set of distinct gene families in s.
func (s Synteny) Families() []Gene {
	seen := make(map[Gene]struct{}, len(s))
	out := make([]Gene, 0, len(s))
	for _, g := range s {
		if _, ok := seen[g]; ok {
			continue
		}
		seen[g] = struct{}{}
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Subsequences generates every ordered subsequence of s, including the
// empty one and s itself. The result holds 2^len(s) freshly allocated
// syntenies: for each subsequence of the tail, first the subsequence
// without the head gene, then the same with the head prepended.
func (s Synteny) Subsequences() []Synteny {
	if len(s) == 0 {
		return []Synteny{{}}
	}
	rest := s[1:].Subsequences()
	out := make([]Synteny, 0, 2*len(rest))
	for _, sub := range rest {
		out = append(out, sub)
		with := make(Synteny, 0, len(sub)+1)
		with = append(with, s[0])
		with = append(with, sub...)
		out = append(out, with)
	}
	return out
}

// DistanceTo computes the minimum number of segmental losses required to
// turn s into the target subsequence. With substring set, initial and
// terminal losses are free: the result is then the minimum number of
// losses turning a substring of s into the target.
//
// Fails with ErrNotSubsequence if target cannot be obtained from s.
func (s Synteny) DistanceTo(target Synteny, substring bool) (int, error) {
	segments, err := s.Reconcile(target, substring, cost.PosInf())
	if err != nil {
		return 0, err
	}
	return len(segments), nil
}

// Reconcile walks s and the target subsequence in lock-step and reports
// the segments of s that must be lost to obtain the target, in the
// coordinates of s. At most max segments are reported; scanning stops
// once the bound is reached. With substring set, segments abutting the
// start or end of s are dropped from the count and from the report.
func (s Synteny) Reconcile(target Synteny, substring bool, max cost.Cost) ([]Segment, error) {
	var segments []Segment
	i, j := 0, 0

	// True iff the genes before position i all matched the genes before
	// position j. Initially true so that an initial loss is detected.
	coincides := true
	segStart := 0

	for max.Greater(cost.New(len(segments))) && i < len(s) && j < len(target) {
		if s[i] != target[j] {
			if coincides {
				coincides = false
				segStart = i
			}
			// Advance in the source until the sequences coincide again.
			i++
		} else if coincides {
			i++
			j++
		} else {
			// End of a lost segment: report it unless substring mode
			// makes an initial loss free.
			if !substring || segStart != 0 {
				segments = append(segments, Segment{segStart, i})
			}
			coincides = true
		}
	}

	// The source ran out before the target: not a subsequence.
	if i >= len(s) && j < len(target) {
		return nil, ErrNotSubsequence
	}

	// Trailing tail of the source: one terminal lost segment, free in
	// substring mode.
	if i < len(s) && j >= len(target) {
		if !substring && max.Greater(cost.New(len(segments))) {
			segments = append(segments, Segment{i, len(s)})
		}
	}

	return segments, nil
}

// Difference renders s with the segments lost on the way to target
// enclosed in square brackets, e.g. "1 [ 2 3 ] 4 5 6 [ 7 8 9 ]".
// The visualization uses it for loss labels.
func (s Synteny) Difference(target Synteny) (string, error) {
	if _, err := s.DistanceTo(target, false); err != nil {
		return "", err
	}

	var tokens []string
	j := 0
	open := false
	for _, g := range s {
		if j < len(target) && g == target[j] {
			if open {
				tokens = append(tokens, "]")
				open = false
			}
			j++
		} else if !open {
			tokens = append(tokens, "[")
			open = true
		}
		tokens = append(tokens, string(g))
	}
	if open {
		tokens = append(tokens, "]")
	}
	return strings.Join(tokens, " "), nil
}
