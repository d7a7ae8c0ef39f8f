package synteny

import (
	"testing"

	"github.com/stretchr/testify/require"

	"synrec-core/cost"
)

func TestParseAndString(t *testing.T) {
	require.Equal(t, Synteny{"a", "b", "c"}, Parse("a b  c"))
	require.Equal(t, Synteny{}, Parse("   "))
	require.Equal(t, "x x' x''", Synteny{"x", "x'", "x''"}.String())
	require.Equal(t, "", Synteny{}.String())
}

func TestDummy(t *testing.T) {
	require.Equal(t, Synteny{"a", "b", "c", "d", "e"}, Dummy(5))
	require.Empty(t, Dummy(0))

	// The 27th family carries into two letters.
	long := Dummy(28)
	require.Equal(t, Gene("z"), long[25])
	require.Equal(t, Gene("aa"), long[26])
	require.Equal(t, Gene("ab"), long[27])
}

func TestSubsequences(t *testing.T) {
	require.Equal(t, []Synteny{{}}, Synteny{}.Subsequences())

	asSet := func(subs []Synteny) map[string]int {
		out := make(map[string]int)
		for _, s := range subs {
			out[s.String()]++
		}
		return out
	}

	require.Equal(t, map[string]int{"": 1, "x": 1}, asSet(Synteny{"x"}.Subsequences()))

	subs := Synteny{"a", "b", "c"}.Subsequences()
	require.Len(t, subs, 8)
	require.Equal(t, map[string]int{
		"": 1, "a": 1, "b": 1, "c": 1,
		"a b": 1, "a c": 1, "b c": 1, "a b c": 1,
	}, asSet(subs))

	// 2^n distinct subsequences for distinct genes.
	require.Len(t, Dummy(10).Subsequences(), 1024)
}

func TestDistanceTo(t *testing.T) {
	s0 := Parse("1 2 3 4 5 6 7 8 9")
	s1 := Parse("1 4 5 6")
	s2 := Parse("4 5")
	s3 := Parse("2 4 8")

	for _, tc := range []struct {
		source, target Synteny
		substring      bool
		want           int
	}{
		{s0, s1, false, 2},
		{s0, s1, true, 1},
		{s0, s2, false, 2},
		{s0, s2, true, 0},
		{s0, s3, false, 4},
		{s0, s3, true, 2},
		{s1, s2, false, 2},
		{s1, s2, true, 0},
		{s0, s0, false, 0},
		{s0, Synteny{}, false, 1},
		{s0, Synteny{}, true, 0},
	} {
		got, err := tc.source.DistanceTo(tc.target, tc.substring)
		require.NoError(t, err)
		require.Equal(t, tc.want, got,
			"distance %q -> %q substring=%v", tc.source, tc.target, tc.substring)
	}

	_, err := s3.DistanceTo(s0, false)
	require.ErrorIs(t, err, ErrNotSubsequence)
}

func TestReconcileSegments(t *testing.T) {
	source := Parse("a b c d")

	segments, err := source.Reconcile(Parse("a d"), false, cost.PosInf())
	require.NoError(t, err)
	require.Equal(t, []Segment{{First: 1, Second: 3}}, segments)

	segments, err = source.Reconcile(Parse("a c"), false, cost.New(1))
	require.NoError(t, err)
	require.Equal(t, []Segment{{First: 1, Second: 2}}, segments)

	// Unbounded: every lost segment, in source coordinates.
	segments, err = Parse("1 2 3 4 5 6 7 8 9").Reconcile(Parse("1 4 5 6"), false, cost.PosInf())
	require.NoError(t, err)
	require.Equal(t, []Segment{{First: 1, Second: 3}, {First: 6, Second: 9}}, segments)

	// Substring mode drops the terminal segment from the report.
	segments, err = Parse("1 2 3 4 5 6 7 8 9").Reconcile(Parse("1 4 5 6"), true, cost.PosInf())
	require.NoError(t, err)
	require.Equal(t, []Segment{{First: 1, Second: 3}}, segments)

	_, err = Parse("a b").Reconcile(Parse("b a"), false, cost.PosInf())
	require.ErrorIs(t, err, ErrNotSubsequence)
}

// The reported segment count always agrees with the distance under the
// same substring flag.
func TestReconcileAgreesWithDistance(t *testing.T) {
	source := Parse("1 2 3 4 5 6 7 8 9")
	for _, target := range []Synteny{
		Parse("1 4 5 6"), Parse("4 5"), Parse("2 4 8"), source, {},
	} {
		for _, substring := range []bool{false, true} {
			distance, err := source.DistanceTo(target, substring)
			require.NoError(t, err)
			segments, err := source.Reconcile(target, substring, cost.PosInf())
			require.NoError(t, err)
			require.Len(t, segments, distance)
		}
	}
}

func TestSliceRemove(t *testing.T) {
	s := Parse("a b c d e")
	require.Equal(t, Parse("b c"), s.Slice(Segment{First: 1, Second: 3}))
	require.Equal(t, Parse("a d e"), s.Remove(Segment{First: 1, Second: 3}))
	require.Equal(t, Parse("a b c d e"), s, "source must stay untouched")
}

func TestFamilies(t *testing.T) {
	require.Equal(t, []Gene{"a", "b", "c"}, Parse("c a b a c").Families())
	require.Empty(t, Synteny{}.Families())
}

func TestDifference(t *testing.T) {
	s0 := Parse("1 2 3 4 5 6 7 8 9")

	for _, tc := range []struct {
		target Synteny
		want   string
	}{
		{Parse("1 4 5 6"), "1 [ 2 3 ] 4 5 6 [ 7 8 9 ]"},
		{Parse("4 5"), "[ 1 2 3 ] 4 5 [ 6 7 8 9 ]"},
		{Parse("2 4 8"), "[ 1 ] 2 [ 3 ] 4 [ 5 6 7 ] 8 [ 9 ]"},
		{Parse("1 2 3 8 9"), "1 2 3 [ 4 5 6 7 ] 8 9"},
	} {
		got, err := s0.Difference(tc.target)
		require.NoError(t, err)
		require.Equal(t, tc.want, got)
	}

	_, err := Parse("2 4 8").Difference(s0)
	require.ErrorIs(t, err, ErrNotSubsequence)
}

func TestEqualClone(t *testing.T) {
	s := Parse("a b a")
	c := s.Clone()
	require.True(t, s.Equal(c))
	c[0] = "z"
	require.False(t, s.Equal(c))
	require.False(t, s.Equal(Parse("a b")))
}
