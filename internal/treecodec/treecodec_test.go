package treecodec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"synrec-core/event"
	"synrec-core/synteny"

	"synrec/internal/nhx"
)

func decode(t *testing.T, text string) *event.Tree {
	t.Helper()
	parsed, err := nhx.Parse(text)
	require.NoError(t, err)
	tree, err := Decode(parsed)
	require.NoError(t, err)
	return tree
}

func TestDecodeKindsAndSyntenies(t *testing.T) {
	tree := decode(t, `("a b",c)"a b c"[&&NHX:event=speciation];`)

	root := tree.Root()
	require.Equal(t, event.Speciation, tree.Event(root).Kind)
	require.Equal(t, synteny.Parse("a b c"), tree.Event(root).Synteny)

	left := tree.Child(root, 0)
	require.Equal(t, event.None, tree.Event(left).Kind)
	require.Equal(t, synteny.Parse("a b"), tree.Event(left).Synteny)
}

func TestDecodeEmptyLeafIsFullLoss(t *testing.T) {
	tree := decode(t, `(,a)"a"[&&NHX:event=duplication];`)
	loss := tree.Child(tree.Root(), 0)
	require.Equal(t, event.Loss, tree.Event(loss).Kind)
	require.Empty(t, tree.Event(loss).Synteny)
}

func TestDecodeSegments(t *testing.T) {
	tree := decode(t, `((b)"c a b"[&&NHX:event=loss:segment="0 - 2"],c)"c a b"[&&NHX:event=duplication:segment="0 - 1"];`)

	root := tree.Root()
	require.Equal(t, synteny.Segment{First: 0, Second: 1}, tree.Event(root).Segment)

	loss := tree.Child(root, 0)
	require.Equal(t, event.Loss, tree.Event(loss).Kind)
	require.Equal(t, synteny.Segment{First: 0, Second: 2}, tree.Event(loss).Segment)
}

func TestDecodeDuplicationDefaultsToWholeSynteny(t *testing.T) {
	tree := decode(t, `(a,"a b")"a b"[&&NHX:event=duplication];`)
	require.Equal(t, synteny.Segment{First: 0, Second: 2}, tree.Event(tree.Root()).Segment)
}

func TestDecodeRejectsUnknownEvent(t *testing.T) {
	parsed, err := nhx.Parse(`(a,b)c[&&NHX:event=transfer];`)
	require.NoError(t, err)
	_, err = Decode(parsed)
	require.ErrorIs(t, err, ErrBadTag)
}

func TestDecodeRejectsMalformedSegment(t *testing.T) {
	parsed, err := nhx.Parse(`(a,b)"a b"[&&NHX:event=duplication:segment="zero"];`)
	require.NoError(t, err)
	_, err = Decode(parsed)
	require.ErrorIs(t, err, ErrBadTag)
}

func TestEncode(t *testing.T) {
	tree := event.New(event.Event{
		Kind:    event.Duplication,
		Synteny: synteny.Parse("a b"),
		Segment: synteny.Segment{First: 0, Second: 1},
	})
	tree.Add(tree.Root(), event.Event{Kind: event.None, Synteny: synteny.Parse("a")})
	tree.Add(tree.Root(), event.Event{Kind: event.Loss})

	out := nhx.Format(Encode(tree))
	require.Equal(t, `(a,[&&NHX:event=loss])"a b"[&&NHX:event=duplication:segment="0 - 1"];`, out)
}

func TestEncodeOmitsSegmentsOnSpeciations(t *testing.T) {
	tree := event.New(event.Event{
		Kind:    event.Speciation,
		Synteny: synteny.Parse("a b"),
		Segment: synteny.Segment{First: 0, Second: 1},
	})
	tree.Add(tree.Root(), event.Event{Kind: event.None, Synteny: synteny.Parse("a b")})
	tree.Add(tree.Root(), event.Event{Kind: event.None, Synteny: synteny.Parse("a b")})

	out := nhx.Format(Encode(tree))
	require.NotContains(t, out, "segment")
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{
		`(("a b",(a)"a b"[&&NHX:event=loss:segment="1 - 2"])"a b"[&&NHX:event=duplication:segment="0 - 2"],[&&NHX:event=loss])"a b"[&&NHX:event=speciation];`,
		`(a,b)"a b"[&&NHX:event=speciation];`,
	}
	for _, input := range inputs {
		tree := decode(t, input)
		require.Equal(t, input, nhx.Format(Encode(tree)), "round trip of %q", input)
	}
}
