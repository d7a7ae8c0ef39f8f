package nhx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLeaf(t *testing.T) {
	root, err := Parse("a;")
	require.NoError(t, err)
	require.Equal(t, "a", root.Name)
	require.Empty(t, root.Children)
	require.Zero(t, root.Length)
}

func TestParseChildren(t *testing.T) {
	root, err := Parse("(a,b,c)root;")
	require.NoError(t, err)
	require.Equal(t, "root", root.Name)
	require.Len(t, root.Children, 3)
	require.Equal(t, "b", root.Children[1].Name)
}

func TestParseLengthsAndTags(t *testing.T) {
	root, err := Parse(`(a:1.5,b)"x y":2[&&NHX:event=duplication:segment="0 - 2"];`)
	require.NoError(t, err)
	require.Equal(t, "x y", root.Name)
	require.Equal(t, 2.0, root.Length)
	require.Equal(t, []Tag{
		{Key: "event", Value: "duplication"},
		{Key: "segment", Value: "0 - 2"},
	}, root.Tags)
	require.Equal(t, 1.5, root.Children[0].Length)

	value, ok := root.Tag("event")
	require.True(t, ok)
	require.Equal(t, "duplication", value)
	_, ok = root.Tag("missing")
	require.False(t, ok)
}

func TestParseQuotedIdentifiers(t *testing.T) {
	root, err := Parse(`"a b ""c"" d";`)
	require.NoError(t, err)
	require.Equal(t, `a b "c" d`, root.Name)
}

func TestParseSkipsComments(t *testing.T) {
	root, err := Parse(`(
		a, [this comment is ignored]
		b
	)[&&NHX:event=speciation];`)
	require.NoError(t, err)
	require.Len(t, root.Children, 2)
	value, ok := root.Tag("event")
	require.True(t, ok)
	require.Equal(t, "speciation", value)
}

func TestParseAnonymousNodes(t *testing.T) {
	root, err := Parse("((,),);")
	require.NoError(t, err)
	require.Len(t, root.Children, 2)
	require.Len(t, root.Children[0].Children, 2)
	require.Empty(t, root.Children[0].Children[0].Name)
}

func TestParseErrors(t *testing.T) {
	for _, input := range []string{
		"",
		"(a,b)",       // missing semicolon
		"(a,b;",       // unclosed children
		"(a b);",      // missing separator between siblings
		"a; trailing", // garbage after the tree
		"a[&&NHX];",   // empty tag list
		"a[&&NHX:x];", // tag without value
		"(a,b)x:abc;", // malformed length
	} {
		_, err := Parse(input)
		require.Error(t, err, "input %q", input)
		if input == "" {
			continue
		}
		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr, "input %q", input)
	}
}

func TestParseErrorCarriesOffset(t *testing.T) {
	_, err := Parse("(a,b")
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, 4, parseErr.Offset)
}

func TestFormatRoundTrip(t *testing.T) {
	for _, input := range []string{
		"(a,b)root;",
		`("x y",(c,d))"a b"[&&NHX:event=duplication:segment="0 - 2"];`,
		"((,),);",
		"(a:1.5,b:2)r:3;",
	} {
		root, err := Parse(input)
		require.NoError(t, err)
		back, err := Parse(Format(root))
		require.NoError(t, err)
		require.Equal(t, root, back, "round trip of %q", input)
	}
}

func TestFormatEscapes(t *testing.T) {
	node := &Node{}
	node.Name = `gene one "quoted"`
	out := Format(node)
	require.Equal(t, `"gene one ""quoted""";`, out)

	back, err := Parse(out)
	require.NoError(t, err)
	require.Equal(t, node.Name, back.Name)
}
