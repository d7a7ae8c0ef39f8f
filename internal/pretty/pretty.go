// Package pretty renders event trees as indented ASCII, one node per
// line, for quick terminal inspection without Graphviz.
package pretty

import (
	"strings"

	"synrec-core/event"
)

// Options control the ASCII rendering.
type Options struct {
	// Branch glyphs. BranchGlyph introduces a child with following
	// siblings, LastGlyph the final child.
	BranchGlyph string
	LastGlyph   string

	// Continuation glyphs drawn in front of deeper levels.
	PipeGlyph  string
	SpaceGlyph string

	// ShowSegments appends the active segment of duplications and
	// losses to the node line.
	ShowSegments bool
}

// DefaultOptions keeps the current look and feel.
var DefaultOptions = Options{
	BranchGlyph:  "├── ",
	LastGlyph:    "└── ",
	PipeGlyph:    "│   ",
	SpaceGlyph:   "    ",
	ShowSegments: true,
}

// Render draws the tree with the default options.
func Render(t *event.Tree) string { return RenderOptions(t, DefaultOptions) }

// RenderOptions draws the tree, one node per line, children indented
// under their parent.
func RenderOptions(t *event.Tree, opts Options) string {
	var b strings.Builder
	b.WriteString(line(t, t.Root(), opts))
	b.WriteByte('\n')
	renderChildren(&b, t, t.Root(), "", opts)
	return b.String()
}

func renderChildren(b *strings.Builder, t *event.Tree, n event.Node, prefix string, opts Options) {
	children := t.Children(n)
	for i, c := range children {
		glyph, next := opts.BranchGlyph, opts.PipeGlyph
		if i == len(children)-1 {
			glyph, next = opts.LastGlyph, opts.SpaceGlyph
		}
		b.WriteString(prefix)
		b.WriteString(glyph)
		b.WriteString(line(t, c, opts))
		b.WriteByte('\n')
		renderChildren(b, t, c, prefix+next, opts)
	}
}

// line renders one node: its kind (leaves stay bare), its synteny, and
// optionally its segment.
func line(t *event.Tree, n event.Node, opts Options) string {
	ev := t.Event(n)

	var parts []string
	switch ev.Kind {
	case event.Duplication:
		parts = append(parts, "duplication:")
	case event.Speciation:
		parts = append(parts, "speciation:")
	case event.Loss:
		parts = append(parts, "loss:")
	}

	if len(ev.Synteny) > 0 {
		parts = append(parts, ev.Synteny.String())
	} else if ev.Kind == event.Loss {
		parts = append(parts, "(all)")
	}

	if opts.ShowSegments && !ev.Segment.IsZero() &&
		(ev.Kind == event.Duplication || ev.Kind == event.Loss) {
		parts = append(parts, ev.Segment.String())
	}

	if len(parts) == 0 {
		return "(unlabeled)"
	}
	return strings.Join(parts, " ")
}
