// Package viz renders event trees as Graphviz graphs: duplications are
// boxes, speciations ovals, leaves plain labels and losses red. The
// active segment of a node is underlined for duplications and bracketed
// for losses.
package viz

import (
	"strconv"
	"strings"

	"synrec-core/event"
)

// Dot renders t in the Graphviz DOT language. Node identifiers are the
// arena handles, so the output is stable for a given tree.
func Dot(t *event.Tree) string {
	var b strings.Builder
	b.WriteString("graph {\n")

	order := t.Preorder()
	for _, n := range order {
		b.WriteString("    ")
		b.WriteString(strconv.Itoa(int(n)))
		b.WriteString(" [")
		b.WriteString(nodeAttrs(*t.Event(n)))
		b.WriteString("];\n")
	}
	for _, n := range order {
		for _, c := range t.Children(n) {
			b.WriteString("    ")
			b.WriteString(strconv.Itoa(int(n)))
			b.WriteString(" -- ")
			b.WriteString(strconv.Itoa(int(c)))
			b.WriteString(";\n")
		}
	}

	b.WriteString("}\n")
	return b.String()
}

func nodeAttrs(ev event.Event) string {
	var b strings.Builder

	switch ev.Kind {
	case event.Loss:
		b.WriteString(`fontcolor="red", shape="none", `)
	case event.None:
		b.WriteString(`shape="none", `)
	case event.Duplication:
		b.WriteString(`shape="box", `)
	case event.Speciation:
		b.WriteString(`shape="oval", `)
	}

	b.WriteString("label=<")
	b.WriteString(label(ev))
	b.WriteString(">")
	return b.String()
}

// label renders the synteny with the event's segment highlighted:
// underlined for duplications, bracketed for losses.
func label(ev event.Event) string {
	highlight := !ev.Segment.IsZero() &&
		(ev.Kind == event.Duplication || ev.Kind == event.Loss)

	// The bracketed loss form is exactly the difference rendering
	// between the synteny and what survives the loss.
	if ev.Kind == event.Loss && highlight {
		if diff, err := ev.Synteny.Difference(ev.Synteny.Remove(ev.Segment)); err == nil {
			return htmlEscape(diff)
		}
	}

	var parts []string
	for i, g := range ev.Synteny {
		token := htmlEscape(string(g))
		if highlight && i == ev.Segment.First {
			token = "<u>" + token
		}
		if highlight && i == ev.Segment.Second-1 {
			token = token + "</u>"
		}
		parts = append(parts, token)
	}
	return strings.Join(parts, " ")
}

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func htmlEscape(s string) string { return htmlEscaper.Replace(s) }
