// Package treecodec translates between the tagged text nodes of the
// NHX boundary format and the event trees the engines operate on.
package treecodec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"synrec-core/event"
	"synrec-core/synteny"

	"synrec/internal/nhx"
)

const (
	eventKey   = "event"
	segmentKey = "segment"
)

// ErrBadTag reports an event or segment tag the codec cannot interpret.
var ErrBadTag = errors.New("invalid tree annotation")

// Decode converts a parsed NHX tree into an event tree. The name of a
// node is its synteny as whitespace-separated gene tokens; the `event`
// tag selects the kind; the `segment` tag `"u - v"` is the half-open
// interval [u, v). An untagged leaf with an empty name is a full loss.
// A duplication without a segment tag covers its whole synteny.
func Decode(root *nhx.Node) (*event.Tree, error) {
	rootEvent, err := toEvent(&root.TaggedNode, len(root.Children) == 0)
	if err != nil {
		return nil, err
	}
	t := event.New(rootEvent)

	var graft func(parent event.Node, n *nhx.Node) error
	graft = func(parent event.Node, n *nhx.Node) error {
		ev, err := toEvent(&n.TaggedNode, len(n.Children) == 0)
		if err != nil {
			return err
		}
		id := t.Add(parent, ev)
		for _, c := range n.Children {
			if err := graft(id, c); err != nil {
				return err
			}
		}
		return nil
	}
	for _, c := range root.Children {
		if err := graft(t.Root(), c); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Encode converts an event tree back into tagged text nodes. The
// segment is emitted only for duplications and losses carrying a
// non-empty synteny.
func Encode(t *event.Tree) *nhx.Node {
	var walk func(n event.Node) *nhx.Node
	walk = func(n event.Node) *nhx.Node {
		out := &nhx.Node{TaggedNode: fromEvent(*t.Event(n))}
		for _, c := range t.Children(n) {
			out.Children = append(out.Children, walk(c))
		}
		return out
	}
	return walk(t.Root())
}

func toEvent(n *nhx.TaggedNode, leaf bool) (event.Event, error) {
	var ev event.Event

	if value, ok := n.Tag(eventKey); ok {
		switch value {
		case "duplication":
			ev.Kind = event.Duplication
		case "speciation":
			ev.Kind = event.Speciation
		case "loss":
			ev.Kind = event.Loss
		default:
			return ev, fmt.Errorf("%w: unknown event kind %q", ErrBadTag, value)
		}
	}

	ev.Synteny = synteny.Parse(n.Name)

	// An empty untagged leaf is a full loss.
	if leaf && ev.Kind == event.None && ev.Synteny.IsEmpty() {
		ev.Kind = event.Loss
	}

	segmentApplies := ev.Kind == event.Duplication ||
		(ev.Kind == event.Loss && !ev.Synteny.IsEmpty())
	if value, ok := n.Tag(segmentKey); ok && segmentApplies {
		seg, err := parseSegment(value)
		if err != nil {
			return ev, err
		}
		ev.Segment = seg
	}

	// A duplication with no declared segment duplicates everything.
	if ev.Kind == event.Duplication && ev.Segment.IsZero() {
		ev.Segment = synteny.Segment{First: 0, Second: len(ev.Synteny)}
	}

	return ev, nil
}

func fromEvent(ev event.Event) nhx.TaggedNode {
	var out nhx.TaggedNode

	switch ev.Kind {
	case event.Duplication:
		out.SetTag(eventKey, "duplication")
	case event.Speciation:
		out.SetTag(eventKey, "speciation")
	case event.Loss:
		out.SetTag(eventKey, "loss")
	}

	if !ev.Synteny.IsEmpty() {
		out.Name = ev.Synteny.String()
	}

	if (ev.Kind == event.Duplication || ev.Kind == event.Loss) &&
		!ev.Segment.IsZero() && !ev.Synteny.IsEmpty() {
		out.SetTag(segmentKey, formatSegment(ev.Segment))
	}

	return out
}

// parseSegment reads the `"u - v"` form of a segment tag as the
// half-open interval [u, v).
func parseSegment(value string) (synteny.Segment, error) {
	parts := strings.SplitN(value, "-", 2)
	if len(parts) != 2 {
		return synteny.NoSegment, fmt.Errorf("%w: malformed segment %q", ErrBadTag, value)
	}
	first, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return synteny.NoSegment, fmt.Errorf("%w: malformed segment %q", ErrBadTag, value)
	}
	second, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return synteny.NoSegment, fmt.Errorf("%w: malformed segment %q", ErrBadTag, value)
	}
	return synteny.Segment{First: first, Second: second}, nil
}

func formatSegment(seg synteny.Segment) string {
	return strconv.Itoa(seg.First) + " - " + strconv.Itoa(seg.Second)
}
