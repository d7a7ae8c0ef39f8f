package clibase

import (
	"fmt"
	"strconv"
	"strings"
)

// The evaluation harness accepts simulation parameters as a single
// value, an explicit set `{a, b, c}`, or an arithmetic range
// `[min:max]` / `[min:max:step]` with inclusive bounds.

// IntGrid is a flag.Value holding one or more integers.
type IntGrid struct{ Values []int }

// Ints returns an IntGrid preloaded with a single default value.
func Ints(value int) IntGrid { return IntGrid{Values: []int{value}} }

func (g *IntGrid) String() string { return formatGrid(g.Values) }

func (g *IntGrid) Set(s string) error {
	values, err := parseGrid(s, func(tok string) (int, error) {
		return strconv.Atoi(tok)
	}, func(min, max, step int) []int {
		if step <= 0 {
			return nil
		}
		var out []int
		for v := min; v <= max; v += step {
			out = append(out, v)
		}
		return out
	}, 1)
	if err != nil {
		return err
	}
	g.Values = values
	return nil
}

// FloatGrid is a flag.Value holding one or more floating-point values.
type FloatGrid struct{ Values []float64 }

// Floats returns a FloatGrid preloaded with a single default value.
func Floats(value float64) FloatGrid { return FloatGrid{Values: []float64{value}} }

func (g *FloatGrid) String() string { return formatGrid(g.Values) }

func (g *FloatGrid) Set(s string) error {
	values, err := parseGrid(s, func(tok string) (float64, error) {
		return strconv.ParseFloat(tok, 64)
	}, func(min, max, step float64) []float64 {
		if step <= 0 {
			return nil
		}
		var out []float64
		// A small tolerance keeps the inclusive upper bound reachable
		// despite accumulation error.
		for v := min; v <= max+step/1e9; v += step {
			out = append(out, v)
		}
		return out
	}, 1)
	if err != nil {
		return err
	}
	g.Values = values
	return nil
}

func formatGrid[T any](values []T) string {
	if len(values) == 1 {
		return fmt.Sprint(values[0])
	}
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func parseGrid[T any](
	s string,
	atom func(string) (T, error),
	expand func(min, max, step T) []T,
	defaultStep T,
) ([]T, error) {
	s = strings.TrimSpace(s)

	switch {
	case strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}"):
		var out []T
		for _, tok := range strings.Split(s[1:len(s)-1], ",") {
			v, err := atom(strings.TrimSpace(tok))
			if err != nil {
				return nil, fmt.Errorf("invalid set element %q", tok)
			}
			out = append(out, v)
		}
		if len(out) == 0 {
			return nil, fmt.Errorf("empty value set %q", s)
		}
		return out, nil

	case strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]"):
		parts := strings.Split(s[1:len(s)-1], ":")
		if len(parts) != 2 && len(parts) != 3 {
			return nil, fmt.Errorf("invalid range %q, want [min:max] or [min:max:step]", s)
		}
		min, err := atom(strings.TrimSpace(parts[0]))
		if err != nil {
			return nil, fmt.Errorf("invalid range minimum %q", parts[0])
		}
		max, err := atom(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, fmt.Errorf("invalid range maximum %q", parts[1])
		}
		step := defaultStep
		if len(parts) == 3 {
			step, err = atom(strings.TrimSpace(parts[2]))
			if err != nil {
				return nil, fmt.Errorf("invalid range step %q", parts[2])
			}
		}
		out := expand(min, max, step)
		if len(out) == 0 {
			return nil, fmt.Errorf("empty range %q", s)
		}
		return out, nil

	default:
		v, err := atom(s)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q", s)
		}
		return []T{v}, nil
	}
}
