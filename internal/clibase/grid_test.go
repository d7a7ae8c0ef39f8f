package clibase

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIntGridSingle(t *testing.T) {
	g := Ints(5)
	require.NoError(t, g.Set("7"))
	require.Equal(t, []int{7}, g.Values)
	require.Equal(t, "7", g.String())
}

func TestIntGridSet(t *testing.T) {
	var g IntGrid
	require.NoError(t, g.Set("{1, 2, 3}"))
	require.Equal(t, []int{1, 2, 3}, g.Values)
	require.Equal(t, "{1, 2, 3}", g.String())
}

func TestIntGridRange(t *testing.T) {
	var g IntGrid
	require.NoError(t, g.Set("[1:10:3]"))
	require.Equal(t, []int{1, 4, 7, 10}, g.Values)

	require.NoError(t, g.Set("[3:5]"))
	require.Equal(t, []int{3, 4, 5}, g.Values)
}

func TestFloatGrid(t *testing.T) {
	var g FloatGrid
	require.NoError(t, g.Set("0.25"))
	require.Equal(t, []float64{0.25}, g.Values)

	require.NoError(t, g.Set("{0.1, 0.9}"))
	require.Equal(t, []float64{0.1, 0.9}, g.Values)

	require.NoError(t, g.Set("[0:1:0.5]"))
	require.Equal(t, []float64{0, 0.5, 1}, g.Values)
}

func TestGridErrors(t *testing.T) {
	var g IntGrid
	require.Error(t, g.Set("abc"))
	require.Error(t, g.Set("{}"))
	require.Error(t, g.Set("{1, x}"))
	require.Error(t, g.Set("[1:10:0]"))
	require.Error(t, g.Set("[1:2:3:4]"))

	var f FloatGrid
	require.Error(t, f.Set("[0.5:0.1]"))
}
