// Package simapp wires the synrec-simulate executable: evolve an
// ancestral synteny under the requested parameters and emit the
// resulting reference tree.
package simapp

import (
	"context"
	cryptorand "crypto/rand"
	"encoding/binary"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand"

	"synrec-core/simulate"
	"synrec-core/synteny"

	"synrec/internal/appcore"
	"synrec/internal/simcli"
)

// RunContext runs the tool and returns its exit code.
func RunContext(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	opts, err := simcli.Parse(argv, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		return 2
	}

	seed := opts.Seed
	if seed == 0 {
		seed = entropySeed()
	}
	fmt.Fprintf(stderr, "Seed: %d\n", seed)

	params := simulate.Params{
		Base:        synteny.Dummy(opts.BaseSize),
		Depth:       opts.Depth,
		PDup:        opts.PDup,
		PDupLength:  opts.PDupLength,
		PLoss:       opts.PLoss,
		PLossLength: opts.PLossLength,
		PRearr:      opts.PRearr,
	}

	rng := rand.New(rand.NewSource(seed))
	t := simulate.Evolve(rng, params)

	if err := appcore.StoreTree(opts.Output, t); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

// Run is RunContext with a background context.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func entropySeed() int64 {
	var buf [8]byte
	if _, err := cryptorand.Read(buf[:]); err != nil {
		return 1
	}
	seed := int64(binary.LittleEndian.Uint64(buf[:]))
	if seed == 0 {
		seed = 1
	}
	return seed
}
