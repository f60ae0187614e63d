// Copyright 2018 Bull S.A.S. Atos Technologies - Bull, Rue Jean Jaures, B.P.68, 78340, Les Clayes-sous-Bois, France.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package sweep drives the external genome assembler over a k-mer size and
// missing-percentage parameter grid.
package sweep

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"
	"time"

	multierror "github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/KaylBing/Varied-Kmer-Assembly-and-Analysis/helper/executil"
	"github.com/KaylBing/Varied-Kmer-Assembly-and-Analysis/log"
)

const separator = "----------------------------------------"

// Range is an inclusive integer range walked in ascending order with a fixed step
type Range struct {
	Start int
	End   int
	Step  int
}

func (r Range) validate() error {
	if r.Step < 1 {
		return errors.Errorf("invalid range step %d: must be at least 1", r.Step)
	}
	if r.Start > r.End {
		return errors.Errorf("invalid range bounds [%d,%d]: start must not exceed end", r.Start, r.End)
	}
	return nil
}

// values returns the range values in ascending order, both bounds included
func (r Range) values() []int {
	vals := make([]int, 0, (r.End-r.Start)/r.Step+1)
	for v := r.Start; v <= r.End; v += r.Step {
		vals = append(vals, v)
	}
	return vals
}

// Params is one assembler invocation of the grid
type Params struct {
	K       int
	Missing int
}

// Plan enumerates the Cartesian product of the two ranges in row-major order:
// k-mer sizes outer, missing percentages inner, both ascending.
//
// Enumeration is a pure function of the range values so two calls with the
// same ranges yield identical sequences.
func Plan(kRange, missingRange Range) ([]Params, error) {
	if err := kRange.validate(); err != nil {
		return nil, errors.Wrap(err, "invalid k-mer range")
	}
	if err := missingRange.validate(); err != nil {
		return nil, errors.Wrap(err, "invalid missing percentage range")
	}
	missingValues := missingRange.values()
	plan := make([]Params, 0, len(kRange.values())*len(missingValues))
	for _, k := range kRange.values() {
		for _, missing := range missingValues {
			plan = append(plan, Params{K: k, Missing: missing})
		}
	}
	return plan, nil
}

// Runner launches one assembler process and blocks until it terminates
type Runner interface {
	Run(ctx context.Context, dataFile string, k, missing int) error
}

// AssemblerRunner runs the external Python assembler with the (data file,
// k-mer size, missing percentage) positional arguments it expects
type AssemblerRunner struct {
	PythonBin string
	Script    string
	Stdout    io.Writer
	Stderr    io.Writer
}

// Run launches the assembler once. The whole process tree is killed if the
// context becomes done before the assembler terminates.
func (r *AssemblerRunner) Run(ctx context.Context, dataFile string, k, missing int) error {
	cmd := executil.Command(ctx, r.PythonBin, r.Script, dataFile, strconv.Itoa(k), strconv.Itoa(missing))
	cmd.Stdout = r.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = r.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}
	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "assembler failed for k=%d and missing=%d", k, missing)
	}
	return nil
}

// Sweep invokes the assembler once per parameter combination.
//
// With a single worker combinations run strictly sequentially in plan order.
// With more workers they are distributed to a fixed pool and ordering is not
// guaranteed. In both modes a failing invocation does not stop the sweep: the
// error is recorded and the remaining combinations still run. All recorded
// errors are returned aggregated once the sweep is over.
type Sweep struct {
	Runner       Runner
	DataFile     string
	KRange       Range
	MissingRange Range
	Workers      int
	Out          io.Writer
}

// Run walks the parameter grid until completion or context cancellation
func (s *Sweep) Run(ctx context.Context) error {
	plan, err := Plan(s.KRange, s.MissingRange)
	if err != nil {
		return err
	}
	out := s.Out
	if out == nil {
		out = os.Stdout
	}
	if s.Workers > 1 {
		return s.runParallel(ctx, out, plan)
	}
	return s.runSequential(ctx, out, plan)
}

func (s *Sweep) runSequential(ctx context.Context, out io.Writer, plan []Params) error {
	var merr *multierror.Error
	for _, p := range plan {
		if ctx.Err() != nil {
			merr = multierror.Append(merr, ctx.Err())
			return merr.ErrorOrNil()
		}
		fmt.Fprintf(out, "Running assembler with k=%d and missing=%d%%\n", p.K, p.Missing)
		if err := s.Runner.Run(ctx, s.DataFile, p.K, p.Missing); err != nil {
			log.Printf("assembly failed for k=%d and missing=%d%%: %v", p.K, p.Missing, err)
			merr = multierror.Append(merr, err)
		}
		fmt.Fprintf(out, "Completed assembler with k=%d and missing=%d%%\n", p.K, p.Missing)
		fmt.Fprintln(out, separator)
	}
	return merr.ErrorOrNil()
}

func (s *Sweep) runParallel(ctx context.Context, out io.Writer, plan []Params) error {
	var (
		mu   sync.Mutex
		merr *multierror.Error
	)
	// The pool workers share the progress writer
	printf := func(format string, a ...interface{}) {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintf(out, format, a...)
	}
	start := time.Now()
	combinations := make(chan Params)

	g, gCtx := errgroup.WithContext(ctx)
	for i := 0; i < s.Workers; i++ {
		g.Go(func() error {
			for p := range combinations {
				printf("Running assembly with k=%d and missing k-mer percentage=%d...\n", p.K, p.Missing)
				if err := s.Runner.Run(gCtx, s.DataFile, p.K, p.Missing); err != nil {
					printf("Error occurred for k=%d and missing k-mer percentage=%d: %v\n", p.K, p.Missing, err)
					mu.Lock()
					merr = multierror.Append(merr, err)
					mu.Unlock()
					continue
				}
				printf("Finished assembly with k=%d and missing k-mer percentage=%d.\n", p.K, p.Missing)
			}
			return nil
		})
	}

	g.Go(func() error {
		defer close(combinations)
		for _, p := range plan {
			select {
			case combinations <- p:
			case <-gCtx.Done():
				return gCtx.Err()
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		merr = multierror.Append(merr, err)
	}
	fmt.Fprintf(out, "All assemblies completed in %.2f seconds.\n", time.Since(start).Seconds())
	return merr.ErrorOrNil()
}
