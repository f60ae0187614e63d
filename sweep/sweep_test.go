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

package sweep

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaylBing/Varied-Kmer-Assembly-and-Analysis/config"
)

type invocation struct {
	dataFile string
	k        int
	missing  int
}

// stubRunner records the invocations it receives instead of launching processes
type stubRunner struct {
	mu          sync.Mutex
	invocations []invocation
	failOn      map[invocation]error
}

func (r *stubRunner) Run(ctx context.Context, dataFile string, k, missing int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv := invocation{dataFile: dataFile, k: k, missing: missing}
	r.invocations = append(r.invocations, inv)
	if err, ok := r.failOn[inv]; ok {
		return err
	}
	return nil
}

func defaultRanges() (Range, Range) {
	kRange := Range{Start: config.DefaultKmerStart, End: config.DefaultKmerEnd, Step: config.DefaultSweepStep}
	missingRange := Range{Start: config.DefaultMissingStart, End: config.DefaultMissingEnd, Step: config.DefaultSweepStep}
	return kRange, missingRange
}

func TestPlanEnumeratesRowMajorCartesianProduct(t *testing.T) {
	t.Parallel()
	kRange, missingRange := defaultRanges()
	plan, err := Plan(kRange, missingRange)
	require.Nil(t, err, "unexpected error building plan")
	require.Len(t, plan, 528, "expected 48 k-mer values x 11 missing percentages")

	assert.Equal(t, Params{K: 3, Missing: 0}, plan[0])
	assert.Equal(t, Params{K: 3, Missing: 1}, plan[1])
	assert.Equal(t, Params{K: 3, Missing: 2}, plan[2])
	assert.Equal(t, Params{K: 50, Missing: 10}, plan[len(plan)-1])

	// row-major: k changes only after all missing values have been walked
	assert.Equal(t, Params{K: 4, Missing: 0}, plan[11])
}

func TestSweepRunLeavesReceiverUntouched(t *testing.T) {
	t.Parallel()
	runner := &stubRunner{}
	s := &Sweep{
		Runner:       runner,
		DataFile:     "data/covid_genome.txt",
		KRange:       Range{Start: 3, End: 3, Step: 1},
		MissingRange: Range{Start: 0, End: 0, Step: 1},
	}
	err := s.Run(context.Background())
	require.Nil(t, err, "unexpected error running sweep")
	require.Nil(t, s.Out, "running a sweep must not write a default writer back into the struct")
	require.Len(t, runner.invocations, 1, "unexpected invocation count")
}

func TestPlanIsIdempotent(t *testing.T) {
	t.Parallel()
	kRange, missingRange := defaultRanges()
	first, err := Plan(kRange, missingRange)
	require.Nil(t, err, "unexpected error building plan")
	second, err := Plan(kRange, missingRange)
	require.Nil(t, err, "unexpected error building plan")
	require.Equal(t, first, second, "two enumerations of the same ranges must be identical")
}

func TestPlanWithSteps(t *testing.T) {
	t.Parallel()
	plan, err := Plan(Range{Start: 3, End: 10, Step: 2}, Range{Start: 0, End: 30, Step: 10})
	require.Nil(t, err, "unexpected error building plan")
	expected := []Params{
		{3, 0}, {3, 10}, {3, 20}, {3, 30},
		{5, 0}, {5, 10}, {5, 20}, {5, 30},
		{7, 0}, {7, 10}, {7, 20}, {7, 30},
		{9, 0}, {9, 10}, {9, 20}, {9, 30},
	}
	require.Equal(t, expected, plan)
}

func TestPlanValidation(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name         string
		kRange       Range
		missingRange Range
	}{
		{"TestZeroKStep", Range{3, 50, 0}, Range{0, 10, 1}},
		{"TestNegativeMissingStep", Range{3, 50, 1}, Range{0, 10, -1}},
		{"TestReversedKBounds", Range{50, 3, 1}, Range{0, 10, 1}},
		{"TestReversedMissingBounds", Range{3, 50, 1}, Range{10, 0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Plan(tt.kRange, tt.missingRange)
			assert.Error(t, err, "expected a range validation error")
		})
	}
}

func TestSweepSequentialInvocations(t *testing.T) {
	t.Parallel()
	kRange, missingRange := defaultRanges()
	runner := &stubRunner{}
	var out bytes.Buffer
	s := &Sweep{
		Runner:       runner,
		DataFile:     config.DefaultDataFile,
		KRange:       kRange,
		MissingRange: missingRange,
		Workers:      1,
		Out:          &out,
	}
	err := s.Run(context.Background())
	require.Nil(t, err, "unexpected error running sweep")
	require.Len(t, runner.invocations, 528, "expected 528 assembler invocations")

	assert.Equal(t, invocation{"data/covid_genome.txt", 3, 0}, runner.invocations[0])
	assert.Equal(t, invocation{"data/covid_genome.txt", 3, 1}, runner.invocations[1])
	assert.Equal(t, invocation{"data/covid_genome.txt", 3, 2}, runner.invocations[2])
	assert.Equal(t, invocation{"data/covid_genome.txt", 50, 10}, runner.invocations[len(runner.invocations)-1])
}

func TestSweepSequentialMarkers(t *testing.T) {
	t.Parallel()
	runner := &stubRunner{}
	var out bytes.Buffer
	s := &Sweep{
		Runner:       runner,
		DataFile:     "genome.txt",
		KRange:       Range{Start: 3, End: 4, Step: 1},
		MissingRange: Range{Start: 0, End: 1, Step: 1},
		Workers:      1,
		Out:          &out,
	}
	err := s.Run(context.Background())
	require.Nil(t, err, "unexpected error running sweep")

	expected := "Running assembler with k=3 and missing=0%\n" +
		"Completed assembler with k=3 and missing=0%\n" +
		"----------------------------------------\n" +
		"Running assembler with k=3 and missing=1%\n" +
		"Completed assembler with k=3 and missing=1%\n" +
		"----------------------------------------\n" +
		"Running assembler with k=4 and missing=0%\n" +
		"Completed assembler with k=4 and missing=0%\n" +
		"----------------------------------------\n" +
		"Running assembler with k=4 and missing=1%\n" +
		"Completed assembler with k=4 and missing=1%\n" +
		"----------------------------------------\n"
	require.Equal(t, expected, out.String(), "unexpected progress markers")
}

func TestSweepSequentialKeepsGoingOnFailure(t *testing.T) {
	t.Parallel()
	runner := &stubRunner{
		failOn: map[invocation]error{
			{"genome.txt", 3, 1}: errors.New("exit status 1"),
		},
	}
	var out bytes.Buffer
	s := &Sweep{
		Runner:       runner,
		DataFile:     "genome.txt",
		KRange:       Range{Start: 3, End: 3, Step: 1},
		MissingRange: Range{Start: 0, End: 2, Step: 1},
		Workers:      1,
		Out:          &out,
	}
	err := s.Run(context.Background())
	require.Error(t, err, "expected the failed invocation to be reported")
	require.Len(t, runner.invocations, 3, "a failing invocation must not stop the sweep")
	assert.Contains(t, err.Error(), "exit status 1")
	// The failed combination still gets its Completed marker and separator
	assert.Contains(t, out.String(), "Completed assembler with k=3 and missing=1%")
}

func TestSweepSequentialStopsOnCancelledContext(t *testing.T) {
	t.Parallel()
	runner := &stubRunner{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := &Sweep{
		Runner:       runner,
		DataFile:     "genome.txt",
		KRange:       Range{Start: 3, End: 50, Step: 1},
		MissingRange: Range{Start: 0, End: 10, Step: 1},
		Workers:      1,
		Out:          &bytes.Buffer{},
	}
	err := s.Run(ctx)
	require.Error(t, err, "expected a context cancellation error")
	require.Len(t, runner.invocations, 0, "no invocation expected with a cancelled context")
}

func TestSweepParallelRunsAllCombinations(t *testing.T) {
	t.Parallel()
	runner := &stubRunner{}
	var out bytes.Buffer
	s := &Sweep{
		Runner:       runner,
		DataFile:     "genome.txt",
		KRange:       Range{Start: 3, End: 10, Step: 1},
		MissingRange: Range{Start: 0, End: 10, Step: 2},
		Workers:      4,
		Out:          &out,
	}
	err := s.Run(context.Background())
	require.Nil(t, err, "unexpected error running parallel sweep")
	require.Len(t, runner.invocations, 48, "expected 8 k-mer values x 6 missing percentages")

	// every combination ran exactly once, whatever the scheduling order
	seen := make(map[invocation]int)
	for _, inv := range runner.invocations {
		seen[inv]++
	}
	for k := 3; k <= 10; k++ {
		for missing := 0; missing <= 10; missing += 2 {
			assert.Equal(t, 1, seen[invocation{"genome.txt", k, missing}],
				fmt.Sprintf("combination k=%d missing=%d must run exactly once", k, missing))
		}
	}
	assert.Contains(t, out.String(), "All assemblies completed in")
}

func TestSweepParallelKeepsGoingOnFailure(t *testing.T) {
	t.Parallel()
	runner := &stubRunner{
		failOn: map[invocation]error{
			{"genome.txt", 4, 0}: errors.New("exit status 2"),
		},
	}
	var out bytes.Buffer
	s := &Sweep{
		Runner:       runner,
		DataFile:     "genome.txt",
		KRange:       Range{Start: 3, End: 6, Step: 1},
		MissingRange: Range{Start: 0, End: 1, Step: 1},
		Workers:      2,
		Out:          &out,
	}
	err := s.Run(context.Background())
	require.Error(t, err, "expected the failed invocation to be reported")
	require.Len(t, runner.invocations, 8, "a failing invocation must not stop the sweep")
	assert.True(t, strings.Contains(out.String(), "Error occurred for k=4 and missing k-mer percentage=0"),
		"expected the error marker for the failed combination")
}
