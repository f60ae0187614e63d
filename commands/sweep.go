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

package commands

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/KaylBing/Varied-Kmer-Assembly-and-Analysis/config"
	"github.com/KaylBing/Varied-Kmer-Assembly-and-Analysis/sweep"
)

func init() {
	RootCmd.AddCommand(sweepCmd)
	sweepCmd.PersistentFlags().IntVar(&kStart, "k-start", config.DefaultKmerStart, "Starting k-mer size (inclusive)")
	sweepCmd.PersistentFlags().IntVar(&kEnd, "k-end", config.DefaultKmerEnd, "Ending k-mer size (inclusive)")
	sweepCmd.PersistentFlags().IntVar(&kStep, "k-step", config.DefaultSweepStep, "Step for k-mer size")
	sweepCmd.PersistentFlags().IntVar(&missingStart, "missing-start", config.DefaultMissingStart, "Starting missing k-mer percentage (inclusive)")
	sweepCmd.PersistentFlags().IntVar(&missingEnd, "missing-end", config.DefaultMissingEnd, "Ending missing k-mer percentage (inclusive)")
	sweepCmd.PersistentFlags().IntVar(&missingStep, "missing-step", config.DefaultSweepStep, "Step for missing k-mer percentage")
	sweepCmd.PersistentFlags().IntVar(&sweepWorkers, "workers", config.DefaultWorkersNumber, "Number of parallel assembly workers")
}

var (
	kStart       int
	kEnd         int
	kStep        int
	missingStart int
	missingEnd   int
	missingStep  int
	sweepWorkers int
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run the parameter sweep locally",
	Long: `Invoke the external assembler once per (k-mer size, missing percentage)
combination. With a single worker combinations run sequentially in row-major
order, k-mer sizes outer and missing percentages inner. A failing invocation
does not stop the sweep.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfig()
		s := &sweep.Sweep{
			Runner: &sweep.AssemblerRunner{
				PythonBin: cfg.PythonBin,
				Script:    cfg.AssemblerScript,
			},
			DataFile:     cfg.DataFile,
			KRange:       sweep.Range{Start: kStart, End: kEnd, Step: kStep},
			MissingRange: sweep.Range{Start: missingStart, End: missingEnd, Step: missingStep},
			Workers:      sweepWorkers,
			Out:          os.Stdout,
		}
		return s.Run(context.Background())
	},
}
