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

	"github.com/spf13/cobra"

	"github.com/KaylBing/Varied-Kmer-Assembly-and-Analysis/slurm"
)

func init() {
	submitCmd.AddCommand(submitSweepCmd)
}

var submitSweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Submit the full parameter sweep as a batch job",
	Long: `Submit a batch job running the driver script over the whole k-mer /
missing-percentage grid on a single fat node (64 CPUs, 128G)`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfig()
		return submitProfile(context.Background(), cfg, slurm.SweepJobProfile(cfg))
	},
}
