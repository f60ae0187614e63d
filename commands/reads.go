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
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/KaylBing/Varied-Kmer-Assembly-and-Analysis/reads"
)

func init() {
	RootCmd.AddCommand(readsCmd)
}

var readsCmd = &cobra.Command{
	Use:   "reads <length>",
	Short: "Break the genome into fixed-length reads",
	Long: `Slide a window of the given length over the genome data file with step 1
and write one read per line to the reads output file`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		length, err := strconv.Atoi(args[0])
		if err != nil {
			return errors.Wrapf(err, "invalid read length %q", args[0])
		}
		cfg := getConfig()
		count, err := reads.Create(cfg.DataFile, cfg.ReadsOutputFile, length)
		if err != nil {
			return err
		}
		fmt.Printf("Reads written to %s (%d reads)\n", cfg.ReadsOutputFile, count)
		return nil
	},
}
