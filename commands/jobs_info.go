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
	"fmt"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/KaylBing/Varied-Kmer-Assembly-and-Analysis/helper/sshutil"
	"github.com/KaylBing/Varied-Kmer-Assembly-and-Analysis/helper/tabutil"
	"github.com/KaylBing/Varied-Kmer-Assembly-and-Analysis/slurm"
)

func init() {
	jobsCmd.AddCommand(jobsInfoCmd)
}

var jobsInfoCmd = &cobra.Command{
	Use:   "info <jobID>",
	Short: "Show job information",
	Long:  `Show the scontrol information of a submitted job`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfig()
		client, err := newSlurmClient(context.Background(), cfg)
		if err != nil {
			return err
		}
		return displayJobInfo(client, args[0], !noColor)
	},
}

func displayJobInfo(client sshutil.Client, jobID string, colorize bool) error {
	info, err := slurm.GetJobInfo(client, jobID)
	if err != nil {
		if slurm.IsNoJobFoundError(err) {
			return errors.Errorf("no job found with id %q (it may have been purged from the SLURM database)", jobID)
		}
		return err
	}

	jobTable := tabutil.NewTable()
	jobTable.AddHeaders("Name", "ID", "State", "Reason", "Execution Time", "Output")
	jobTable.AddRow(info["JobName"], info["JobId"], getColoredJobState(colorize, info["JobState"]),
		info["Reason"], info["RunTime"], info["StdOut"])
	if colorize {
		defer color.Unset()
	}
	fmt.Println("Job:")
	fmt.Println(jobTable.Render())
	return nil
}
