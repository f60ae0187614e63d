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

	"github.com/spf13/cobra"

	"github.com/KaylBing/Varied-Kmer-Assembly-and-Analysis/slurm"
)

func init() {
	jobsCmd.AddCommand(jobsWaitCmd)
}

var jobsWaitCmd = &cobra.Command{
	Use:   "wait <jobID>",
	Short: "Wait for a job to terminate",
	Long:  `Poll the state of a submitted job until it reaches a terminal state`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfig()
		client, err := newSlurmClient(context.Background(), cfg)
		if err != nil {
			return err
		}
		state, err := slurm.WaitJob(context.Background(), client, args[0], cfg.JobMonitoringTimeInterval)
		if err != nil {
			return err
		}
		fmt.Printf("Job %s finished with state %s\n", args[0], getColoredJobState(!noColor, state))
		return nil
	},
}
