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
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(jobsCmd)
}

var jobsCmd = &cobra.Command{
	Use:           "jobs",
	Aliases:       []string{"job", "j"},
	Short:         "Perform commands on submitted jobs",
	Long:          `Perform different commands on jobs submitted to the SLURM scheduler`,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func getColoredJobState(colorize bool, state string) string {
	if !colorize {
		return state
	}
	switch {
	case strings.ToLower(state) == "completed":
		return color.New(color.FgHiGreen, color.Bold).SprintFunc()(state)
	case strings.ToLower(state) == "running", strings.ToLower(state) == "pending",
		strings.ToLower(state) == "completing", strings.ToLower(state) == "configuring":
		return color.New(color.FgHiYellow, color.Bold).SprintFunc()(state)
	default:
		return color.New(color.FgHiRed, color.Bold).SprintFunc()(state)
	}
}
