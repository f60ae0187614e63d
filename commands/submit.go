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
	"io/ioutil"
	"os"
	"path"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/KaylBing/Varied-Kmer-Assembly-and-Analysis/config"
	"github.com/KaylBing/Varied-Kmer-Assembly-and-Analysis/helper/executil"
	"github.com/KaylBing/Varied-Kmer-Assembly-and-Analysis/helper/sshutil"
	"github.com/KaylBing/Varied-Kmer-Assembly-and-Analysis/helper/stringutil"
	"github.com/KaylBing/Varied-Kmer-Assembly-and-Analysis/log"
	"github.com/KaylBing/Varied-Kmer-Assembly-and-Analysis/slurm"
)

func init() {
	RootCmd.AddCommand(submitCmd)
	submitCmd.PersistentFlags().BoolVar(&submitWait, "wait", false, "Wait for the submitted job to reach a terminal state")
}

var submitWait bool

var submitCmd = &cobra.Command{
	Use:           "submit",
	Short:         "Submit an assembly batch job",
	Long:          `Generate a batch script for an assembly job profile and submit it with sbatch`,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// newSlurmClient returns a client to the SLURM login node: an SSH client when
// a login node url is configured, the local shell otherwise
func newSlurmClient(ctx context.Context, cfg config.Configuration) (sshutil.Client, error) {
	if cfg.Slurm.GetString("url") != "" {
		return slurm.GetSSHClient("", "", "", cfg)
	}
	log.Debugln("No SLURM login node url configured, running SLURM commands locally")
	return executil.NewShell(ctx), nil
}

// installBatchScript renders the profile's batch script and puts it where the
// client can reach it: uploaded over SCP for an SSH client, written under the
// working directory for the local shell
func installBatchScript(cfg config.Configuration, client sshutil.Client, profile slurm.JobProfile) (string, error) {
	script, err := profile.BuildBatchScript()
	if err != nil {
		return "", err
	}
	scriptPath := path.Join(cfg.WorkingDirectory, stringutil.UniqueTimestampedName(profile.Name+"_", ".sh"))
	if copier, ok := client.(sshutil.CopierClient); ok {
		if err := copier.CopyFile(strings.NewReader(script), scriptPath, "0755"); err != nil {
			return "", errors.Wrapf(err, "failed to upload batch script to %q", scriptPath)
		}
		return scriptPath, nil
	}
	if err := os.MkdirAll(cfg.WorkingDirectory, 0755); err != nil {
		return "", errors.Wrapf(err, "failed to create working directory %q", cfg.WorkingDirectory)
	}
	if err := ioutil.WriteFile(scriptPath, []byte(script), 0755); err != nil {
		return "", errors.Wrapf(err, "failed to write batch script to %q", scriptPath)
	}
	return scriptPath, nil
}

// submitProfile installs the profile's batch script and submits it with the
// given positional arguments appended to the sbatch invocation
func submitProfile(ctx context.Context, cfg config.Configuration, profile slurm.JobProfile, args ...string) error {
	client, err := newSlurmClient(ctx, cfg)
	if err != nil {
		return err
	}
	scriptPath, err := installBatchScript(cfg, client, profile)
	if err != nil {
		return err
	}
	jobID, err := slurm.SubmitBatch(client, scriptPath, args...)
	if err != nil {
		return err
	}
	fmt.Println("Submitted batch job", jobID)
	if submitWait {
		state, err := slurm.WaitJob(ctx, client, jobID, cfg.JobMonitoringTimeInterval)
		if err != nil {
			return err
		}
		fmt.Printf("Job %s finished with state %s\n", jobID, getColoredJobState(!noColor, state))
	}
	return nil
}
