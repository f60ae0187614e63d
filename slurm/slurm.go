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

package slurm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/KaylBing/Varied-Kmer-Assembly-and-Analysis/helper/sshutil"
	"github.com/KaylBing/Varied-Kmer-Assembly-and-Analysis/log"
)

type noJobFound struct {
	msg string
}

func (jid *noJobFound) Error() string {
	return jid.msg
}

// IsNoJobFoundError checks if an error is due to a missing job in the SLURM database
func IsNoJobFoundError(err error) bool {
	_, ok := errors.Cause(err).(*noJobFound)
	return ok
}

// SubmitBatch submits a batch script with sbatch, forwarding the given
// positional arguments to the script, and returns the submitted job ID
func SubmitBatch(client sshutil.Client, scriptPath string, args ...string) (string, error) {
	cmd := fmt.Sprintf("sbatch %s", scriptPath)
	if len(args) > 0 {
		cmd = fmt.Sprintf("%s %s", cmd, strings.Join(args, " "))
	}
	output, err := client.RunCommand(cmd)
	if err != nil {
		log.Debugf("stderr:%q", output)
		return "", errors.Wrap(err, output)
	}
	output = strings.Trim(output, "\n")
	jobID, err := parseJobIDFromBatchOutput(output)
	if err != nil {
		return "", err
	}
	log.Debugf("JobID:%q", jobID)
	return jobID, nil
}

// GetJobInfo retrieves the scontrol fields of the job with the given ID.
//
// A *noJobFound error is returned if the job is unknown to SLURM (typically
// because it has been purged from its database).
func GetJobInfo(client sshutil.Client, jobID string) (JobInfo, error) {
	if jobID == "" {
		return nil, errors.New("a job ID is required to retrieve job information")
	}
	cmd := fmt.Sprintf("scontrol show job %s", jobID)
	output, err := client.RunCommand(cmd)
	out := strings.Trim(output, "\n")
	if strings.Contains(out, "Invalid job id specified") {
		return nil, &noJobFound{msg: fmt.Sprintf("no information found for job with id:%q", jobID)}
	}
	if err != nil {
		// scontrol never ran or failed for another reason, keep the cause
		return nil, errors.Wrapf(err, "failed to retrieve job info with jobID:%q: %s", jobID, out)
	}
	if out == "" {
		return nil, &noJobFound{msg: fmt.Sprintf("no information found for job with id:%q", jobID)}
	}
	info := make(JobInfo)
	for _, field := range strings.Fields(out) {
		if is, key, value := parseKeyValue(field); is {
			info[key] = value
		}
	}
	if _, ok := info["JobState"]; !ok {
		return nil, errors.Errorf("unexpected scontrol output for job with id:%q: %q", jobID, out)
	}
	return info, nil
}

// CancelJob cancels the job with the given ID
func CancelJob(client sshutil.Client, jobID string) error {
	cmd := fmt.Sprintf("scancel %s", jobID)
	output, err := client.RunCommand(cmd)
	if err != nil {
		return errors.Wrapf(err, "failed to cancel job with id:%q: %s", jobID, output)
	}
	return nil
}

// WaitJob polls the state of the job with the given ID until it reaches a
// terminal state or the context is done. It returns the last observed state.
//
// A COMPLETED job yields a nil error. A job still RUNNING, PENDING,
// COMPLETING, CONFIGURING, SIGNALING or RESIZING keeps the polling going. Any
// other state (FAILED, CANCELLED, TIMEOUT, ...) yields an error carrying it.
func WaitJob(ctx context.Context, client sshutil.Client, jobID string, interval time.Duration) (string, error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-ticker.C:
			info, err := GetJobInfo(client, jobID)
			if err != nil {
				return "", errors.Wrapf(err, "failed to get job info with jobID:%q", jobID)
			}
			state := info["JobState"]
			switch state {
			case "COMPLETED":
				return state, nil
			case "RUNNING", "PENDING", "COMPLETING", "CONFIGURING", "SIGNALING", "RESIZING":
				// job's still running or its state is about to be set definitively
				log.Debugf("Job with id:%q is in state:%q", jobID, state)
			default:
				return state, errors.Errorf("job with ID:%q finished unsuccessfully with state:%q", jobID, state)
			}
		}
	}
}

// parseJobIDFromBatchOutput parses the "Submitted batch job <ID>" output of sbatch
func parseJobIDFromBatchOutput(out string) (string, error) {
	matches := reSbatchJobID.FindStringSubmatch(out)
	if matches == nil {
		return "", errors.Errorf("unexpected sbatch output:%q", out)
	}
	return matches[1], nil
}
