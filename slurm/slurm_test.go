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
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaylBing/Varied-Kmer-Assembly-and-Analysis/helper/sshutil"
)

func TestParseJobIDFromSbatchOut(t *testing.T) {
	t.Parallel()
	str := "Submitted batch job 4567"
	ret, err := parseJobIDFromBatchOutput(str)
	require.Nil(t, err, "unexpected error")
	require.Equal(t, "4567", ret, "unexpected JobID parsing")
}

func TestParseJobIDFromSbatchOutWithUnexpectedOutput(t *testing.T) {
	t.Parallel()
	str := "sbatch: error: Batch job submission failed: Invalid partition name specified"
	_, err := parseJobIDFromBatchOutput(str)
	require.Error(t, err, "expected unexpected sbatch output error")
}

func TestParseKeyValue(t *testing.T) {
	t.Parallel()
	type args struct {
		str string
	}
	type checks struct {
		is    bool
		key   string
		value string
	}

	tests := []struct {
		name string
		args args
		want checks
	}{
		{"TestKeyValueSimple", args{"aaa=bbb"}, checks{true, "aaa", "bbb"}},
		{"TestNoKeyValue", args{"azerty"}, checks{false, "", ""}},
		{"TestNullValue", args{"Dependency=(null)"}, checks{true, "Dependency", "(null)"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			is, k, v := parseKeyValue(tt.args.str)
			assert.Equal(t, tt.want.is, is)
			assert.Equal(t, tt.want.key, k)
			assert.Equal(t, tt.want.value, v)
		})
	}
}

func TestSubmitBatch(t *testing.T) {
	t.Parallel()
	var ranCmd string
	s := &sshutil.MockSSHClient{
		MockRunCommand: func(cmd string) (string, error) {
			ranCmd = cmd
			return "Submitted batch job 42\n", nil
		},
	}
	jobID, err := SubmitBatch(s, "work/submit.sh", "data/covid_genome.txt", "27")
	require.Nil(t, err, "unexpected error")
	require.Equal(t, "42", jobID, "unexpected JobID")
	require.Equal(t, "sbatch work/submit.sh data/covid_genome.txt 27", ranCmd, "unexpected sbatch invocation")
}

func TestSubmitBatchWithoutArgs(t *testing.T) {
	t.Parallel()
	var ranCmd string
	s := &sshutil.MockSSHClient{
		MockRunCommand: func(cmd string) (string, error) {
			ranCmd = cmd
			return "Submitted batch job 43", nil
		},
	}
	jobID, err := SubmitBatch(s, "work/submit.sh")
	require.Nil(t, err, "unexpected error")
	require.Equal(t, "43", jobID, "unexpected JobID")
	require.Equal(t, "sbatch work/submit.sh", ranCmd, "unexpected sbatch invocation")
}

func TestSubmitBatchWithFailure(t *testing.T) {
	t.Parallel()
	s := &sshutil.MockSSHClient{
		MockRunCommand: func(cmd string) (string, error) {
			return "sbatch: error: invalid partition specified", errors.New("exit status 1")
		},
	}
	_, err := SubmitBatch(s, "work/submit.sh")
	require.Error(t, err, "expected submission failure")
}

func TestGetJobInfo(t *testing.T) {
	t.Parallel()
	type args struct {
		sshCli sshutil.Client
		jobID  string
	}

	scontrolOut := "JobId=1234 JobName=assembly_sweep\n" +
		"   JobState=RUNNING Reason=None Dependency=(null)\n" +
		"   RunTime=00:01:02 TimeLimit=UNLIMITED\n" +
		"   StdOut=/home/jdoe/assembly_sweep.out\n"

	tests := []struct {
		name    string
		args    args
		want    JobInfo
		wantErr bool
	}{
		{"TestWithJobID", args{&sshutil.MockSSHClient{
			MockRunCommand: func(cmd string) (string, error) {
				return scontrolOut, nil
			}}, "1234"}, JobInfo{
			"JobId": "1234", "JobName": "assembly_sweep",
			"JobState": "RUNNING", "Reason": "None", "Dependency": "(null)",
			"RunTime": "00:01:02", "TimeLimit": "UNLIMITED",
			"StdOut": "/home/jdoe/assembly_sweep.out",
		}, false},
		{"TestWithoutJobID", args{&sshutil.MockSSHClient{}, ""}, nil, true},
		{"TestWithJobNotFound", args{&sshutil.MockSSHClient{
			MockRunCommand: func(cmd string) (string, error) {
				return "slurm_load_jobs error: Invalid job id specified", errors.New("exit status 1")
			}}, "1234"}, nil, true},
		{"TestWithEmptyOutput", args{&sshutil.MockSSHClient{
			MockRunCommand: func(cmd string) (string, error) {
				return "", nil
			}}, "1234"}, nil, true},
		{"TestWithMalformedOutput", args{&sshutil.MockSSHClient{
			MockRunCommand: func(cmd string) (string, error) {
				return "MALFORMED", nil
			}}, "1234"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := GetJobInfo(tt.args.sshCli, tt.args.jobID)
			if (err != nil) != tt.wantErr {
				t.Errorf("GetJobInfo() error = %v, wantErr %v", err, tt.wantErr)
			}
			assert.Equal(t, tt.want, info)
		})
	}
}

func TestGetJobInfoWithJobNotFoundError(t *testing.T) {
	t.Parallel()
	s := &sshutil.MockSSHClient{
		MockRunCommand: func(cmd string) (string, error) {
			return "", nil
		},
	}
	_, err := GetJobInfo(s, "1234")
	require.Error(t, err, "expected no job found error")
	require.True(t, IsNoJobFoundError(err), "expected a noJobFound error")
}

func TestGetJobInfoWithTransportError(t *testing.T) {
	t.Parallel()
	s := &sshutil.MockSSHClient{
		MockRunCommand: func(cmd string) (string, error) {
			return "", errors.New("ssh: handshake failed: connection refused")
		},
	}
	_, err := GetJobInfo(s, "1234")
	require.Error(t, err, "expected a transport error")
	require.False(t, IsNoJobFoundError(err), "a transport failure must not be reported as a missing job")
	require.Contains(t, err.Error(), "connection refused", "the cause must be kept")
}

func TestGetJobInfoWithInvalidJobIDError(t *testing.T) {
	t.Parallel()
	s := &sshutil.MockSSHClient{
		MockRunCommand: func(cmd string) (string, error) {
			return "slurm_load_jobs error: Invalid job id specified", errors.New("exit status 1")
		},
	}
	_, err := GetJobInfo(s, "1234")
	require.Error(t, err, "expected no job found error")
	require.True(t, IsNoJobFoundError(err), "expected a noJobFound error")
}

func TestCancelJob(t *testing.T) {
	t.Parallel()
	var ranCmd string
	s := &sshutil.MockSSHClient{
		MockRunCommand: func(cmd string) (string, error) {
			ranCmd = cmd
			return "", nil
		},
	}
	err := CancelJob(s, "1234")
	require.Nil(t, err, "unexpected error")
	require.Equal(t, "scancel 1234", ranCmd, "unexpected scancel invocation")
}

func TestWaitJobUntilCompleted(t *testing.T) {
	t.Parallel()
	states := []string{"PENDING", "RUNNING", "COMPLETING", "COMPLETED"}
	var mu sync.Mutex
	var calls int
	s := &sshutil.MockSSHClient{
		MockRunCommand: func(cmd string) (string, error) {
			mu.Lock()
			defer mu.Unlock()
			state := states[calls]
			if calls < len(states)-1 {
				calls++
			}
			return fmt.Sprintf("JobId=1234 JobState=%s Reason=None", state), nil
		},
	}
	state, err := WaitJob(context.Background(), s, "1234", time.Millisecond)
	require.Nil(t, err, "unexpected error")
	require.Equal(t, "COMPLETED", state, "unexpected final job state")
}

func TestWaitJobWithFailedState(t *testing.T) {
	t.Parallel()
	s := &sshutil.MockSSHClient{
		MockRunCommand: func(cmd string) (string, error) {
			return "JobId=1234 JobState=FAILED Reason=NonZeroExitCode", nil
		},
	}
	state, err := WaitJob(context.Background(), s, "1234", time.Millisecond)
	require.Error(t, err, "expected an error for a FAILED job")
	require.Equal(t, "FAILED", state, "unexpected final job state")
	require.Contains(t, err.Error(), "FAILED")
}

func TestWaitJobWithCancelledContext(t *testing.T) {
	t.Parallel()
	s := &sshutil.MockSSHClient{
		MockRunCommand: func(cmd string) (string, error) {
			return "JobId=1234 JobState=RUNNING Reason=None", nil
		},
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := WaitJob(ctx, s, "1234", time.Millisecond)
	require.Error(t, err, "expected a context cancellation error")
}
