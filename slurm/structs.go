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
	"github.com/KaylBing/Varied-Kmer-Assembly-and-Analysis/config"
)

// JobInfo holds the scontrol fields of a job as key=value pairs (JobState, Reason, RunTime, StdOut, ...)
type JobInfo map[string]string

// JobProfile describes a batch script to generate: the resource requests
// attached to the submission and the driver invocation forming the script body
type JobProfile struct {
	Name          string
	Output        string
	Nodes         int
	TasksPerNode  int
	CpusPerTask   int
	Mem           string
	Partition     string
	DriverCommand string
	// Args are forwarded verbatim to the driver in the script body. Shell
	// positional references as "$1" are legitimate values here.
	Args []string
}

// SweepJobProfile returns the job profile running the full parameter sweep on
// a cluster node: a single fat task (64 CPUs, 128G).
//
// BUG(KaylBing): the sweep profile forwards "$0", the batch script's own path,
// to the driver instead of a caller-supplied k-mer value. Kept as-is until the
// driver contract is clarified.
func SweepJobProfile(cfg config.Configuration) JobProfile {
	return JobProfile{
		Name:          "assembly_sweep",
		Output:        "assembly_sweep.out",
		Nodes:         1,
		TasksPerNode:  1,
		CpusPerTask:   64,
		Mem:           "128G",
		Partition:     cfg.Partition,
		DriverCommand: "bash " + cfg.DriverScript,
		Args:          []string{"$0"},
	}
}

// SingleJobProfile returns the job profile running one assembly on a cluster
// node (4 CPUs, 12G). The submission carries two positional arguments, input
// file and k-mer value, forwarded to the driver in that order.
func SingleJobProfile(cfg config.Configuration) JobProfile {
	return JobProfile{
		Name:          "assembly_single",
		Output:        "assembly_single.out",
		Nodes:         1,
		TasksPerNode:  1,
		CpusPerTask:   4,
		Mem:           "12G",
		Partition:     cfg.Partition,
		DriverCommand: "bash " + cfg.DriverScript,
		Args:          []string{"$1", "$2"},
	}
}
