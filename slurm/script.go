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
	"strings"
	"text/template"

	"github.com/pkg/errors"

	"github.com/KaylBing/Varied-Kmer-Assembly-and-Analysis/helper/sizeutil"
)

var batchScriptTemplate = `#!/bin/bash
#SBATCH --job-name={{.Name}}
#SBATCH --output={{.Output}}
#SBATCH --nodes={{.Nodes}}
#SBATCH --ntasks-per-node={{.TasksPerNode}}
#SBATCH --cpus-per-task={{.CpusPerTask}}
#SBATCH --mem={{.Mem}}
#SBATCH --partition={{.Partition}}

{{.DriverCommand}}{{range .Args}} "{{.}}"{{end}}
`

// validate checks that the profile can be turned into a script SLURM will accept
func (p JobProfile) validate() error {
	if p.Name == "" {
		return errors.New("missing mandatory job name in job profile")
	}
	if p.Nodes < 1 {
		return errors.Errorf("invalid node count %d for job %q", p.Nodes, p.Name)
	}
	if p.TasksPerNode < 1 {
		return errors.Errorf("invalid tasks per node count %d for job %q", p.TasksPerNode, p.Name)
	}
	if p.CpusPerTask < 1 {
		return errors.Errorf("invalid cpus per task count %d for job %q", p.CpusPerTask, p.Name)
	}
	if p.Partition == "" {
		return errors.Errorf("missing mandatory partition for job %q", p.Name)
	}
	if p.DriverCommand == "" {
		return errors.Errorf("missing mandatory driver command for job %q", p.Name)
	}
	if _, err := sizeutil.ConvertToGB(p.Mem); err != nil {
		return errors.Wrapf(err, "invalid memory size %q for job %q", p.Mem, p.Name)
	}
	return nil
}

// BuildBatchScript renders the batch script for the profile.
//
// Rendering is deterministic: the same profile always produces the same bytes.
func (p JobProfile) BuildBatchScript() (string, error) {
	if err := p.validate(); err != nil {
		return "", err
	}
	tmpl, err := template.New("batchScript").Parse(batchScriptTemplate)
	if err != nil {
		return "", errors.Wrap(err, "failed to parse batch script template")
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, p); err != nil {
		return "", errors.Wrapf(err, "failed to render batch script for job %q", p.Name)
	}
	return b.String(), nil
}
