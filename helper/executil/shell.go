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

package executil

import (
	"bytes"
	"context"

	"github.com/pkg/errors"

	"github.com/KaylBing/Varied-Kmer-Assembly-and-Analysis/log"
)

// Shell runs commands on the local host through bash.
//
// It satisfies the sshutil.Client interface so that SLURM operations can be
// executed directly on a login node without an SSH hop.
type Shell struct {
	ctx context.Context
}

// NewShell returns a Shell bound to the given context. The context is used to
// kill the whole process tree of commands still running when it becomes done.
func NewShell(ctx context.Context) *Shell {
	return &Shell{ctx: ctx}
}

// RunCommand runs a command locally and returns its combined stdout/stderr
func (s *Shell) RunCommand(cmd string) (string, error) {
	log.Debugf("[Shell] %q", cmd)
	c := Command(s.ctx, "bash", "-c", cmd)
	var b bytes.Buffer
	c.Stdout = &b
	c.Stderr = &b
	err := c.Run()
	if err != nil {
		return b.String(), errors.Wrapf(err, "command %q failed", cmd)
	}
	return b.String(), nil
}
