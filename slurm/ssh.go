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
	"github.com/pkg/errors"
	"golang.org/x/crypto/ssh"

	"github.com/KaylBing/Varied-Kmer-Assembly-and-Analysis/config"
	"github.com/KaylBing/Varied-Kmer-Assembly-and-Analysis/helper/sshutil"
)

// GetSSHClient returns an SSH client to the SLURM login node described in the
// configuration. Provided user name, private key and password override the
// corresponding configuration parameters when not empty.
func GetSSHClient(userName, privateKey, password string, cfg config.Configuration) (*sshutil.SSHClient, error) {
	if userName == "" {
		userName = cfg.Slurm.GetString("user_name")
	}
	if privateKey == "" {
		privateKey = cfg.Slurm.GetString("private_key")
	}
	if password == "" {
		password = cfg.Slurm.GetString("password")
	}
	if userName == "" {
		return nil, errors.New("slurm configuration misses mandatory parameter 'user_name'")
	}

	authMethods := make([]ssh.AuthMethod, 0)
	if privateKey != "" {
		keyAuth, err := sshutil.ReadPrivateKey(privateKey)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read private key for slurm login node")
		}
		authMethods = append(authMethods, keyAuth)
	}
	if password != "" {
		authMethods = append(authMethods, ssh.Password(password))
	}
	if len(authMethods) == 0 {
		return nil, errors.New("slurm configuration must provide at least one of 'private_key' or 'password' parameters")
	}

	sshConfig := &ssh.ClientConfig{
		User:            userName,
		Auth:            authMethods,
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
	}

	port := cfg.Slurm.GetInt("port")
	if port == 0 {
		port = 22
	}

	return &sshutil.SSHClient{
		Config: sshConfig,
		Host:   cfg.Slurm.GetString("url"),
		Port:   port,
	}, nil
}
