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

// Package reads breaks a genome into fixed-length overlapping reads, the
// input format expected by the external assembler.
package reads

import (
	"bufio"
	"io/ioutil"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/KaylBing/Varied-Kmer-Assembly-and-Analysis/log"
)

// BreakIntoReads slides a window of the given length over the genome with
// step 1, keeping only windows fully inside the sequence
func BreakIntoReads(genome string, length int) []string {
	reads := make([]string, 0)
	for i := 0; i+length <= len(genome); i++ {
		reads = append(reads, genome[i:i+length])
	}
	return reads
}

// Create reads the genome file, breaks it into reads of the given length and
// writes one read per line to the output file. It returns the number of reads
// written.
//
// Newlines in the genome file are stripped before windowing, matching the
// assembler's own input handling.
func Create(genomeFile, outputFile string, length int) (int, error) {
	if length < 1 {
		return 0, errors.Errorf("invalid read length %d: must be at least 1", length)
	}

	content, err := ioutil.ReadFile(genomeFile)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to read genome file %q", genomeFile)
	}
	genome := strings.NewReplacer("\r", "", "\n", "").Replace(string(content))
	if length > len(genome) {
		return 0, errors.Errorf("read length %d exceeds genome length %d", length, len(genome))
	}

	reads := BreakIntoReads(genome, length)
	log.Debugf("Breaking a %d bases genome into %d reads of length %d", len(genome), len(reads), length)

	out, err := os.Create(outputFile)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to create output file %q", outputFile)
	}
	defer out.Close()

	writer := bufio.NewWriter(out)
	for _, read := range reads {
		if _, err := writer.WriteString(read + "\n"); err != nil {
			return 0, errors.Wrapf(err, "failed to write read to output file %q", outputFile)
		}
	}
	if err := writer.Flush(); err != nil {
		return 0, errors.Wrapf(err, "failed to write reads to output file %q", outputFile)
	}
	return len(reads), nil
}
