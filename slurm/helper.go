package slurm

import (
	"regexp"
	"strings"
)

var reSbatchJobID = regexp.MustCompile(`Submitted batch job (\d+)`)

// parseKeyValue returns true and the corresponding key/value pair if the
// given string respects the "key=value" format
func parseKeyValue(str string) (bool, string, string) {
	keyVal := strings.SplitN(str, "=", 2)
	if len(keyVal) == 2 && strings.TrimSpace(keyVal[0]) != "" {
		return true, keyVal[0], keyVal[1]
	}
	return false, "", ""
}
