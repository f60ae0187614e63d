// Package config defines configuration structures filled by Cobra and Viper
// (see commands package for more information)
package config

import (
	"strings"
	"time"

	"github.com/spf13/cast"
)

// DefaultPythonBin is the default interpreter used to launch the assembler
const DefaultPythonBin = "python"

// DefaultAssemblerScript is the default path to the external assembler script
const DefaultAssemblerScript = "libs/assembler_2/assembler_other.py"

// DefaultDataFile is the default genome data file fed to the assembler
const DefaultDataFile = "data/covid_genome.txt"

// DefaultDriverScript is the default driver script launched by generated batch jobs
const DefaultDriverScript = "run_all.sh"

// DefaultPartition is the default SLURM partition jobs are submitted to
const DefaultPartition = "compute"

// DefaultKmerStart is the default lower bound (inclusive) of the k-mer sweep
const DefaultKmerStart = 3

// DefaultKmerEnd is the default upper bound (inclusive) of the k-mer sweep
const DefaultKmerEnd = 50

// DefaultMissingStart is the default lower bound (inclusive) of the missing-percentage sweep
const DefaultMissingStart = 0

// DefaultMissingEnd is the default upper bound (inclusive) of the missing-percentage sweep
const DefaultMissingEnd = 10

// DefaultSweepStep is the default step used to walk sweep ranges
const DefaultSweepStep = 1

// DefaultWorkersNumber is the default number of parallel assembly workers
const DefaultWorkersNumber = 1

// DefaultJobMonitoringTimeInterval is the default duration between two polls of a submitted job state
const DefaultJobMonitoringTimeInterval = 5 * time.Second

// DefaultWorkingDirectory is the default directory where generated batch scripts are written
const DefaultWorkingDirectory = "work"

// DefaultReadsOutputFile is the default file where generated reads are written
const DefaultReadsOutputFile = "reads.txt"

// Configuration holds config information filled by Cobra and Viper (see commands package for more information)
type Configuration struct {
	WorkingDirectory          string
	PythonBin                 string
	AssemblerScript           string
	DataFile                  string
	DriverScript              string
	Partition                 string
	ReadsOutputFile           string
	JobMonitoringTimeInterval time.Duration
	Slurm                     DynamicMap
}

// DynamicMap holds open-ended configuration parameters, as the SLURM login
// node connection settings.
//
// It has methods to automatically cast data to the desired type.
type DynamicMap map[string]interface{}

// Set sets a value for a given key
func (dm DynamicMap) Set(name string, value interface{}) {
	dm[name] = value
}

// IsSet checks if a given configuration key is defined
func (dm DynamicMap) IsSet(name string) bool {
	_, ok := dm[name]
	return ok
}

// Get returns the raw value of a given configuration key
func (dm DynamicMap) Get(name string) interface{} {
	return dm[name]
}

// GetString returns the value of the given key casted into a string.
// An empty string is returned if not found.
func (dm DynamicMap) GetString(name string) string {
	return cast.ToString(dm[name])
}

// GetStringOrDefault returns the value of the given key casted into a string.
// The given default value is returned if not found.
func (dm DynamicMap) GetStringOrDefault(name, defaultValue string) string {
	if res := dm.GetString(name); res != "" {
		return res
	}
	return defaultValue
}

// GetBool returns the value of the given key casted into a boolean.
// False is returned if not found.
func (dm DynamicMap) GetBool(name string) bool {
	return cast.ToBool(dm[name])
}

// GetInt returns the value of the given key casted into an int.
// 0 is returned if not found.
func (dm DynamicMap) GetInt(name string) int {
	return cast.ToInt(dm[name])
}

// GetDuration returns the value of the given key casted into a Duration.
// A 0 duration is returned if not found.
func (dm DynamicMap) GetDuration(name string) time.Duration {
	return cast.ToDuration(dm[name])
}

// GetStringSlice returns the value of the given key casted into a slice of string.
// If the corresponding raw value is a string, it is split on comas.
// A nil or empty slice is returned if not found.
func (dm DynamicMap) GetStringSlice(name string) []string {
	val := dm[name]
	switch v := val.(type) {
	case string:
		return strings.Split(v, ",")
	default:
		return cast.ToStringSlice(val)
	}
}
