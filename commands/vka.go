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
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/KaylBing/Varied-Kmer-Assembly-and-Analysis/config"
	"github.com/KaylBing/Varied-Kmer-Assembly-and-Analysis/log"
)

// RootCmd is the root of vka commands tree
var RootCmd = &cobra.Command{
	Use:   "vka",
	Short: "Genome assembly parameter sweeps on SLURM",
	Long: `vka submits genome assembly batch jobs to a SLURM cluster and drives
k-mer size / missing-percentage parameter sweeps over an external assembler.
`,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		err := cmd.Help()
		if err != nil {
			fmt.Print(err)
		}
	},
}

var cfgFile string
var noColor bool

func init() {
	setConfig()
	cobra.OnInitialize(initConfig)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// enable ability to specify config file via flag
		viper.SetConfigFile(cfgFile)
	}
	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		log.Debugln("Using config file:", viper.ConfigFileUsed())
	} else {
		log.Debugln("Config not found... ")
	}
}

func setConfig() {
	RootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./vka-config.[json|yaml])")
	RootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable coloring output")

	RootCmd.PersistentFlags().StringP("working_directory", "w", config.DefaultWorkingDirectory, "Directory where generated batch scripts are written")
	RootCmd.PersistentFlags().String("python_bin", config.DefaultPythonBin, "Python interpreter used to launch the assembler")
	RootCmd.PersistentFlags().String("assembler_script", config.DefaultAssemblerScript, "Path to the external assembler script")
	RootCmd.PersistentFlags().String("data_file", config.DefaultDataFile, "Genome data file fed to the assembler")
	RootCmd.PersistentFlags().String("driver_script", config.DefaultDriverScript, "Driver script launched by generated batch jobs")
	RootCmd.PersistentFlags().StringP("partition", "p", config.DefaultPartition, "SLURM partition jobs are submitted to")
	RootCmd.PersistentFlags().String("reads_output_file", config.DefaultReadsOutputFile, "File where generated reads are written")
	RootCmd.PersistentFlags().Duration("job_monitoring_time_interval", config.DefaultJobMonitoringTimeInterval, "Duration between two polls of a submitted job state")

	viper.BindPFlag("working_directory", RootCmd.PersistentFlags().Lookup("working_directory"))
	viper.BindPFlag("python_bin", RootCmd.PersistentFlags().Lookup("python_bin"))
	viper.BindPFlag("assembler_script", RootCmd.PersistentFlags().Lookup("assembler_script"))
	viper.BindPFlag("data_file", RootCmd.PersistentFlags().Lookup("data_file"))
	viper.BindPFlag("driver_script", RootCmd.PersistentFlags().Lookup("driver_script"))
	viper.BindPFlag("partition", RootCmd.PersistentFlags().Lookup("partition"))
	viper.BindPFlag("reads_output_file", RootCmd.PersistentFlags().Lookup("reads_output_file"))
	viper.BindPFlag("job_monitoring_time_interval", RootCmd.PersistentFlags().Lookup("job_monitoring_time_interval"))

	//Environment Variables
	viper.SetEnvPrefix("vka") // will be uppercased automatically - Become "VKA_"
	viper.AutomaticEnv()      // read in environment variables that match
	viper.BindEnv("working_directory")
	viper.BindEnv("python_bin")
	viper.BindEnv("assembler_script")
	viper.BindEnv("data_file")
	viper.BindEnv("driver_script")
	viper.BindEnv("partition")
	viper.BindEnv("reads_output_file")
	viper.BindEnv("job_monitoring_time_interval")

	//Setting Defaults
	viper.SetDefault("working_directory", config.DefaultWorkingDirectory)
	viper.SetDefault("python_bin", config.DefaultPythonBin)
	viper.SetDefault("assembler_script", config.DefaultAssemblerScript)
	viper.SetDefault("data_file", config.DefaultDataFile)
	viper.SetDefault("driver_script", config.DefaultDriverScript)
	viper.SetDefault("partition", config.DefaultPartition)
	viper.SetDefault("reads_output_file", config.DefaultReadsOutputFile)
	viper.SetDefault("job_monitoring_time_interval", config.DefaultJobMonitoringTimeInterval)

	//Configuration file directories
	viper.SetConfigName("vka-config") // name of config file (without extension)
	viper.AddConfigPath("/etc/vka/")
	viper.AddConfigPath(".")
}

func getConfig() config.Configuration {
	configuration := config.Configuration{}
	configuration.WorkingDirectory = viper.GetString("working_directory")
	configuration.PythonBin = viper.GetString("python_bin")
	configuration.AssemblerScript = viper.GetString("assembler_script")
	configuration.DataFile = viper.GetString("data_file")
	configuration.DriverScript = viper.GetString("driver_script")
	configuration.Partition = viper.GetString("partition")
	configuration.ReadsOutputFile = viper.GetString("reads_output_file")
	configuration.JobMonitoringTimeInterval = viper.GetDuration("job_monitoring_time_interval")
	configuration.Slurm = config.DynamicMap(viper.GetStringMap("slurm"))
	return configuration
}
