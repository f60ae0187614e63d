package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "vka v0.1.0"

func init() {
	RootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Long:  `The version of vka`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version)
	},
}
