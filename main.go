package main

import (
	"github.com/KaylBing/Varied-Kmer-Assembly-and-Analysis/commands"
	"github.com/KaylBing/Varied-Kmer-Assembly-and-Analysis/log"
)

func main() {
	if err := commands.RootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
	log.Debug("Exiting main...")
}
