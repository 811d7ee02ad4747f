package main

import (
	"fmt"
	"os"

	"github.com/jobflow/jobtrace/cmd/jobtrace/cmd"
)

func main() {
	rootCmd := cmd.NewJobTraceCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
