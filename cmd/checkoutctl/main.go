package main

import (
	"fmt"
	"os"
)

var Version = "dev"

func main() {
	rootCmd := newRootCmd(loadServices, os.Stdout)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
