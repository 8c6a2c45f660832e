package main

import (
	"os"

	"github.com/abhisek/learnlab/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
