package main

import (
	"os"

	"github.com/avigny/taskforge/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
