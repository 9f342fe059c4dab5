package main

import (
	"os"

	"github.com/bianoble/repo-ranger/cmd/repo-ranger/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
