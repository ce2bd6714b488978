package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/relgate/relgate/cmd"
	"github.com/relgate/relgate/internal/domain"
)

func main() {
	if err := cmd.InitCommands(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize commands: %v\n", err)
		os.Exit(1)
	}
	if err := cmd.Execute(); err != nil {
		if errors.Is(err, domain.ErrReleaseBlocked) {
			fmt.Fprintf(os.Stderr, "Release blocked: %v\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
