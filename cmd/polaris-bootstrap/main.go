// cmd/polaris-bootstrap/main.go
package main

import (
	"fmt"
	"os"

	"github.com/dataloomhq/polaris-bootstrap/internal/cli"
	"github.com/dataloomhq/polaris-bootstrap/internal/config"
)

func main() {
	// Initialize configuration
	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing config: %v\n", err)
		os.Exit(1)
	}

	// Execute root command
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
