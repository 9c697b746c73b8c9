package main

import (
	"fmt"
	"os"

	"github.com/metadata-ai/metadata-ai-go/cmd/metadata-ai/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
