package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "arena",
		Short: "Multi-agent AI debate arena",
		Long:  "Runs structured five-round debates between AI personas backed by OpenRouter models, either in the terminal or as an HTTP service with live event streaming.",
	}

	root.PersistentFlags().String("api-key", "", "OpenRouter API key (overrides OPENROUTER_API_KEY env var)")
	root.PersistentFlags().String("env-file", ".env", "Path to a .env file with configuration")

	root.AddCommand(newDebateCmd())
	root.AddCommand(newServeCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
