package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/todolite/core/cmd/todolite/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "todolite",
		Short: "todolite task manager",
		Long:  `todolite is a small single-user task manager: add, toggle and delete tasks from a local, durably persisted list.`,
	}

	// Add commands
	rootCmd.AddCommand(commands.NewAddCommand())
	rootCmd.AddCommand(commands.NewListCommand())
	rootCmd.AddCommand(commands.NewToggleCommand())
	rootCmd.AddCommand(commands.NewDeleteCommand())
	rootCmd.AddCommand(commands.NewClearCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
