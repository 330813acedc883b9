package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/schoolday/core/cmd/api/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "schoolday",
		Short: "SchoolDay API Server",
		Long:  `SchoolDay is the backend for the school dashboard: daily schedule, homework tracking, parent-teacher messaging and student profiles.`,
	}

	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewMigrateCommand())
	rootCmd.AddCommand(commands.NewUserCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
