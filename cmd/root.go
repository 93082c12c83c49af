// Package cmd is the main command file for Cobra
package cmd

import (
	"fmt"
	"os"

	"github.com/hallfarms/books/cmd/commands"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "books",
	Short: "books keeps the farm's spreadsheet ledger honest",
	Long: `books loads the farm's account spreadsheets, validates and reconciles
them, and renders balance sheets and profit/loss statements on both the
tax and market basis.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprint(rootCmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(commands.CreateCheckCommand())
	rootCmd.AddCommand(commands.CreateBalanceCommand())
	rootCmd.AddCommand(commands.CreateProfitLossCommand())
	rootCmd.AddCommand(commands.CreateReconcileCommand())
	rootCmd.AddCommand(commands.CreateFifoCommand())
}
