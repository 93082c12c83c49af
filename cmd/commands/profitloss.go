package commands

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"github.com/hallfarms/books/lib/reports/profitloss"

	"github.com/spf13/cobra"
)

// CreateProfitLossCommand creates the command.
func CreateProfitLossCommand() *cobra.Command {

	var r profitLossRunner

	c := &cobra.Command{
		Use:     "profitloss <sheets dir>",
		Aliases: []string{"pl"},
		Short:   "render a profit and loss statement",
		Long:    `Render a calendar-year profit and loss statement by category.`,
		Args:    cobra.ExactArgs(1),
		Run:     r.run,
	}
	r.setupFlags(c)
	return c
}

type profitLossRunner struct {
	year  int
	typ   string
	color bool
}

func (r *profitLossRunner) run(cmd *cobra.Command, args []string) {
	if err := r.execute(cmd, args); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s\n", err.Error())
		os.Exit(1)
	}
}

func (r *profitLossRunner) setupFlags(c *cobra.Command) {
	c.Flags().IntVar(&r.year, "year", time.Now().Year(), "year of the statement")
	c.Flags().StringVar(&r.typ, "type", "tax", "basis of the report (tax or mkt)")
	c.Flags().BoolVar(&r.color, "color", true, "color output")
}

func (r *profitLossRunner) execute(cmd *cobra.Command, args []string) error {
	fa, _, err := loadLedger(cmd.Context(), args[0], nil)
	if err != nil {
		return err
	}
	rep, err := profitloss.Annual(fa, profitloss.Options{Year: r.year, Type: r.typ})
	if err != nil {
		return err
	}
	out := bufio.NewWriter(cmd.OutOrStdout())
	defer out.Flush()
	rn := profitloss.Renderer{Color: r.color}
	return rn.Render(rep, out)
}
