package commands

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"github.com/hallfarms/books/lib/reports/balance"

	"github.com/spf13/cobra"
)

// CreateBalanceCommand creates the command.
func CreateBalanceCommand() *cobra.Command {

	var r balanceRunner

	c := &cobra.Command{
		Use:   "balance <sheets dir>",
		Short: "render a balance sheet",
		Long:  `Render a year-end balance sheet on the tax or market basis.`,
		Args:  cobra.ExactArgs(1),
		Run:   r.run,
	}
	r.setupFlags(c)
	return c
}

type balanceRunner struct {
	year  int
	typ   string
	color bool
}

func (r *balanceRunner) run(cmd *cobra.Command, args []string) {
	if err := r.execute(cmd, args); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s\n", err.Error())
		os.Exit(1)
	}
}

func (r *balanceRunner) setupFlags(c *cobra.Command) {
	c.Flags().IntVar(&r.year, "year", time.Now().Year(), "year of the balance sheet")
	c.Flags().StringVar(&r.typ, "type", "tax", "basis of the report (tax or mkt)")
	c.Flags().BoolVar(&r.color, "color", true, "color output")
}

func (r *balanceRunner) execute(cmd *cobra.Command, args []string) error {
	fa, _, err := loadLedger(cmd.Context(), args[0], nil)
	if err != nil {
		return err
	}
	rep, err := balance.Annual(fa, balance.Options{Year: r.year, Type: r.typ})
	if err != nil {
		return err
	}
	out := bufio.NewWriter(cmd.OutOrStdout())
	defer out.Flush()
	rn := balance.Renderer{Color: r.color}
	return rn.Render(rep, out)
}
