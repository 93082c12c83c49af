package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/hallfarms/books/lib/inventory"
	"github.com/hallfarms/books/lib/inventory/livestock"
	"github.com/hallfarms/books/lib/sheets"
	"github.com/hallfarms/books/lib/sheets/csvdir"

	"github.com/spf13/cobra"
)

// CreateFifoCommand creates the command.
func CreateFifoCommand() *cobra.Command {

	var r fifoRunner

	c := &cobra.Command{
		Use:   "fifo <sheets dir> <livestock account>",
		Short: "recompute a livestock account's FIFO valuation",
		Long: `Replay a livestock inventory account through the FIFO cost-layer
simulation and report every line whose stored values diverge from the
computed ones. With --write, the corrected rows are written back.`,
		Args: cobra.ExactArgs(2),
		Run:  r.run,
	}
	r.setupFlags(c)
	return c
}

type fifoRunner struct {
	write bool
}

func (r *fifoRunner) run(cmd *cobra.Command, args []string) {
	if err := r.execute(cmd, args); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s\n", err.Error())
		os.Exit(1)
	}
}

func (r *fifoRunner) setupFlags(c *cobra.Command) {
	c.Flags().BoolVar(&r.write, "write", false, "write the corrected rows back to the sheet")
}

func (r *fifoRunner) execute(cmd *cobra.Command, args []string) error {
	dir, acctName := args[0], args[1]
	store := csvdir.New(dir)
	fa, _, err := loadLedger(cmd.Context(), dir, nil)
	if err != nil {
		return err
	}
	acct := fa.Original(acctName)
	if acct == nil {
		return fmt.Errorf("no account named %s", acctName)
	}
	ia, err := inventory.New(acct)
	if err != nil {
		return err
	}
	changes, err := livestock.ChangesNeeded(ia)
	if err != nil {
		return err
	}

	out := bufio.NewWriter(cmd.OutOrStdout())
	defer out.Flush()
	if len(changes) == 0 {
		fmt.Fprintf(out, "%s is consistent\n", acctName)
		return nil
	}
	for _, ch := range changes {
		fmt.Fprintf(out, "lineno %d: %s\n", ch.Lineno, strings.Join(ch.Fields, ", "))
	}
	if !r.write {
		fmt.Fprintf(out, "%d line(s) need changes; rerun with --write to apply\n", len(changes))
		return nil
	}
	updates := make([]sheets.RowUpdate, 0, len(changes))
	for _, ch := range changes {
		updates = append(updates, sheets.RowUpdate{Lineno: ch.Lineno, Row: ch.Row})
	}
	if err := store.BatchUpsertRows(cmd.Context(), acctName, updates, acct.Header, sheets.Update); err != nil {
		return err
	}
	fmt.Fprintf(out, "updated %d rows in %s\n", len(updates), acctName)
	return nil
}
