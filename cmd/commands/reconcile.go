package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hallfarms/books/cmd/flags"
	"github.com/hallfarms/books/lib/cards"
	"github.com/hallfarms/books/lib/cards/yamlfile"
	"github.com/hallfarms/books/lib/common/date"
	"github.com/hallfarms/books/lib/inventory"
	"github.com/hallfarms/books/lib/inventory/livestock"
	"github.com/hallfarms/books/lib/ledger"
	"github.com/hallfarms/books/lib/sheets"
	"github.com/hallfarms/books/lib/sheets/csvdir"

	"github.com/spf13/cobra"
)

// CreateReconcileCommand creates the command.
func CreateReconcileCommand() *cobra.Command {

	var r reconcileRunner

	c := &cobra.Command{
		Use:   "reconcile <sheets dir> <inventory account>",
		Short: "reconcile an inventory account against the cash accounts",
		Long: `Diff an inventory account against the cash accounts that paid for the
goods and report missing and mismatched entries. For livestock accounts
the missing daily-gain and dead lines are included. With --write, the
missing inventory entries are inserted into the sheet.`,
		Args: cobra.ExactArgs(2),
		Run:  r.run,
	}
	r.setupFlags(c)
	return c
}

type reconcileRunner struct {
	write      bool
	configPath string
	today      flags.DateFlag
}

func (r *reconcileRunner) run(cmd *cobra.Command, args []string) {
	if err := r.execute(cmd, args); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s\n", err.Error())
		os.Exit(1)
	}
}

func (r *reconcileRunner) setupFlags(c *cobra.Command) {
	c.Flags().BoolVar(&r.write, "write", false, "insert the missing inventory entries into the sheet")
	c.Flags().StringVarP(&r.configPath, "config", "c", "", "path to books.yml (default <sheets dir>/books.yml)")
	c.Flags().Var(&r.today, "today", "override the current day")
}

func (r *reconcileRunner) execute(cmd *cobra.Command, args []string) error {
	dir, acctName := args[0], args[1]
	if r.configPath == "" {
		r.configPath = filepath.Join(dir, "books.yml")
	}
	cfg, err := readConfig(r.configPath)
	if err != nil {
		return err
	}
	today := r.today.Value()
	if today.IsZero() {
		if today, err = cfg.today(); err != nil {
			return err
		}
	}

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

	var res *inventory.MissingResult
	if ia.IsLivestock() {
		var st cards.Store
		if cfg.Cards.File != "" {
			if st, err = yamlfile.Open(cfg.Cards.File); err != nil {
				return err
			}
		}
		res, err = livestock.FindMissingTx(cmd.Context(), ia, fa.CashAccounts(), st, acct.Settings.CardOrg, today)
	} else {
		res, err = inventory.FindMissingTx(ia, fa.CashAccounts(), today)
	}
	if err != nil {
		return err
	}

	out := bufio.NewWriter(cmd.OutOrStdout())
	defer out.Flush()
	printResult(out, acctName, res)

	if !r.write || len(res.MissingInIvty) == 0 {
		return nil
	}
	updates := make([]sheets.RowUpdate, 0, len(res.MissingInIvty))
	for _, e := range res.MissingInIvty {
		updates = append(updates, sheets.RowUpdate{Lineno: e.Lineno, Row: rowOf(ia, e)})
	}
	if err := store.BatchUpsertRows(cmd.Context(), acctName, updates, acct.Header, sheets.Insert); err != nil {
		return err
	}
	fmt.Fprintf(out, "inserted %d rows into %s\n", len(updates), acctName)
	return nil
}

func printResult(out io.Writer, acctName string, res *inventory.MissingResult) {
	for _, t := range res.MissingInCash {
		fmt.Fprintf(out, "missing in cash: %s lineno %d: %s %s %s\n",
			acctName, t.Lineno, date.Format(t.Date), t.Category, t.Amount)
	}
	for _, e := range res.MissingInIvty {
		fmt.Fprintf(out, "missing in %s at lineno %d: %s %s %s qty %s\n",
			acctName, e.Lineno, date.Format(e.Date), e.Category, e.Amount, e.Qty)
	}
	for _, m := range res.PresentInBothButWrong {
		fmt.Fprintf(out, "mismatch: %s lineno %d: have %s %s, want %s %s\n",
			acctName, m.Ivty.Lineno, m.Ivty.Amount, date.Format(m.Ivty.Date),
			m.Expected.Amount, date.Format(m.Expected.Date))
	}
	if len(res.MissingInCash) == 0 && len(res.MissingInIvty) == 0 && len(res.PresentInBothButWrong) == 0 {
		fmt.Fprintf(out, "%s reconciles cleanly\n", acctName)
	}
}

// rowOf turns an expected transaction into a starter sheet row.
func rowOf(ia *inventory.Account, e inventory.ExpectedTx) ledger.Row {
	row := ledger.Row{
		"date":     date.Format(e.Date),
		"category": e.Category,
		"amount":   e.Amount.String(),
		"note":     e.Note.String(),
	}
	if e.Src != nil {
		row["description"] = e.Src.Description
		row["who"] = e.Src.Who
	}
	if ia.IsLivestock() {
		if !e.Qty.IsZero() {
			row["qty"] = e.Qty.String()
		}
		if !e.Weight.IsZero() {
			row["weight"] = e.Weight.String()
		}
	}
	return row
}
