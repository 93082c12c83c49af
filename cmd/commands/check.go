package commands

import (
	"fmt"
	"os"

	"github.com/hallfarms/books/lib/ledger/process"
	"github.com/hallfarms/books/lib/sheets/csvdir"

	"github.com/cheggaaa/pb/v3"
	"github.com/spf13/cobra"
)

// CreateCheckCommand creates the command.
func CreateCheckCommand() *cobra.Command {

	var r checkRunner

	c := &cobra.Command{
		Use:   "check <sheets dir>",
		Short: "load and validate every account sheet",
		Long: `Load every account sheet in the directory, run the full validation
pipeline and report every problem found.`,
		Args: cobra.ExactArgs(1),
		Run:  r.run,
	}
	r.setupFlags(c)
	return c
}

type checkRunner struct {
	verbose bool
	latin1  bool
}

func (r *checkRunner) run(cmd *cobra.Command, args []string) {
	if err := r.execute(cmd, args); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s\n", err.Error())
		os.Exit(1)
	}
}

func (r *checkRunner) setupFlags(c *cobra.Command) {
	c.Flags().BoolVarP(&r.verbose, "verbose", "v", false, "print every message, not just the final state per line")
	c.Flags().BoolVar(&r.latin1, "latin1", false, "decode the CSV files as ISO 8859-1")
}

func (r *checkRunner) execute(cmd *cobra.Command, args []string) error {
	store := csvdir.New(args[0])
	store.Latin1 = r.latin1
	raws, err := store.FetchAccounts(cmd.Context())
	if err != nil {
		return err
	}
	log := &process.ActivityLog{}
	l := process.Loader{Log: log}

	// Five pipeline stages plus the terminal separation step.
	bar := pb.StartNew(6)
	var last process.Step
	for step := range l.LoadInSteps(cmd.Context(), raws) {
		bar.Increment()
		if r.verbose {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %d problem(s)\n", step.Name, len(step.Errors))
		}
		last = step
	}
	bar.Finish()
	if err := cmd.Context().Err(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, e := range log.Entries() {
		fmt.Fprintln(out, e)
	}
	if !last.Done {
		return fmt.Errorf("check failed: %d problem(s)", len(last.Errors))
	}
	fmt.Fprintf(out, "ok: %d accounts, %d problem(s)\n", len(last.Final.Originals), len(last.Errors))
	return nil
}
