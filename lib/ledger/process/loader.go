package process

import (
	"context"

	"github.com/hallfarms/books/lib/common/cpr"
	"github.com/hallfarms/books/lib/ledger"
)

// Step is one element of the load pipeline's progress report.
type Step struct {
	Name   string
	Errors []error
	Done   bool
	Final  *ledger.FinalAccounts
}

// Loader runs the full validate → standardize → resolve splits → assert →
// check balances → separate pipeline over raw sheet accounts, reporting one
// Step per stage so a caller can show progress and abort between stages.
type Loader struct {
	Log *ActivityLog
}

type stage struct {
	name string
	pr   cpr.Processor[*ledger.Account]
}

func stages() []stage {
	return []stage{
		{"validate", &Validator{}},
		{"standardize", &Standardizer{}},
		{"resolve splits", &SplitResolver{}},
		{"assert", &Asserter{}},
		{"check balances", &BalanceChecker{}},
	}
}

// LoadInSteps runs the pipeline. The returned channel yields one Step per
// stage; the terminal Step carries Done and the FinalAccounts when at least
// one account made it through.
func (l *Loader) LoadInSteps(ctx context.Context, raws []*ledger.RawAccount) <-chan Step {
	ch := make(chan Step)
	go func() {
		defer close(ch)
		accts := make([]*ledger.Account, 0, len(raws))
		for _, raw := range raws {
			accts = append(accts, ledger.FromRaw(raw))
		}
		for _, st := range stages() {
			out, err := l.runStage(ctx, st.pr, accts)
			if err != nil {
				l.push(ctx, ch, Step{Name: st.name, Errors: []error{err}})
				return
			}
			accts = out
			step := Step{Name: st.name, Errors: collectErrors(accts)}
			l.logErrors(step.Errors)
			if !l.push(ctx, ch, step) {
				return
			}
		}
		var good []*ledger.Account
		for _, a := range accts {
			if !a.Failed() && a.Stage == ledger.StageBalanced {
				good = append(good, a)
			}
		}
		final := Step{Name: "separate", Errors: collectErrors(accts)}
		if len(good) > 0 {
			final.Done = true
			final.Final = Separate(good)
		}
		l.push(ctx, ch, final)
	}()
	return ch
}

// Load runs the pipeline to completion and returns the terminal artifact.
func (l *Loader) Load(ctx context.Context, raws []*ledger.RawAccount) (*ledger.FinalAccounts, []error, error) {
	var last Step
	for step := range l.LoadInSteps(ctx, raws) {
		last = step
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	if !last.Done {
		return nil, last.Errors, ledger.AccountError{Acct: "*", Msg: "no account survived the load pipeline"}
	}
	return last.Final, last.Errors, nil
}

func (l *Loader) runStage(ctx context.Context, pr cpr.Processor[*ledger.Account], accts []*ledger.Account) ([]*ledger.Account, error) {
	sink := new(cpr.Collector[*ledger.Account])
	eng := &cpr.Engine[*ledger.Account]{
		Source: &cpr.Producer[*ledger.Account]{Items: accts},
		Sink:   sink,
	}
	eng.Add(pr)
	if err := eng.Process(ctx); err != nil {
		return nil, err
	}
	return sink.Result, nil
}

func (l *Loader) push(ctx context.Context, ch chan<- Step, step Step) bool {
	select {
	case ch <- step:
		return true
	case <-ctx.Done():
		return false
	}
}

func (l *Loader) logErrors(errs []error) {
	if l.Log == nil {
		return
	}
	for _, err := range errs {
		l.Log.Log(err.Error())
	}
}

func collectErrors(accts []*ledger.Account) []error {
	var errs []error
	for _, a := range accts {
		errs = append(errs, a.Errors...)
		errs = append(errs, a.LineErrors()...)
	}
	return errs
}
