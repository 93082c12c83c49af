package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/hallfarms/books/lib/common/date"
	"github.com/hallfarms/books/lib/ledger"
	"github.com/hallfarms/books/lib/ledger/process"
	"github.com/hallfarms/books/lib/sheets/csvdir"

	"gopkg.in/yaml.v2"
)

// config is the books.yml file next to the sheet directory. All fields are
// optional.
type config struct {
	// Today overrides the current day, for reproducing past runs.
	Today string `yaml:"today"`
	Cards struct {
		File string `yaml:"file"`
		Org  string `yaml:"org"`
	} `yaml:"cards"`
}

func readConfig(path string) (config, error) {
	var cfg config
	if path == "" {
		return cfg, nil
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("reading %s: %w", path, err)
	}
	return cfg, nil
}

func (c config) today() (time.Time, error) {
	if c.Today == "" {
		return date.Today(), nil
	}
	return date.Parse(c.Today)
}

// loadLedger fetches every sheet in the directory and runs the full load
// pipeline over them.
func loadLedger(ctx context.Context, dir string, log *process.ActivityLog) (*ledger.FinalAccounts, []error, error) {
	store := csvdir.New(dir)
	raws, err := store.FetchAccounts(ctx)
	if err != nil {
		return nil, nil, err
	}
	l := process.Loader{Log: log}
	return l.Load(ctx, raws)
}
