// Package yamlfile implements a cards.Store backed by a YAML file, for
// offline use and tests.
package yamlfile

import (
	"context"
	"fmt"
	"os"

	"github.com/hallfarms/books/lib/cards"
	"gopkg.in/yaml.v2"
)

type list struct {
	Board string   `yaml:"board"`
	List  string   `yaml:"list"`
	Cards []string `yaml:"cards"`
}

// Store serves cards from a YAML file.
type Store struct {
	lists []list
}

// Open reads the card file.
func Open(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	dec := yaml.NewDecoder(f)
	dec.SetStrict(true)
	var ls []list
	if err := dec.Decode(&ls); err != nil {
		return nil, fmt.Errorf("reading card file %s: %w", path, err)
	}
	return &Store{lists: ls}, nil
}

// ListCards implements cards.Store. The org is ignored, a file holds a
// single organization.
func (st *Store) ListCards(_ context.Context, _, board, lst string) ([]cards.Card, error) {
	var res []cards.Card
	for _, l := range st.lists {
		if l.Board != board || l.List != lst {
			continue
		}
		for _, name := range l.Cards {
			res = append(res, cards.Card{Board: board, List: lst, Name: name})
		}
	}
	return res, nil
}
