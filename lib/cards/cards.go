// Package cards reads livestock records kept as cards on an external
// board/list/card store. Card names follow the convention
// "YYYY-MM-DD: <tag tokens>", one token per animal.
package cards

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hallfarms/books/lib/common/date"
)

// Card is one card of a board list.
type Card struct {
	Board string
	List  string
	Name  string
}

// Store enumerates cards of a board list.
type Store interface {
	ListCards(ctx context.Context, org, board, list string) ([]Card, error)
}

// Record is a parsed card: a date and the tag or pen tokens listed on it.
type Record struct {
	Date time.Time
	Tags []string
}

// ParseCard parses a card name of the form "YYYY-MM-DD: <tokens>".
func ParseCard(name string) (Record, error) {
	head, rest, ok := strings.Cut(name, ":")
	if !ok {
		return Record{}, fmt.Errorf("card %q has no date prefix", name)
	}
	d, err := date.Parse(strings.TrimSpace(head))
	if err != nil {
		return Record{}, fmt.Errorf("card %q: %w", name, err)
	}
	return Record{Date: d, Tags: strings.Fields(rest)}, nil
}

// Board and list holding the dead-animal records.
const (
	DeadBoard = "Livestock"
	DeadList  = "Dead"
)

// DeadCounts fetches the per-day death counts: one count per tag token,
// summed across all cards of a day. Unparseable cards are skipped, they are
// records in progress.
func DeadCounts(ctx context.Context, st Store, org string) (map[time.Time]int, error) {
	cs, err := st.ListCards(ctx, org, DeadBoard, DeadList)
	if err != nil {
		return nil, err
	}
	counts := make(map[time.Time]int)
	for _, c := range cs {
		rec, err := ParseCard(c.Name)
		if err != nil {
			continue
		}
		counts[rec.Date] += len(rec.Tags)
	}
	return counts, nil
}
