package cards

import (
	"context"
	"testing"

	"github.com/hallfarms/books/lib/common/date"
)

type fakeStore struct {
	cards []Card
}

func (st *fakeStore) ListCards(_ context.Context, _, board, list string) ([]Card, error) {
	var res []Card
	for _, c := range st.cards {
		if c.Board == board && c.List == list {
			res = append(res, c)
		}
	}
	return res, nil
}

func TestParseCard(t *testing.T) {
	tests := []struct {
		desc    string
		input   string
		day     string
		tags    int
		wantErr bool
	}{
		{desc: "single tag", input: "2020-03-14: tag41", day: "2020-03-14", tags: 1},
		{desc: "several tags", input: "2020-03-14: tag41 pen3 tag87", day: "2020-03-14", tags: 3},
		{desc: "no tags", input: "2020-03-14:", day: "2020-03-14", tags: 0},
		{desc: "no date", input: "found one dead", wantErr: true},
		{desc: "bad date", input: "yesterday: tag41", wantErr: true},
	}

	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			rec, err := ParseCard(test.input)
			if test.wantErr {
				if err == nil {
					t.Fatalf("ParseCard(%q): expected error", test.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCard(%q): %v", test.input, err)
			}
			if date.Format(rec.Date) != test.day || len(rec.Tags) != test.tags {
				t.Errorf("ParseCard(%q) = %s, %d tags", test.input, date.Format(rec.Date), len(rec.Tags))
			}
		})
	}
}

func TestDeadCounts(t *testing.T) {
	st := &fakeStore{cards: []Card{
		{Board: DeadBoard, List: DeadList, Name: "2020-03-14: tag41"},
		{Board: DeadBoard, List: DeadList, Name: "2020-03-14: tag87 pen3"},
		{Board: DeadBoard, List: DeadList, Name: "2020-04-01: tag12"},
		{Board: DeadBoard, List: DeadList, Name: "work in progress"},
		{Board: DeadBoard, List: "Treatments", Name: "2020-03-14: tag99"},
	}}
	counts, err := DeadCounts(context.Background(), st, "hallfarms")
	if err != nil {
		t.Fatal(err)
	}
	if len(counts) != 2 {
		t.Fatalf("counts = %v", counts)
	}
	if counts[date.MustParse("2020-03-14")] != 3 {
		t.Errorf("2020-03-14 = %d, want 3", counts[date.MustParse("2020-03-14")])
	}
	if counts[date.MustParse("2020-04-01")] != 1 {
		t.Errorf("2020-04-01 = %d, want 1", counts[date.MustParse("2020-04-01")])
	}
}
