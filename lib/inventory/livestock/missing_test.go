package livestock

import (
	"context"
	"testing"

	"github.com/hallfarms/books/lib/cards"
	"github.com/hallfarms/books/lib/common/date"
	"github.com/hallfarms/books/lib/ledger"
)

type stubStore struct {
	cards []cards.Card
}

func (st *stubStore) ListCards(_ context.Context, _, board, list string) ([]cards.Card, error) {
	var res []cards.Card
	for _, c := range st.cards {
		if c.Board == board && c.List == list {
			res = append(res, c)
		}
	}
	return res, nil
}

func deadCard(day string, tags ...string) cards.Card {
	name := day + ":"
	for _, tag := range tags {
		name += " " + tag
	}
	return cards.Card{Board: cards.DeadBoard, List: cards.DeadList, Name: name}
}

func TestMissingDailyGains(t *testing.T) {
	ia := cattleAccount(t,
		cattleTx(t, 2, "2020-01-01", "START", "4000", "aveValuePerWeight: 1", ledger.Row{"qty": "10", "weight": "4000"}),
		cattleTx(t, 3, "2020-01-02", "inventory-cattle-dailygain", "", "", nil),
		cattleTx(t, 4, "2020-01-04", "purchase-cattle", "1000", "head: 2", ledger.Row{"qty": "2", "weight": "800"}),
	)
	missing := MissingDailyGains(ia, date.MustParse("2020-01-04"))

	var days []string
	for _, e := range missing {
		days = append(days, date.Format(e.Date))
	}
	want := []string{"2020-01-01", "2020-01-03", "2020-01-04"}
	if len(days) != len(want) {
		t.Fatalf("missing days = %v, want %v", days, want)
	}
	for i := range want {
		if days[i] != want[i] {
			t.Fatalf("missing days = %v, want %v", days, want)
		}
	}
	// A daily gain closes its day: Jan 1's goes before the Jan 2 line, Jan
	// 3's before the Jan 4 line, and Jan 4's appends at the end.
	if missing[0].Lineno != 3 || missing[1].Lineno != 4 || missing[2].Lineno != 5 {
		t.Errorf("linenos = %d, %d, %d", missing[0].Lineno, missing[1].Lineno, missing[2].Lineno)
	}
}

func TestMissingDead(t *testing.T) {
	ia := cattleAccount(t,
		cattleTx(t, 2, "2020-01-01", "START", "4000", "aveValuePerWeight: 1", ledger.Row{"qty": "10", "weight": "4000"}),
		cattleTx(t, 3, "2020-01-03", "inventory-cattle-dead", "", "", ledger.Row{"qty": "-1"}),
	)
	st := &stubStore{cards: []cards.Card{
		deadCard("2020-01-03", "tag41"),          // already recorded
		deadCard("2020-01-05", "tag87", "pen3"),  // missing, two head
		deadCard("2019-12-20", "tag12"),          // before the account start
		{Board: cards.DeadBoard, List: cards.DeadList, Name: "not dated yet"},
	}}
	missing, err := MissingDead(context.Background(), ia, st, "hallfarms")
	if err != nil {
		t.Fatal(err)
	}
	if len(missing) != 1 {
		t.Fatalf("missing = %+v", missing)
	}
	e := missing[0]
	if date.Format(e.Date) != "2020-01-05" || e.Qty.String() != "-2" {
		t.Errorf("missing dead = %s qty %s", date.Format(e.Date), e.Qty)
	}
	if e.Category != "inventory-cattle-dead" {
		t.Errorf("category = %q", e.Category)
	}
	// Past the last line, so it appends.
	if e.Lineno != 4 {
		t.Errorf("lineno = %d", e.Lineno)
	}
}

func TestFindMissingTxOrdersDailyGainLast(t *testing.T) {
	ia := cattleAccount(t,
		cattleTx(t, 2, "2020-01-01", "START", "4000", "aveValuePerWeight: 1", ledger.Row{"qty": "10", "weight": "4000"}),
	)
	st := &stubStore{cards: []cards.Card{deadCard("2020-01-01", "tag5")}}
	res, err := FindMissingTx(context.Background(), ia, nil, st, "hallfarms", date.MustParse("2020-01-01"))
	if err != nil {
		t.Fatal(err)
	}
	if len(res.MissingInIvty) != 2 {
		t.Fatalf("missing = %+v", res.MissingInIvty)
	}
	// The dead line goes at the first line of its day; the daily gain
	// closes the day and sorts after it.
	if res.MissingInIvty[0].Category != "inventory-cattle-dead" {
		t.Errorf("first = %q", res.MissingInIvty[0].Category)
	}
	if res.MissingInIvty[1].Category != "inventory-cattle-dailygain" {
		t.Errorf("second = %q", res.MissingInIvty[1].Category)
	}
}
