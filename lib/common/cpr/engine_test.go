package cpr

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type double struct{}

func (double) Process(ctx context.Context, inCh <-chan int, outCh chan<- int) error {
	return Consume(ctx, inCh, func(i int) error {
		return Push(ctx, outCh, 2*i)
	})
}

func TestEngine(t *testing.T) {
	sink := new(Collector[int])
	eng := &Engine[int]{
		Source: &Producer[int]{Items: []int{1, 2, 3}},
		Sink:   sink,
	}
	eng.Add(double{}).Add(double{})

	if err := eng.Process(context.Background()); err != nil {
		t.Fatal(err)
	}

	want := []int{4, 8, 12}
	if diff := cmp.Diff(want, sink.Result); diff != "" {
		t.Fatalf("unexpected diff (+got/-want):\n%s", diff)
	}
}

func TestRunTestEngine(t *testing.T) {
	got, err := RunTestEngine[int](context.Background(), double{}, 5, 7)
	if err != nil {
		t.Fatal(err)
	}
	want := []int{10, 14}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected diff (+got/-want):\n%s", diff)
	}
}

func TestPushCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ch := make(chan int)
	if err := Push(ctx, ch, 1); err == nil {
		t.Error("push on a canceled context must fail")
	}
}
