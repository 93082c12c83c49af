package cpr

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Source generates elements.
type Source[T any] interface {
	Source(context.Context, chan<- T) error
}

// Processor processes elements.
type Processor[T any] interface {
	Process(context.Context, <-chan T, chan<- T) error
}

// Sink consumes elements.
type Sink[T any] interface {
	Sink(context.Context, <-chan T) error
}

// Engine processes a pipeline.
type Engine[T any] struct {
	Source     Source[T]
	Sink       Sink[T]
	Processors []Processor[T]
}

const bufSize = 100

// Add adds a processor.
func (eng *Engine[T]) Add(pr Processor[T]) *Engine[T] {
	eng.Processors = append(eng.Processors, pr)
	return eng
}

// Process processes the pipeline in the engine.
func (eng *Engine[T]) Process(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	ch := make(chan T, bufSize)
	{
		outCh := ch
		g.Go(func() error {
			defer close(outCh)
			return eng.Source.Source(ctx, outCh)
		})
	}
	for _, pr := range eng.Processors {
		pr, inCh, outCh := pr, ch, make(chan T, bufSize)
		g.Go(func() error {
			defer close(outCh)
			return pr.Process(ctx, inCh, outCh)
		})
		ch = outCh
	}
	{
		inCh := ch
		g.Go(func() error {
			return eng.Sink.Sink(ctx, inCh)
		})
	}
	return g.Wait()
}

// Producer produces values.
type Producer[T any] struct {
	Items []T
}

// Source implements Source.
func (p *Producer[T]) Source(ctx context.Context, outCh chan<- T) error {
	return Push(ctx, outCh, p.Items...)
}

// Collector collects channel results into a slice.
type Collector[T any] struct {
	Result []T
}

// Sink implements Sink.
func (c *Collector[T]) Sink(ctx context.Context, inCh <-chan T) error {
	return Consume(ctx, inCh, func(t T) error {
		c.Result = append(c.Result, t)
		return nil
	})
}

// RunTestEngine runs the processor in a test engine.
func RunTestEngine[T any](ctx context.Context, pr Processor[T], ts ...T) ([]T, error) {
	sink := new(Collector[T])
	eng := &Engine[T]{
		Source:     &Producer[T]{Items: ts},
		Processors: []Processor[T]{pr},
		Sink:       sink,
	}
	if err := eng.Process(ctx); err != nil {
		return nil, err
	}
	return sink.Result, nil
}
