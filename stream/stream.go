// Package stream provides data sources that emit one labeled observation at
// a time. A pipeline pulls samples from an Iterator and is never handed the
// whole dataset at once.
package stream

import (
	"context"

	"github.com/Bantey17/river/core/feature"
)

// Sample is one labeled observation.
type Sample struct {
	X feature.Record
	Y float64
}

// Iterator yields samples until the source is exhausted.
type Iterator interface {
	// Next returns the next sample. ok is false when the source has no more
	// samples; err reports a source failure.
	Next() (s Sample, ok bool, err error)
}

type sliceIterator struct {
	samples []Sample
	pos     int
}

// FromSlice returns an Iterator over an in-memory slice. The slice is read in
// order and is not copied.
func FromSlice(samples []Sample) Iterator {
	return &sliceIterator{samples: samples}
}

func (it *sliceIterator) Next() (Sample, bool, error) {
	if it.pos >= len(it.samples) {
		return Sample{}, false, nil
	}
	s := it.samples[it.pos]
	it.pos++
	return s, true, nil
}

type channelIterator struct {
	ctx context.Context
	ch  <-chan Sample
}

// FromChannel returns an Iterator that drains samples from ch. Iteration ends
// when ch is closed, or with the context error when ctx is canceled first.
func FromChannel(ctx context.Context, ch <-chan Sample) Iterator {
	return &channelIterator{ctx: ctx, ch: ch}
}

func (it *channelIterator) Next() (Sample, bool, error) {
	select {
	case <-it.ctx.Done():
		return Sample{}, false, it.ctx.Err()
	case s, open := <-it.ch:
		if !open {
			return Sample{}, false, nil
		}
		return s, true, nil
	}
}

type zipIterator struct {
	xs  []feature.Record
	ys  []float64
	pos int
}

// Zip pairs parallel slices of records and targets into an Iterator. Iteration
// stops at the shorter of the two slices.
func Zip(xs []feature.Record, ys []float64) Iterator {
	return &zipIterator{xs: xs, ys: ys}
}

func (it *zipIterator) Next() (Sample, bool, error) {
	if it.pos >= len(it.xs) || it.pos >= len(it.ys) {
		return Sample{}, false, nil
	}
	s := Sample{X: it.xs[it.pos], Y: it.ys[it.pos]}
	it.pos++
	return s, true, nil
}
