// Package evaluate drives online evaluation loops. Progressive validation
// scores each sample before learning from it, so every prediction is made on
// data the model has not seen yet.
package evaluate

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/Bantey17/river/compose"
	"github.com/Bantey17/river/drift"
	"github.com/Bantey17/river/metrics"
	"github.com/Bantey17/river/pkg/errors"
	"github.com/Bantey17/river/pkg/log"
	"github.com/Bantey17/river/stream"
)

// Option configures a Progressive run.
type Option func(*config)

type config struct {
	logEvery  int64
	logger    *slog.Logger
	detector  *drift.DDM
	tolerance float64
}

// WithLogEvery logs the running metric score every n samples. n <= 0 disables
// progress logging.
func WithLogEvery(n int64) Option {
	return func(c *config) { c.logEvery = n }
}

// WithLogger routes progress logs to the given logger instead of the default.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithDriftDetector feeds each observation's outcome into the detector: a
// prediction within tolerance of the true value counts as correct. Detected
// drifts are logged and counted in the result.
func WithDriftDetector(d *drift.DDM, tolerance float64) Option {
	return func(c *config) {
		c.detector = d
		c.tolerance = tolerance
	}
}

// Result summarizes a Progressive run.
type Result struct {
	Samples int64
	Score   float64
	Drifts  int
	Elapsed time.Duration
}

// Progressive runs progressive validation: for each sample the pipeline first
// predicts, the metric folds in the (true, predicted) pair, and only then does
// the pipeline learn from the sample. The loop stops when the iterator is
// exhausted or the context is canceled.
func Progressive(ctx context.Context, it stream.Iterator, p *compose.Pipeline, m metrics.Metric, opts ...Option) (Result, error) {
	cfg := config{logEvery: 0, logger: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}
	logger := cfg.logger.With(
		slog.String(log.ComponentKey, log.ComponentEvaluate),
		slog.String(log.MetricNameKey, m.Name()),
	)

	start := time.Now()
	var n int64
	var drifts int
	fail := func(err error) (Result, error) {
		return Result{Samples: n, Score: m.Get(), Drifts: drifts, Elapsed: time.Since(start)}, err
	}
	for {
		if err := ctx.Err(); err != nil {
			return fail(errors.Wrap(err, "progressive validation interrupted"))
		}

		s, ok, err := it.Next()
		if err != nil {
			return fail(errors.Wrap(err, "reading sample"))
		}
		if !ok {
			break
		}

		yPred, err := p.PredictOne(s.X)
		if err != nil {
			return fail(errors.Wrapf(err, "predicting sample %d", n))
		}
		m.Update(s.Y, yPred)

		if cfg.detector != nil {
			st := cfg.detector.Update(math.Abs(s.Y-yPred) <= cfg.tolerance)
			if st.Level == drift.LevelDrift {
				drifts++
				logger.Warn("concept drift detected",
					slog.Int64(log.SamplesKey, n),
					slog.Float64("drift.error_rate", st.ErrorRate),
				)
			}
		}

		if err := p.LearnOne(s.X, s.Y); err != nil {
			return fail(errors.Wrapf(err, "learning sample %d", n))
		}
		n++

		if cfg.logEvery > 0 && n%cfg.logEvery == 0 {
			logger.Info("progressive validation checkpoint",
				slog.Int64(log.SamplesKey, n),
				slog.Float64(log.MetricValueKey, m.Get()),
				slog.Float64(log.ThroughputKey, throughput(n, time.Since(start))),
			)
		}
	}

	elapsed := time.Since(start)
	if cfg.logEvery > 0 {
		logger.Info("progressive validation finished",
			slog.Int64(log.SamplesKey, n),
			slog.Float64(log.MetricValueKey, m.Get()),
			slog.Int64(log.DurationMsKey, elapsed.Milliseconds()),
		)
	}
	return Result{Samples: n, Score: m.Get(), Drifts: drifts, Elapsed: elapsed}, nil
}

func throughput(n int64, d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return float64(n) / d.Seconds()
}
