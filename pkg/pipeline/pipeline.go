// Package pipeline chains table transformations with a fit/transform split:
// stateful steps learn their parameters from training data once and replay
// them on any later table.
package pipeline

import (
	"fmt"

	"dskit/pkg/logger"
	"dskit/pkg/table"
)

// Transformer interface for fit/transform pattern.
type Transformer interface {
	Fit(t *table.Table) error
	Transform(t *table.Table) (*table.Table, error)
}

// Pipeline chains multiple transformers.
type Pipeline struct {
	steps []Transformer
	log   logger.Logger
}

func NewPipeline(steps ...Transformer) *Pipeline {
	return &Pipeline{steps: steps, log: logger.Nop()}
}

// WithLogger sets the logger used to trace steps at debug level.
func (p *Pipeline) WithLogger(l logger.Logger) *Pipeline {
	p.log = l
	return p
}

// Steps returns the configured steps in order.
func (p *Pipeline) Steps() []Transformer {
	return append([]Transformer(nil), p.steps...)
}

// Fit fits each step on the output of the previous one and returns the fully
// transformed training table.
func (p *Pipeline) Fit(t *table.Table) (*table.Table, error) {
	for i, step := range p.steps {
		if err := step.Fit(t); err != nil {
			return nil, fmt.Errorf("step %d (%s): fit: %w", i, name(step), err)
		}
		out, err := step.Transform(t)
		if err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i, name(step), err)
		}
		p.log.Debug("fitted step", "step", name(step), "columns", out.NumCols())
		t = out
	}
	return t, nil
}

// Transform replays the fitted steps on t.
func (p *Pipeline) Transform(t *table.Table) (*table.Table, error) {
	for i, step := range p.steps {
		out, err := step.Transform(t)
		if err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i, name(step), err)
		}
		t = out
	}
	return t, nil
}

func name(step Transformer) string {
	if s, ok := step.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", step)
}
