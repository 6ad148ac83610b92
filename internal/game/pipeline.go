package game

import (
	"context"

	"github.com/samdwyer/tilewalker/internal/input"
)

// Frame is the per-tick input to every stage.
type Frame struct {
	DT    float64 // Seconds since the last tick, never negative
	Input input.Source
}

// StageFunc runs one stage for one frame.
type StageFunc func(ctx context.Context, f Frame)

type stage struct {
	name  string
	modes []Mode // Empty means every mode
	run   StageFunc
}

// Pipeline runs named stages in insertion order, each gated by mode.
// The gate is checked as each stage is reached, so a stage sees any mode
// change made earlier in the same frame.
type Pipeline struct {
	modes  ModeReader
	stages []stage
}

// NewPipeline creates an empty pipeline gated on modes.
func NewPipeline(modes ModeReader) *Pipeline {
	return &Pipeline{modes: modes}
}

// Add appends a stage. With no modes given the stage always runs.
func (p *Pipeline) Add(name string, run StageFunc, modes ...Mode) {
	p.stages = append(p.stages, stage{name: name, modes: modes, run: run})
}

// Run executes one frame.
func (p *Pipeline) Run(ctx context.Context, f Frame) {
	for _, s := range p.stages {
		if s.activeIn(p.modes.Mode()) {
			s.run(ctx, f)
		}
	}
}

// Names returns the stage names in run order.
func (p *Pipeline) Names() []string {
	names := make([]string, len(p.stages))
	for i, s := range p.stages {
		names[i] = s.name
	}
	return names
}

func (s stage) activeIn(m Mode) bool {
	if len(s.modes) == 0 {
		return true
	}
	for _, allowed := range s.modes {
		if allowed == m {
			return true
		}
	}
	return false
}
