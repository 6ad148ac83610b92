package game

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/samdwyer/tilewalker/internal/input"
)

func TestPipelineRunsStagesInOrderByMode(t *testing.T) {
	modes := NewModeRegister(ModeOverworld)
	p := NewPipeline(modes)

	var ran []string
	record := func(name string) StageFunc {
		return func(context.Context, Frame) { ran = append(ran, name) }
	}
	p.Add("a", record("a"), ModeOverworld)
	p.Add("b", record("b"), ModeCombat)
	p.Add("c", record("c"))
	p.Add("d", record("d"), ModeOverworld, ModeCombat)

	p.Run(context.Background(), Frame{Input: input.None{}})
	assert.Equal(t, []string{"a", "c", "d"}, ran)

	ran = nil
	modes.commit(context.Background(), ModeCombat)
	p.Run(context.Background(), Frame{Input: input.None{}})
	assert.Equal(t, []string{"b", "c", "d"}, ran)

	assert.Equal(t, []string{"a", "b", "c", "d"}, p.Names())
}

func TestPipelineGateSeesModeChangesWithinFrame(t *testing.T) {
	modes := NewModeRegister(ModeOverworld)
	p := NewPipeline(modes)

	var ran []string
	p.Add("switch", func(ctx context.Context, _ Frame) {
		ran = append(ran, "switch")
		modes.commit(ctx, ModeCombat)
	}, ModeOverworld)
	p.Add("after", func(context.Context, Frame) { ran = append(ran, "after") }, ModeOverworld)
	p.Add("combat", func(context.Context, Frame) { ran = append(ran, "combat") }, ModeCombat)

	p.Run(context.Background(), Frame{})
	assert.Equal(t, []string{"switch", "combat"}, ran)
}

func TestModeRegisterHooks(t *testing.T) {
	r := NewModeRegister(ModeOverworld)
	ctx := context.Background()

	var calls []string
	r.OnEnter(ModeOverworld, func(context.Context) { calls = append(calls, "enter overworld") })
	r.OnExit(ModeOverworld, func(context.Context) { calls = append(calls, "exit overworld") })
	r.OnEnter(ModeCombat, func(context.Context) { calls = append(calls, "enter combat") })
	r.OnExit(ModeCombat, func(context.Context) { calls = append(calls, "exit combat") })

	r.start(ctx)
	r.commit(ctx, ModeCombat)
	r.commit(ctx, ModeOverworld)

	assert.Equal(t, []string{
		"enter overworld",
		"exit overworld", "enter combat",
		"exit combat", "enter overworld",
	}, calls)
	assert.Equal(t, ModeOverworld, r.Mode())

	var reader ModeReader = r
	assert.Equal(t, ModeOverworld, reader.Mode())
}
