package prediction

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeuristicEngine_BigramAfterSpace(t *testing.T) {
	e := NewHeuristicEngine()

	predictions := e.Predict(context.Background(), Request{
		CurrentText: "the ",
		Cursor:      4,
	})

	require.NotEmpty(t, predictions)
	assert.Equal(t, "quick", predictions[0])
}

func TestHeuristicEngine_PartialWordCompletion(t *testing.T) {
	e := NewHeuristicEngine()

	predictions := e.Predict(context.Background(), Request{
		CurrentText: "I am typ",
		Cursor:      8,
	})

	require.NotEmpty(t, predictions)
	assert.True(t, strings.HasPrefix("typ"+predictions[0], "typ"))
	assert.NotContains(t, predictions[0], " typ")
}

func TestHeuristicEngine_SpacePrefixMidWordBoundary(t *testing.T) {
	e := NewHeuristicEngine()

	// Cursor sits right after "the" with more text following. Inserting
	// any prediction must not glue words together.
	text := "the next"
	predictions := e.Predict(context.Background(), Request{
		CurrentText: text,
		Cursor:      3,
	})

	for _, p := range predictions {
		inserted := text[:3] + p + text[3:]
		assert.NotContains(t, inserted, "  ")
		parts := strings.Fields(inserted)
		assert.GreaterOrEqual(t, len(parts), 2)
	}
}

func TestHeuristicEngine_BlankBeforeCursor(t *testing.T) {
	e := NewHeuristicEngine()

	assert.Empty(t, e.Predict(context.Background(), Request{CurrentText: "   ", Cursor: 2}))
	assert.Empty(t, e.Predict(context.Background(), Request{CurrentText: "", Cursor: 0}))
}

func TestHeuristicEngine_CursorClamped(t *testing.T) {
	e := NewHeuristicEngine()

	predictions := e.Predict(context.Background(), Request{
		CurrentText: "the ",
		Cursor:      999,
	})

	require.NotEmpty(t, predictions)
	assert.Equal(t, "quick", predictions[0])
}

func TestHeuristicEngine_QuestionContext(t *testing.T) {
	e := NewHeuristicEngine()

	predictions := e.Predict(context.Background(), Request{
		CurrentText: "what happened ",
		Cursor:      14,
	})

	require.NotEmpty(t, predictions)
	assert.Contains(t, predictions[0], "answer")
}

func TestHeuristicEngine_RespectsLimit(t *testing.T) {
	e := NewHeuristicEngine()

	predictions := e.Predict(context.Background(), Request{
		CurrentText:    "the ",
		Cursor:         4,
		MaxPredictions: 2,
	})

	assert.Len(t, predictions, 2)
}

func TestFrequencyEngine_SeededBigram(t *testing.T) {
	e := NewFrequencyEngine()

	predictions := e.Predict(context.Background(), Request{
		CurrentText: "the quick brown ",
		Cursor:      16,
	})

	require.NotEmpty(t, predictions)
	assert.Equal(t, "fox", predictions[0])
}

func TestFrequencyEngine_Learns(t *testing.T) {
	e := NewFrequencyEngine()
	for range 5 {
		e.Learn("distributed consensus protocol")
	}

	predictions := e.Predict(context.Background(), Request{
		CurrentText: "distributed consensus ",
		Cursor:      22,
	})

	require.NotEmpty(t, predictions)
	assert.Equal(t, "protocol", predictions[0])
}

func TestFrequencyEngine_SpaceSynthesis(t *testing.T) {
	e := NewFrequencyEngine()

	predictions := e.Predict(context.Background(), Request{
		CurrentText: "the quick",
		Cursor:      9,
	})

	require.NotEmpty(t, predictions)
	assert.True(t, strings.HasPrefix(predictions[0], " "))
}

func TestRegistry_DefaultAndAliases(t *testing.T) {
	r := NewRegistry()

	assert.Equal(t, 2, r.Count())
	assert.Equal(t, []string{"frequency", "heuristic"}, r.Names())
	assert.Equal(t, "heuristic", r.Get("").Name())
	assert.Equal(t, "heuristic", r.Get("traditional").Name())
	assert.Nil(t, r.Get("transformer"))
}

func TestRegistry_SetDefault(t *testing.T) {
	r := NewRegistry()

	assert.True(t, r.SetDefault("frequency"))
	assert.Equal(t, "frequency", r.Get("").Name())

	assert.True(t, r.SetDefault("traditional"))
	assert.Equal(t, "heuristic", r.Get("").Name())

	assert.False(t, r.SetDefault("transformer"))
	assert.Equal(t, "heuristic", r.Get("").Name())
}
