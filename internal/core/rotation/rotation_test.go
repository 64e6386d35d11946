package rotation

import (
	"math/rand/v2"
	"testing"

	"eyecare/internal/core/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextSequentialCycles(t *testing.T) {
	messages := []string{"A", "B", "C"}
	cursor := 0
	var got []string
	for i := 0; i < 7; i++ {
		var text string
		var err error
		text, cursor, err = Next(model.ModeSequential, messages, cursor, nil)
		require.NoError(t, err)
		got = append(got, text)
	}
	assert.Equal(t, []string{"A", "B", "C", "A", "B", "C", "A"}, got)
	assert.Equal(t, 7, cursor)
}

func TestNextUnknownModeFallsBackToSequential(t *testing.T) {
	text, cursor, err := Next(model.Mode("shuffle"), []string{"A", "B"}, 3, nil)
	require.NoError(t, err)
	assert.Equal(t, "B", text)
	assert.Equal(t, 4, cursor)
}

func TestNextSingle(t *testing.T) {
	t.Run("single mode", func(t *testing.T) {
		for i := 0; i < 5; i++ {
			text, cursor, err := Next(model.ModeSingle, []string{"A", "B", "C"}, i, nil)
			require.NoError(t, err)
			assert.Equal(t, "A", text)
			assert.Equal(t, i, cursor)
		}
	})

	t.Run("one message in any mode", func(t *testing.T) {
		for _, mode := range model.Modes {
			text, cursor, err := Next(mode, []string{"only"}, 2, nil)
			require.NoError(t, err)
			assert.Equal(t, "only", text)
			assert.Equal(t, 2, cursor)
		}
	})
}

func TestNextRandomCoversAllMessages(t *testing.T) {
	messages := []string{"A", "B", "C", "D"}
	rng := rand.New(rand.NewPCG(1, 2))
	seen := make(map[string]int)
	cursor := 0
	for i := 0; i < 1000; i++ {
		text, next, err := Next(model.ModeRandom, messages, cursor, rng)
		require.NoError(t, err)
		require.Contains(t, messages, text)
		seen[text]++
		cursor = next
	}
	assert.Len(t, seen, len(messages))
	assert.Equal(t, 1000, cursor)
}

func TestNextEmptyMessages(t *testing.T) {
	_, cursor, err := Next(model.ModeSequential, nil, 4, nil)
	require.ErrorIs(t, err, ErrNoMessages)
	assert.Equal(t, 4, cursor)
}
