package rotation

import (
	"errors"
	"math/rand/v2"

	"eyecare/internal/core/model"
)

// ErrNoMessages indicates an empty message set, which is a configuration error.
var ErrNoMessages = errors.New("rotation: no messages configured")

// Next picks the message to show and returns the advanced cursor.
// Unrecognized modes behave like sequential. A nil rng uses the global source.
func Next(mode model.Mode, messages []string, cursor int, rng *rand.Rand) (string, int, error) {
	if len(messages) == 0 {
		return "", cursor, ErrNoMessages
	}
	if mode == model.ModeSingle || len(messages) == 1 {
		return messages[0], cursor, nil
	}
	if cursor < 0 {
		cursor = 0
	}

	switch mode {
	case model.ModeRandom:
		var index int
		if rng != nil {
			index = rng.IntN(len(messages))
		} else {
			index = rand.IntN(len(messages))
		}
		return messages[index], cursor + 1, nil
	default:
		return messages[cursor%len(messages)], cursor + 1, nil
	}
}
