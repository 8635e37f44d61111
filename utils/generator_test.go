package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateEnrollmentIDFormat(t *testing.T) {
	now := time.Date(2026, 3, 5, 10, 30, 0, 0, time.UTC)

	id, err := GenerateEnrollmentID(now, func(string) (bool, error) { return false, nil })

	require.NoError(t, err)
	assert.Regexp(t, `^ENRL-20260305-\d{3}$`, id)
}

func TestGenerateEnrollmentIDRerollsOnCollision(t *testing.T) {
	now := time.Date(2026, 3, 5, 10, 30, 0, 0, time.UTC)

	taken := map[string]bool{}
	first := true
	id, err := GenerateEnrollmentID(now, func(candidate string) (bool, error) {
		if first {
			first = false
			taken[candidate] = true
			return true, nil
		}
		return taken[candidate], nil
	})

	require.NoError(t, err)
	assert.False(t, taken[id], "returned ID must not be a taken one")
	assert.Regexp(t, `^ENRL-20260305-\d{3}$`, id)
}

func TestGenerateEnrollmentIDPropagatesLookupError(t *testing.T) {
	boom := errors.New("db unreachable")

	_, err := GenerateEnrollmentID(time.Now(), func(string) (bool, error) { return false, boom })

	assert.ErrorIs(t, err, boom)
}

func TestGenerateEnrollmentIDGivesUpWhenExhausted(t *testing.T) {
	_, err := GenerateEnrollmentID(time.Now(), func(string) (bool, error) { return true, nil })

	assert.Error(t, err)
}
