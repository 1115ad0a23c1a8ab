package id

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		s := New()
		assert.Len(t, s, 26)
		assert.False(t, seen[s], "duplicate id %s", s)
		seen[s] = true
	}
}

func TestAtSortsByCreationTime(t *testing.T) {
	t0 := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	a := At(t0)
	b := At(t0)
	c := At(t0.Add(time.Second))

	assert.Less(t, a, b)
	assert.Less(t, b, c)
}

func TestTimeRoundTrip(t *testing.T) {
	t0 := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	got, err := Time(At(t0))
	require.NoError(t, err)
	assert.True(t, got.Equal(t0), "got %s", got)

	_, err = Time("not-a-ulid")
	assert.Error(t, err)
}
