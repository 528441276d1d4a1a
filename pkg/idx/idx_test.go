package idx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewGeneratesUniqueSortedIDs(t *testing.T) {
	seen := make(map[ID]struct{})
	var prev ID

	for range 1000 {
		id := New()
		require.False(t, id.IsZero())
		require.Len(t, id.String(), 26)

		_, dup := seen[id]
		require.False(t, dup, "duplicate ID %s", id)
		seen[id] = struct{}{}

		// Monotonic entropy keeps same-millisecond IDs ordered.
		require.Less(t, prev.String(), id.String())
		prev = id
	}
}

func TestParse(t *testing.T) {
	t.Run("round trips a generated ID", func(t *testing.T) {
		id := New()
		parsed, err := Parse(id.String())
		require.NoError(t, err)
		require.Equal(t, id, parsed)
	})

	t.Run("trims whitespace", func(t *testing.T) {
		id := New()
		parsed, err := Parse("  " + id.String() + "\n")
		require.NoError(t, err)
		require.Equal(t, id, parsed)
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		for _, bad := range []string{"", "not-a-ulid", "0000", "ILOU0000000000000000000000"} {
			_, err := Parse(bad)
			require.ErrorIs(t, err, ErrInvalid)
		}
	})
}

func TestIDTime(t *testing.T) {
	before := time.Now().UTC().Truncate(time.Millisecond)
	id := New()
	after := time.Now().UTC()

	got := id.Time()
	require.False(t, got.Before(before))
	require.False(t, got.After(after))

	require.True(t, Zero.Time().IsZero())
}
