package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	t.Run("HH:MM", func(t *testing.T) {
		ts, err := NewTimeStringFromString("09:30")
		require.NoError(t, err)
		assert.Equal(t, "09:30", ts.String())
		assert.NoError(t, ts.Validate())
	})

	t.Run("postgres TIME with seconds", func(t *testing.T) {
		ts, err := NewTimeStringFromString("18:05:00")
		require.NoError(t, err)
		assert.Equal(t, "18:05", ts.String())
	})

	t.Run("invalid values", func(t *testing.T) {
		for _, s := range []string{"", "25:00", "9h30", "12:60"} {
			_, err := NewTimeStringFromString(s)
			assert.ErrorIs(t, err, ErrInvalidTimeString, s)
		}
	})
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan([]byte("10:15:00")))
	assert.Equal(t, "10:15", ts.String())

	require.NoError(t, ts.Scan(time.Date(0, 1, 1, 7, 45, 12, 0, time.UTC)))
	assert.Equal(t, "07:45", ts.String())

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}

func TestTimeString_On(t *testing.T) {
	ts, err := NewTimeStringFromString("14:20")
	require.NoError(t, err)

	date := time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 3, 8, 14, 20, 0, 0, time.UTC), ts.On(date))
}

func TestTimeString_JSON(t *testing.T) {
	var ts TimeString
	require.NoError(t, ts.UnmarshalJSON([]byte(`"11:00"`)))

	data, err := ts.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `"11:00"`, string(data))

	assert.Error(t, ts.UnmarshalJSON([]byte(`"11-00"`)))
}
