package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		d, err := ParseDate("2024-01-01")
		require.NoError(t, err)
		assert.Equal(t, "2024-01-01", d.String())
	})

	t.Run("rejects other layouts", func(t *testing.T) {
		_, err := ParseDate("01/01/2024")
		require.Error(t, err)
	})
}

func TestDateOf(t *testing.T) {
	d := DateOf(time.Date(2024, 6, 15, 23, 45, 1, 0, time.UTC))
	assert.Equal(t, "2024-06-15", d.String())
}

func TestDateJSON(t *testing.T) {
	t.Run("encodes as date-only string", func(t *testing.T) {
		data, err := json.Marshal(NewDate(2024, time.January, 1))
		require.NoError(t, err)
		assert.Equal(t, `"2024-01-01"`, string(data))
	})

	t.Run("decodes null and empty as zero", func(t *testing.T) {
		var d Date
		require.NoError(t, json.Unmarshal([]byte(`null`), &d))
		assert.True(t, d.IsZero())
	})
}

func TestPalette(t *testing.T) {
	assert.Len(t, Colors, 12)
	assert.Len(t, Icons, 20)

	assert.True(t, ValidColor("#10B981"))
	assert.False(t, ValidColor("#10b981"), "palette membership is exact")
	assert.False(t, ValidColor("green"))

	assert.True(t, ValidIcon("Car"))
	assert.False(t, ValidIcon("car"))
	assert.False(t, ValidIcon(""))
}
