package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("1999-10-31")
	require.NoError(t, err)
	assert.Equal(t, NewDate(1999, time.October, 31), d)

	_, err = ParseDate("31.10.1999")
	assert.Error(t, err)

	_, err = ParseDate("1999-13-01")
	assert.Error(t, err)
}

func TestDateJSON(t *testing.T) {
	data, err := json.Marshal(NewDate(1967, time.March, 25))
	require.NoError(t, err)
	assert.Equal(t, `"1967-03-25"`, string(data))

	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"1967-03-25"`), &d))
	assert.Equal(t, "1967-03-25", d.String())

	require.NoError(t, json.Unmarshal([]byte(`null`), &d))
	assert.True(t, d.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`"soon"`), &d))
}

func TestDateScan(t *testing.T) {
	var d Date

	require.NoError(t, d.Scan(time.Date(2001, 1, 2, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2001-01-02", d.String())

	require.NoError(t, d.Scan("2002-03-04"))
	assert.Equal(t, "2002-03-04", d.String())

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	assert.Error(t, d.Scan(42))
}
