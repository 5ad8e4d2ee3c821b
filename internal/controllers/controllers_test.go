package controllers

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestLooseNumber(t *testing.T) {
	tests := []struct {
		in    string
		float float64
		id    uint
	}{
		{`12`, 12, 12},
		{`"12"`, 12, 12},
		{`" 7 "`, 7, 7},
		{`""`, 0, 0},
		{`null`, 0, 0},
		{`1500.5`, 1500.5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var n looseNumber
			require.NoError(t, json.Unmarshal([]byte(tt.in), &n))
			assert.Equal(t, tt.float, n.Float())
			if tt.id > 0 || n == "" {
				id, err := n.Uint()
				require.NoError(t, err)
				assert.Equal(t, tt.id, id)
			}
		})
	}
}

func TestLooseNumberRejectsText(t *testing.T) {
	var n looseNumber
	assert.Error(t, json.Unmarshal([]byte(`"twelve"`), &n))
	assert.Error(t, json.Unmarshal([]byte(`true`), &n))
	for _, raw := range []string{`"NaN"`, `"Inf"`, `"-Inf"`, `"+Inf"`, `"infinity"`} {
		assert.Error(t, json.Unmarshal([]byte(raw), &n), raw)
	}

	n = "1.5"
	_, err := n.Uint()
	assert.Error(t, err)
}

func TestLooseNumberInt(t *testing.T) {
	for raw, want := range map[looseNumber]int{"": 0, "2": 2, "-3": -3, "2147483647": 2147483647} {
		got, err := raw.Int()
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}
	for _, raw := range []looseNumber{"2.7", "1e3", "2147483648", "-2147483649"} {
		_, err := raw.Int()
		assert.Error(t, err, raw)
	}
}

func TestLooseNumberAmount(t *testing.T) {
	got, err := looseNumber("1500.25").Amount()
	require.NoError(t, err)
	assert.Equal(t, 1500.25, got)

	got, err = looseNumber("").Amount()
	require.NoError(t, err)
	assert.Zero(t, got)

	for _, raw := range []looseNumber{"1e10", "-1e10", "1e300"} {
		_, err := raw.Amount()
		assert.Error(t, err, raw)
	}
}

func TestCheckPassword(t *testing.T) {
	hash, err := hashPassword("s3cret")
	require.NoError(t, err)
	assert.True(t, isBcryptHash(hash))
	assert.True(t, checkPassword(hash, "s3cret"))
	assert.False(t, checkPassword(hash, "wrong"))

	// rows created before hashing
	assert.False(t, isBcryptHash("s3cret"))
	assert.True(t, checkPassword("s3cret", "s3cret"))
	assert.False(t, checkPassword("s3cret", "S3cret"))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pq.Error{Code: "23505"}))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", &pq.Error{Code: "23505"})))
	assert.True(t, isUniqueViolation(gorm.ErrDuplicatedKey))
	assert.False(t, isUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, isUniqueViolation(gorm.ErrRecordNotFound))
}

func TestParseID(t *testing.T) {
	id, err := parseID(" 42 ")
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)

	for _, raw := range []string{"", "-1", "abc", "4.2"} {
		_, err := parseID(raw)
		assert.Error(t, err, raw)
	}
}
