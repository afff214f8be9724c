package cli

import (
	"testing"

	"github.com/alexanderramin/encore/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchID(t *testing.T) {
	ids := []string{"abc12345-0000", "abd99999-0000", "ffff0000-1111"}

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr string
	}{
		{"exact", "ffff0000-1111", "ffff0000-1111", ""},
		{"unique prefix", "abc", "abc12345-0000", ""},
		{"case insensitive", "FFFF", "ffff0000-1111", ""},
		{"ambiguous", "ab", "", "ambiguous (2 matches)"},
		{"no match", "zz", "", "no task matches"},
		{"empty", " ", "", "task ID is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := matchID("task", tt.input, ids)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestShortRef(t *testing.T) {
	assert.Equal(t, "abcdef12", shortRef("abcdef12-3456"))
	assert.Equal(t, "abc", shortRef("abc"))
}

func TestDecimalValue(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"1200.50", "1200.5", false},
		{"$1,200.50", "1200.5", false},
		{"€35", "35", false},
		{"-4", "-4", false},
		{"lots", "", true},
		{"", "", true},
		{"1e2000000000", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var d decimal.Decimal
			err := newDecimalValue(&d).Set(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, d.Equal(testutil.Dec(tt.want)), "got %s", d)
		})
	}
}

func TestParseOptionalDate(t *testing.T) {
	d, err := parseOptionalDate("date", "")
	require.NoError(t, err)
	assert.True(t, d.IsZero())

	d, err = parseOptionalDate("date", "2025-04-01")
	require.NoError(t, err)
	assert.Equal(t, testutil.Day(2025, 4, 1), d)

	_, err = parseOptionalDate("date", "April 1")
	require.Error(t, err)
}

func TestValidateOptionalAmount(t *testing.T) {
	assert.NoError(t, validateOptionalAmount(""))
	assert.NoError(t, validateOptionalAmount("1,000"))
	assert.Error(t, validateOptionalAmount("ten"))
}

func TestSourceOptions_IncludesConfiguredLabels(t *testing.T) {
	opts := sourceOptions(map[string]string{"puppetry_fees": "Puppeteers"})

	var found bool
	for _, o := range opts {
		if o.Value == "puppetry_fees" {
			found = true
			assert.Equal(t, "Puppeteers", o.Key)
		}
	}
	assert.True(t, found)
	assert.Len(t, opts, 28)
}
