package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/lockin/ledger"
)

func TestParseSince(t *testing.T) {
	cases := []string{
		"yesterday",
		"2 weeks ago",
		"30 mins ago",
	}

	for _, input := range cases {
		t.Run(input, func(t *testing.T) {
			got, err := parseSince(input)
			require.NoError(t, err)

			assert.True(t, got.Before(time.Now()))
		})
	}

	_, err := parseSince("not a date at all %%")
	assert.Error(t, err)
}

func TestFilterSince(t *testing.T) {
	base := time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC)

	records := []ledger.Record{
		{
			Kind: ledger.KindBreak,
			Break: &ledger.BreakRecord{
				ID:        "b1",
				StartTime: base.Add(2 * time.Hour),
			},
		},
		{
			Kind: ledger.KindSession,
			Session: &ledger.SessionRecord{
				ID:        "s1",
				StartTime: base.Add(time.Hour),
			},
		},
		{
			Kind: ledger.KindSession,
			Session: &ledger.SessionRecord{
				ID:        "s2",
				StartTime: base.Add(-time.Hour),
			},
		},
	}

	filtered := filterSince(records, base)

	require.Len(t, filtered, 2)
	assert.Equal(t, "b1", filtered[0].ID())
	assert.Equal(t, "s1", filtered[1].ID())
}
