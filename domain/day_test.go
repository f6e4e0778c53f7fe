package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reviewcrew/review-engine/domain"
)

func TestDay_JSONRoundTrip(t *testing.T) {
	d := domain.NewDay(2026, time.March, 2)

	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2026-03-02"`, string(raw))

	var back domain.Day
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.True(t, back.Equal(d))
}

func TestDay_DayOfTruncatesTime(t *testing.T) {
	at := time.Date(2026, time.March, 2, 19, 30, 12, 0, time.UTC)
	assert.True(t, domain.DayOf(at).Equal(domain.NewDay(2026, time.March, 2)))
}

func TestDay_Arithmetic(t *testing.T) {
	d := domain.NewDay(2026, time.February, 27)

	next := d.AddDays(3)
	assert.Equal(t, "2026-03-02", next.String(), "crosses the month boundary")
	assert.Equal(t, 3, domain.DaysBetween(d, next))
	assert.True(t, domain.Epoch().Before(d))
}

func TestDay_At(t *testing.T) {
	at := domain.NewDay(2026, time.March, 2).At(9, 30)
	assert.Equal(t, 9, at.Hour())
	assert.Equal(t, 30, at.Minute())
	assert.Equal(t, time.UTC, at.Location())
}

func TestMultiplierTable_LookupFallback(t *testing.T) {
	table := domain.DefaultMultipliers()

	assert.Equal(t, "10", table.Lookup(10).String())
	assert.Equal(t, "1", domain.MultiplierTable{}.Lookup(5).String(), "missing level falls back to 1")
}

func TestMultiplierTable_Validate(t *testing.T) {
	assert.NoError(t, domain.DefaultMultipliers().Validate())
	assert.ErrorIs(t, domain.MultiplierTable{-1: domain.DefaultMultipliers().Lookup(0)}.Validate(), domain.ErrTierOutOfRange)
}
