package prayertime

import (
	"math/rand/v2"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var clockRe = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

func TestFormatClock(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "00:00"},
		{5*60 + 10, "05:10"},
		{23*60 + 59, "23:59"},
		{24 * 60, "00:00"},
		{24*60 + 14, "00:14"},
		{-1, "23:59"},
		{-15, "23:45"},
		{3 * 24 * 60, "00:00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatClock(tt.in), "FormatClock(%d)", tt.in)
	}
}

func TestGenerator_TimesMatchClockPattern(t *testing.T) {
	g := NewGenerator(DhakaBase, UniformJitter(rand.New(rand.NewPCG(1, 2))))
	day := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 400; i++ {
		tm := g.Times(day.AddDate(0, 0, i))
		for _, s := range []string{tm.Fajr, tm.Dhuhr, tm.Asr, tm.Maghrib, tm.Isha} {
			require.Regexp(t, clockRe, s)
		}
		if tm.Jummah != "" {
			require.Regexp(t, clockRe, tm.Jummah)
		}
	}
}

func TestGenerator_WrapsAtMidnight(t *testing.T) {
	base := BaseTable{
		Fajr:    Clock{0, 5},
		Dhuhr:   Clock{23, 55},
		Asr:     Clock{0, 0},
		Maghrib: Clock{23, 59},
		Isha:    Clock{12, 0},
		Jummah:  Clock{13, 0},
	}

	minus := NewGenerator(base, func() int { return -MaxJitter })
	tm := minus.Times(time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "23:50", tm.Fajr)
	assert.Equal(t, "23:40", tm.Dhuhr)
	assert.Equal(t, "23:45", tm.Asr)

	plus := NewGenerator(base, func() int { return MaxJitter })
	tm = plus.Times(time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "00:10", tm.Dhuhr)
	assert.Equal(t, "00:14", tm.Maghrib)
}

func TestGenerator_JummahOnlyOnFriday(t *testing.T) {
	g := NewGenerator(DhakaBase, NoJitter)
	monday := time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 14; i++ {
		d := monday.AddDate(0, 0, i)
		tm := g.Times(d)
		if d.Weekday() == time.Friday {
			assert.Equal(t, "13:00", tm.Jummah, d.Format(DateLayout))
		} else {
			assert.Empty(t, tm.Jummah, d.Format(DateLayout))
		}
	}
}

func TestGenerator_JitterBounds(t *testing.T) {
	j := UniformJitter(rand.New(rand.NewPCG(42, 7)))
	seen := map[int]bool{}
	for i := 0; i < 5000; i++ {
		v := j()
		require.GreaterOrEqual(t, v, -MaxJitter)
		require.LessOrEqual(t, v, MaxJitter)
		seen[v] = true
	}
	assert.Len(t, seen, 2*MaxJitter+1)
}

func TestGenerator_NoJitterReturnsBase(t *testing.T) {
	g := NewGenerator(DhakaBase, NoJitter)
	tm := g.Times(time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)) // Friday

	assert.Equal(t, Times{
		Fajr:    "05:10",
		Dhuhr:   "12:20",
		Asr:     "16:10",
		Maghrib: "18:05",
		Isha:    "19:25",
		Jummah:  "13:00",
	}, tm)
}
