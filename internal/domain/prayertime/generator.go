// internal/domain/prayertime/generator.go
package prayertime

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// MaxJitter is the largest offset, in minutes, applied to a base time in either direction.
const MaxJitter = 15

const minutesPerDay = 24 * 60

// Clock is a wall-clock time of day.
type Clock struct {
	Hour   int
	Minute int
}

// Minutes returns the minutes since midnight.
func (c Clock) Minutes() int {
	return c.Hour*60 + c.Minute
}

// BaseTable is the unperturbed daily schedule.
type BaseTable struct {
	Fajr    Clock
	Dhuhr   Clock
	Asr     Clock
	Maghrib Clock
	Isha    Clock
	Jummah  Clock
}

// DhakaBase is the approximate schedule for Dhaka.
var DhakaBase = BaseTable{
	Fajr:    Clock{5, 10},
	Dhuhr:   Clock{12, 20},
	Asr:     Clock{16, 10},
	Maghrib: Clock{18, 5},
	Isha:    Clock{19, 25},
	Jummah:  Clock{13, 0},
}

// Jitter returns a minute offset for one prayer.
type Jitter func() int

// UniformJitter draws independently and uniformly from [-MaxJitter, +MaxJitter].
// A nil source uses the process-wide generator.
func UniformJitter(src *rand.Rand) Jitter {
	if src == nil {
		return func() int { return rand.IntN(2*MaxJitter+1) - MaxJitter }
	}
	return func() int { return src.IntN(2*MaxJitter+1) - MaxJitter }
}

// NoJitter always returns zero.
func NoJitter() int { return 0 }

// Generator produces a day's prayer times from a base table.
type Generator struct {
	Base   BaseTable
	Jitter Jitter
}

// NewGenerator returns a Generator; a nil jitter means UniformJitter(nil).
func NewGenerator(base BaseTable, jitter Jitter) *Generator {
	if jitter == nil {
		jitter = UniformJitter(nil)
	}
	return &Generator{Base: base, Jitter: jitter}
}

// Times returns the schedule for date. Jummah is set only when date is a Friday.
func (g *Generator) Times(date time.Time) Times {
	t := Times{
		Fajr:    g.perturb(g.Base.Fajr),
		Dhuhr:   g.perturb(g.Base.Dhuhr),
		Asr:     g.perturb(g.Base.Asr),
		Maghrib: g.perturb(g.Base.Maghrib),
		Isha:    g.perturb(g.Base.Isha),
	}
	if date.Weekday() == time.Friday {
		t.Jummah = g.perturb(g.Base.Jummah)
	}
	return t
}

func (g *Generator) perturb(c Clock) string {
	return FormatClock(c.Minutes() + g.Jitter())
}

// FormatClock renders minutes since midnight as HH:MM, wrapping modulo 24 hours
// in both directions.
func FormatClock(total int) string {
	total = ((total % minutesPerDay) + minutesPerDay) % minutesPerDay
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
