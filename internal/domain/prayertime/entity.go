// internal/domain/prayertime/entity.go
package prayertime

import (
	"errors"
	"strings"
	"time"

	"github.com/anarefin/prayer-time/internal/domain/common"
)

// Collection is the prayer_times collection name.
const Collection = "prayer_times"

// DateLayout is the stored date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

var ErrInvalidMosque = errors.New("prayertime: invalid mosqueId")

// Times holds the clock strings for one day. Jummah is empty except on Fridays.
type Times struct {
	Fajr    string
	Dhuhr   string
	Asr     string
	Maghrib string
	Isha    string
	Jummah  string
}

// PrayerTime is one mosque's schedule for one date.
type PrayerTime struct {
	MosqueID string
	Date     string
	Times
}

// New binds generated times to a mosque and date.
func New(mosqueID string, date time.Time, t Times) (PrayerTime, error) {
	id := strings.TrimSpace(mosqueID)
	if id == "" {
		return PrayerTime{}, ErrInvalidMosque
	}
	return PrayerTime{MosqueID: id, Date: FormatDate(date), Times: t}, nil
}

// ID returns the composite document id.
func (p PrayerTime) ID() string {
	return DocID(p.MosqueID, p.Date)
}

// Doc returns the stored field map; jummah is only written when set.
func (p PrayerTime) Doc() common.Fields {
	f := common.Fields{
		"mosqueId": p.MosqueID,
		"date":     p.Date,
		"fajr":     p.Fajr,
		"dhuhr":    p.Dhuhr,
		"asr":      p.Asr,
		"maghrib":  p.Maghrib,
		"isha":     p.Isha,
	}
	if p.Jummah != "" {
		f["jummah"] = p.Jummah
	}
	return f
}

// DocID builds "<mosqueId>_<YYYY-MM-DD>".
func DocID(mosqueID, date string) string {
	return mosqueID + "_" + date
}

// FormatDate formats t in its own location as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Window returns days consecutive calendar dates starting at start's local midnight.
func Window(start time.Time, days int) []time.Time {
	if days <= 0 {
		return nil
	}
	y, m, d := start.Date()
	first := time.Date(y, m, d, 0, 0, 0, 0, start.Location())
	out := make([]time.Time, 0, days)
	for i := 0; i < days; i++ {
		out = append(out, first.AddDate(0, 0, i))
	}
	return out
}
