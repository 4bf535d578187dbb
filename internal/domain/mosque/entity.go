// internal/domain/mosque/entity.go
package mosque

import (
	"errors"
	"strings"

	"github.com/anarefin/prayer-time/internal/domain/common"
)

// Collection is the mosques collection name.
const Collection = "mosques"

var (
	ErrInvalidName = errors.New("mosque: invalid name")
	ErrInvalidArea = errors.New("mosque: invalid areaId")
)

// Facilities are the boolean amenity flags shown in the app.
type Facilities struct {
	HasWomenPrayer         bool `json:"hasWomenPrayer"`
	HasCarParking          bool `json:"hasCarParking"`
	HasBikeParking         bool `json:"hasBikeParking"`
	HasCycleParking        bool `json:"hasCycleParking"`
	HasWudu                bool `json:"hasWudu"`
	HasAC                  bool `json:"hasAC"`
	IsWheelchairAccessible bool `json:"isWheelchairAccessible"`
	HasChairPrayer         bool `json:"hasChairPrayer"`
}

// Mosque is the persisted mosque record.
type Mosque struct {
	Name        string
	Address     string
	AreaID      string
	Latitude    float64
	Longitude   float64
	Facilities  Facilities
	Description string
}

// FixtureMosque is a mosque as listed in the source fixture, keyed to its area by name.
type FixtureMosque struct {
	Name        string  `json:"name"`
	Address     string  `json:"address"`
	AreaName    string  `json:"areaName"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Description string  `json:"description"`
	Facilities
}

// Bind resolves the fixture entry to a Mosque under the given area id.
// The area name itself is not persisted.
func (f FixtureMosque) Bind(areaID string) (Mosque, error) {
	m := Mosque{
		Name:        strings.TrimSpace(f.Name),
		Address:     strings.TrimSpace(f.Address),
		AreaID:      strings.TrimSpace(areaID),
		Latitude:    f.Latitude,
		Longitude:   f.Longitude,
		Facilities:  f.Facilities,
		Description: f.Description,
	}
	if m.Name == "" {
		return Mosque{}, ErrInvalidName
	}
	if m.AreaID == "" {
		return Mosque{}, ErrInvalidArea
	}
	return m, nil
}

// Doc returns the stored field map.
func (m Mosque) Doc() common.Fields {
	return common.Fields{
		"name":                   m.Name,
		"address":                m.Address,
		"areaId":                 m.AreaID,
		"latitude":               m.Latitude,
		"longitude":              m.Longitude,
		"hasWomenPrayer":         m.Facilities.HasWomenPrayer,
		"hasCarParking":          m.Facilities.HasCarParking,
		"hasBikeParking":         m.Facilities.HasBikeParking,
		"hasCycleParking":        m.Facilities.HasCycleParking,
		"hasWudu":                m.Facilities.HasWudu,
		"hasAC":                  m.Facilities.HasAC,
		"isWheelchairAccessible": m.Facilities.IsWheelchairAccessible,
		"hasChairPrayer":         m.Facilities.HasChairPrayer,
		"description":            m.Description,
	}
}
