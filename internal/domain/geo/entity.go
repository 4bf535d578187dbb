// internal/domain/geo/entity.go
package geo

import (
	"errors"
	"strconv"
	"strings"

	"github.com/anarefin/prayer-time/internal/domain/common"
)

// Collection names.
const (
	DistrictsCollection = "districts"
	AreasCollection     = "areas"
)

// UnknownDivision is stored when a district's division id is not in the divisions table.
const UnknownDivision = "Unknown"

// ThanaOrderBase offsets thana ordering so they sort after upazilas.
const ThanaOrderBase = 9000

// AreaType distinguishes rural upazilas from urban thanas.
type AreaType string

const (
	AreaTypeUpazila AreaType = "upazila"
	AreaTypeThana   AreaType = "thana"
)

var (
	ErrInvalidName     = errors.New("geo: invalid name")
	ErrInvalidDistrict = errors.New("geo: invalid districtId")
)

// DivisionRow is a row of the divisions source table.
type DivisionRow struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	BnName string `json:"bn_name"`
	URL    string `json:"url"`
}

// DistrictRow is a row of the districts source table.
type DistrictRow struct {
	ID         string `json:"id"`
	DivisionID string `json:"division_id"`
	Name       string `json:"name"`
	BnName     string `json:"bn_name"`
	Lat        string `json:"lat"`
	Lon        string `json:"lon"`
	URL        string `json:"url"`
}

// UpazilaRow is a row of the upazilas source table.
type UpazilaRow struct {
	ID         string `json:"id"`
	DistrictID string `json:"district_id"`
	Name       string `json:"name"`
	BnName     string `json:"bn_name"`
	URL        string `json:"url"`
}

// Thana is a Dhaka city administrative unit that the upazila table does not carry.
type Thana struct {
	Name   string `json:"name"`
	BnName string `json:"bnName"`
}

// District is the persisted district record.
type District struct {
	Name         string
	BnName       string
	DivisionName string
	DivisionID   string // source id, kept for joins only
	Lat          string
	Lon          string
	URL          string
	Order        int
}

// NewDistrict builds a District from a source row, resolving the division name.
func NewDistrict(row DistrictRow, divisionNames map[string]string) (District, error) {
	name := strings.TrimSpace(row.Name)
	if name == "" {
		return District{}, ErrInvalidName
	}
	div, ok := divisionNames[row.DivisionID]
	if !ok || strings.TrimSpace(div) == "" {
		div = UnknownDivision
	}
	return District{
		Name:         name,
		BnName:       row.BnName,
		DivisionName: div,
		DivisionID:   row.DivisionID,
		Lat:          row.Lat,
		Lon:          row.Lon,
		URL:          row.URL,
		Order:        ParseOrder(row.ID),
	}, nil
}

// Doc returns the stored field map.
func (d District) Doc() common.Fields {
	return common.Fields{
		"name":         d.Name,
		"bnName":       d.BnName,
		"divisionName": d.DivisionName,
		"divisionId":   d.DivisionID,
		"lat":          d.Lat,
		"lon":          d.Lon,
		"url":          d.URL,
		"order":        d.Order,
	}
}

// Area is the persisted upazila/thana record.
type Area struct {
	Name       string
	BnName     string
	DistrictID string // generated District document id
	URL        string
	Order      int
	Type       AreaType
}

// NewUpazilaArea builds an upazila Area bound to a generated district id.
func NewUpazilaArea(row UpazilaRow, districtID string) (Area, error) {
	a := Area{
		Name:       strings.TrimSpace(row.Name),
		BnName:     row.BnName,
		DistrictID: strings.TrimSpace(districtID),
		URL:        row.URL,
		Order:      ParseOrder(row.ID),
		Type:       AreaTypeUpazila,
	}
	return a, a.validate()
}

// NewThanaArea builds a thana Area; order is ThanaOrderBase plus the running area total.
func NewThanaArea(t Thana, districtID string, runningTotal int) (Area, error) {
	a := Area{
		Name:       strings.TrimSpace(t.Name),
		BnName:     t.BnName,
		DistrictID: strings.TrimSpace(districtID),
		Order:      ThanaOrderBase + runningTotal,
		Type:       AreaTypeThana,
	}
	return a, a.validate()
}

func (a Area) validate() error {
	if a.Name == "" {
		return ErrInvalidName
	}
	if a.DistrictID == "" {
		return ErrInvalidDistrict
	}
	return nil
}

// Doc returns the stored field map.
func (a Area) Doc() common.Fields {
	return common.Fields{
		"name":       a.Name,
		"bnName":     a.BnName,
		"districtId": a.DistrictID,
		"url":        a.URL,
		"order":      a.Order,
		"type":       string(a.Type),
	}
}

// ParseOrder parses the leading integer of a source id the way the exports number rows.
// Non-numeric ids sort first.
func ParseOrder(id string) int {
	s := strings.TrimSpace(id)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}
