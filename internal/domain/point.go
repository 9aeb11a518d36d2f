package domain

import (
	"fmt"
	"math"
	"strings"

	"github.com/paulmach/orb"
)

// Role - what a GeoPoint represents
type Role string

const (
	RolePerson Role = "person"
	RoleCenter Role = "center"
)

// Category - priority class of a person. Lower Rank is served first.
type Category string

const (
	CategoryPWD    Category = "pwd"
	CategoryFemale Category = "female"
	CategoryMale   Category = "male"
)

// Categories lists the priority classes in serving order.
var Categories = []Category{CategoryPWD, CategoryFemale, CategoryMale}

// Rank returns the position of c in the total order PWD < Female < Male.
// Unknown categories sort last.
func (c Category) Rank() int {
	switch c {
	case CategoryPWD:
		return 1
	case CategoryFemale:
		return 2
	case CategoryMale:
		return 3
	default:
		return 4
	}
}

// Valid reports whether c is one of the known priority classes.
func (c Category) Valid() bool {
	return c.Rank() < 4
}

// ParseCategory parses a category name case-insensitively.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}

// GeoPoint - a located person or service center
type GeoPoint struct {
	Lat      float64  `json:"lat" yaml:"lat"`
	Lon      float64  `json:"lon" yaml:"lon"`
	Role     Role     `json:"role,omitempty" yaml:"role,omitempty"`
	Category Category `json:"category,omitempty" yaml:"category,omitempty"`
}

// NewPerson returns a person point of the given category.
func NewPerson(lat, lon float64, category Category) GeoPoint {
	return GeoPoint{Lat: lat, Lon: lon, Role: RolePerson, Category: category}
}

// NewCenter returns a service center point.
func NewCenter(lat, lon float64) GeoPoint {
	return GeoPoint{Lat: lat, Lon: lon, Role: RoleCenter}
}

// Point converts p to an orb.Point (lon, lat order).
func (p GeoPoint) Point() orb.Point {
	return orb.Point{p.Lon, p.Lat}
}

// Valid reports whether the coordinates are inside the WGS84 ranges.
func (p GeoPoint) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lon >= -180 && p.Lon <= 180
}

// PairKey builds the canonical, order independent cache key for a pair of points.
// Coordinates are rounded to 6 decimal digits before ordering, so A→B and B→A map
// to the same key.
func PairKey(a, b GeoPoint) string {
	alat, alon := round6(a.Lat), round6(a.Lon)
	blat, blon := round6(b.Lat), round6(b.Lon)
	if blat < alat || (blat == alat && blon < alon) {
		alat, alon, blat, blon = blat, blon, alat, alon
	}
	return fmt.Sprintf("%.6f,%.6f|%.6f,%.6f", alat, alon, blat, blon)
}

func round6(v float64) float64 {
	r := math.Round(v*1e6) / 1e6
	if r == 0 {
		// normalizes -0 so it prints like 0
		return 0
	}
	return r
}
