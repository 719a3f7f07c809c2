package skywire

import (
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
	"github.com/tzneal/coordconv"
)

// UTM is a Universal Transverse Mercator coordinate, the form ground
// stations typically want a TelemetryRecord's Latitude/Longitude
// converted to for plotting on a paper chart.
type UTM struct {
	Zone       int
	Hemisphere rune // 'N' or 'S'
	EastingM   float64
	NorthingM  float64
}

func hemisphereRune(h coordconv.Hemisphere) rune {
	switch h {
	case coordconv.HemisphereNorth:
		return 'N'
	case coordconv.HemisphereSouth:
		return 'S'
	default:
		return '?'
	}
}

func runeHemisphere(r rune) coordconv.Hemisphere {
	switch r {
	case 'S', 's':
		return coordconv.HemisphereSouth
	default:
		return coordconv.HemisphereNorth
	}
}

// ToUTM converts a record's decoded latitude/longitude (decimal
// degrees) to UTM, for ground-station display (§4.L).
func ToUTM(latDeg, lonDeg float64) (UTM, error) {
	latlng := s2.LatLng{
		Lat: s1.Angle(latDeg * math.Pi / 180),
		Lng: s1.Angle(lonDeg * math.Pi / 180),
	}
	coord, err := coordconv.DefaultUTMConverter.ConvertFromGeodetic(latlng, 0)
	if err != nil {
		return UTM{}, newErr(ErrConfig, "utm conversion failed: %s", err)
	}
	return UTM{
		Zone:       coord.Zone,
		Hemisphere: hemisphereRune(coord.Hemisphere),
		EastingM:   coord.Easting,
		NorthingM:  coord.Northing,
	}, nil
}

// FromUTM converts a UTM coordinate back to decimal-degree
// latitude/longitude, the inverse of ToUTM. Round-tripping through
// ToUTM/FromUTM is accurate to within coordconv's own precision
// (spec.md §8 S11).
func FromUTM(u UTM) (latDeg, lonDeg float64, err error) {
	coord := coordconv.UTMCoord{
		Zone:       u.Zone,
		Hemisphere: runeHemisphere(u.Hemisphere),
		Easting:    u.EastingM,
		Northing:   u.NorthingM,
	}
	latlng, convErr := coordconv.DefaultUTMConverter.ConvertToGeodetic(coord)
	if convErr != nil {
		return 0, 0, newErr(ErrConfig, "geodetic conversion failed: %s", convErr)
	}
	return float64(latlng.Lat) * 180 / math.Pi, float64(latlng.Lng) * 180 / math.Pi, nil
}
