package kernel

import (
	"errors"
	"fmt"
	"math"

	"campusdelivery/internal/pkg/errs"
	"campusdelivery/internal/pkg/guard"
)

const (
	earthRadiusKm = 6371.0

	minLatitude  = -90.0
	maxLatitude  = 90.0
	minLongitude = -180.0
	maxLongitude = 180.0
)

var ErrCoordinatesNotConstructed = errors.New("coordinates must be created via NewCoordinates")

// Coordinates is a WGS84 point. (0, 0) is a valid point and is used as the
// placeholder position of freshly registered couriers.
type Coordinates struct {
	lat   float64
	lng   float64
	guard guard.ConstructorGuard
}

func NewCoordinates(lat, lng float64) (Coordinates, error) {
	if math.IsNaN(lat) || lat < minLatitude || lat > maxLatitude {
		return Coordinates{}, errs.NewValueIsOutOfRangeError("latitude", lat, minLatitude, maxLatitude)
	}
	if math.IsNaN(lng) || lng < minLongitude || lng > maxLongitude {
		return Coordinates{}, errs.NewValueIsOutOfRangeError("longitude", lng, minLongitude, maxLongitude)
	}
	return Coordinates{lat: lat, lng: lng, guard: guard.NewConstructorGuard()}, nil
}

func MustNewCoordinates(lat, lng float64) Coordinates {
	c, err := NewCoordinates(lat, lng)
	if err != nil {
		panic(err)
	}
	return c
}

// Origin returns (0, 0).
func Origin() Coordinates {
	return Coordinates{guard: guard.NewConstructorGuard()}
}

func (c Coordinates) Lat() float64 {
	return c.lat
}

func (c Coordinates) Lng() float64 {
	return c.lng
}

func (c Coordinates) IsEqual(other Coordinates) bool {
	return c.lat == other.lat && c.lng == other.lng
}

func (c Coordinates) String() string {
	return fmt.Sprintf("(%.6f, %.6f)", c.lat, c.lng)
}

func (c Coordinates) Validate() error {
	return c.guard.Validate(ErrCoordinatesNotConstructed)
}

// DistanceKm is the great-circle distance computed with the haversine formula.
func (c Coordinates) DistanceKm(other Coordinates) float64 {
	dLat := toRadians(other.lat - c.lat)
	dLng := toRadians(other.lng - c.lng)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(c.lat))*math.Cos(toRadians(other.lat))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
