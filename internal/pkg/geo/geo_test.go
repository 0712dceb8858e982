package geo

import (
	"math"
	"testing"
)

func TestHaversineDistance(t *testing.T) {
	cases := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want                   float64
		tolerance              float64
	}{
		{"same point", 12.9716, 77.5946, 12.9716, 77.5946, 0, 0.001},
		// ~1 degree of latitude is ~111.2 km
		{"one degree latitude", 0, 0, 1, 0, 111195, 100},
		// Bangalore MG Road to Koramangala, roughly 5.5 km
		{"bangalore city", 12.9758, 77.6045, 12.9352, 77.6245, 5000, 1000},
	}
	for _, c := range cases {
		got := HaversineDistance(c.lat1, c.lon1, c.lat2, c.lon2)
		if math.Abs(got-c.want) > c.tolerance {
			t.Errorf("%s: HaversineDistance = %.2f, want %.2f (±%.2f)", c.name, got, c.want, c.tolerance)
		}
	}
}

func TestHaversineDistanceSymmetry(t *testing.T) {
	d1 := HaversineDistance(12.97, 77.59, 13.08, 80.27)
	d2 := HaversineDistance(13.08, 80.27, 12.97, 77.59)
	if math.Abs(d1-d2) > 0.0001 {
		t.Errorf("distance not symmetric: %.6f vs %.6f", d1, d2)
	}
}

func TestValidCoordinates(t *testing.T) {
	valid := [][2]float64{{0, 0}, {-90, -180}, {90, 180}, {12.9716, 77.5946}}
	invalid := [][2]float64{
		{91, 0}, {-91, 0}, {0, 181}, {0, -181},
		{math.NaN(), 0}, {0, math.NaN()}, {math.Inf(1), 0},
	}
	for _, c := range valid {
		if !ValidCoordinates(c[0], c[1]) {
			t.Errorf("ValidCoordinates(%v, %v) = false, want true", c[0], c[1])
		}
	}
	for _, c := range invalid {
		if ValidCoordinates(c[0], c[1]) {
			t.Errorf("ValidCoordinates(%v, %v) = true, want false", c[0], c[1])
		}
	}
}
