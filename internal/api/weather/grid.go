package weather

import "math"

// Lambert Conformal Conic projection constants for the KMA forecast grid.
const (
	earthRadiusKm = 6371.00877
	gridSpacingKm = 5.0
	projLat1Deg   = 30.0
	projLat2Deg   = 60.0
	originLonDeg  = 126.0
	originLatDeg  = 38.0
	originX       = 43
	originY       = 136
)

// LatLonToGrid converts WGS84 coordinates to KMA forecast grid cell indices
// (nx, ny). Seoul city hall lands on (60, 127).
func LatLonToGrid(lat, lon float64) (int, int) {
	degrad := math.Pi / 180.0
	re := earthRadiusKm / gridSpacingKm
	slat1 := projLat1Deg * degrad
	slat2 := projLat2Deg * degrad
	olon := originLonDeg * degrad
	olat := originLatDeg * degrad

	sn := math.Log(math.Cos(slat1)/math.Cos(slat2)) /
		math.Log(math.Tan(math.Pi*0.25+slat2*0.5)/math.Tan(math.Pi*0.25+slat1*0.5))
	sf := (math.Cos(slat1) * math.Pow(math.Tan(math.Pi*0.25+slat1*0.5), sn)) / sn
	ro := re * sf / math.Pow(math.Tan(math.Pi*0.25+olat*0.5), sn)

	ra := re * sf / math.Pow(math.Tan(math.Pi*0.25+lat*degrad*0.5), sn)
	theta := lon*degrad - olon
	if theta > math.Pi {
		theta -= 2.0 * math.Pi
	}
	if theta < -math.Pi {
		theta += 2.0 * math.Pi
	}
	theta *= sn

	x := ra*math.Sin(theta) + originX + 0.5
	y := ro - ra*math.Cos(theta) + originY + 0.5
	return int(x), int(y)
}
