package chart

import (
	"fmt"
	"math"
)

// Colors shared by the interactive and raster charts.
const (
	ColorPoints       = "#4682b4" // steelblue
	ColorMovingAvg    = "#e74c3c"
	ColorTrend        = "#2ecc71"
	ColorBaseline     = "#808080"
	ColorParis        = "#ff0000"
	ColorDecadeWarm   = "#e74c3c"
	ColorDecadeCool   = "#3498db"
	StripeDomainLimit = 2.0
)

// redBlue runs from cold to warm, the reverse of the "redblue" scheme.
var redBlue = [][3]uint8{
	{0x21, 0x66, 0xac},
	{0x67, 0xa9, 0xcf},
	{0xd1, 0xe5, 0xf0},
	{0xf7, 0xf7, 0xf7},
	{0xfd, 0xdb, 0xc7},
	{0xef, 0x8a, 0x62},
	{0xb2, 0x18, 0x2b},
}

// StripeRGB maps an anomaly onto the diverging stripe palette. Values are
// clamped to [-2, 2]; zero is the neutral midpoint.
func StripeRGB(anomaly float64) (r, g, b uint8) {
	if math.IsNaN(anomaly) {
		anomaly = 0
	}
	t := (math.Max(-StripeDomainLimit, math.Min(StripeDomainLimit, anomaly)) + StripeDomainLimit) / (2 * StripeDomainLimit)
	pos := t * float64(len(redBlue)-1)
	i := int(math.Floor(pos))
	if i >= len(redBlue)-1 {
		c := redBlue[len(redBlue)-1]
		return c[0], c[1], c[2]
	}
	frac := pos - float64(i)
	lo, hi := redBlue[i], redBlue[i+1]
	mix := func(a, b uint8) uint8 {
		return uint8(math.Round(float64(a) + (float64(b)-float64(a))*frac))
	}
	return mix(lo[0], hi[0]), mix(lo[1], hi[1]), mix(lo[2], hi[2])
}

// StripeColor is StripeRGB as a CSS hex string.
func StripeColor(anomaly float64) string {
	r, g, b := StripeRGB(anomaly)
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// DecadeColor is red for warm decades and blue otherwise.
func DecadeColor(anomaly float64) string {
	if anomaly > 0 {
		return ColorDecadeWarm
	}
	return ColorDecadeCool
}
