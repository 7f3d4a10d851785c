package stats

import (
	"strconv"
	"strings"
)

// Canonical zone labels. Lingkungan/rayon values are free text entered by
// several independent collection flows, so raw values are normalized into
// this closed set before counting.
const (
	ZoneLuarWilayah = "Luar Wilayah"
	ZoneUnknown     = "Tidak Diketahui"
	ZoneOther       = "Lainnya"
)

const maxZoneNumber = 7

// NormalizeZone maps a raw locality value to a canonical zone label.
// "Lingkungan 3", "Ling. 3" and "3" all collapse to "3".
func NormalizeZone(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" || s == "-" {
		return ZoneUnknown
	}
	if strings.EqualFold(s, ZoneLuarWilayah) {
		return ZoneLuarWilayah
	}
	if n, ok := firstNumber(s); ok && n >= 1 && n <= maxZoneNumber {
		return strconv.Itoa(n)
	}
	return ZoneOther
}

// firstNumber extracts the first run of digits in s as an integer.
func firstNumber(s string) (int, bool) {
	start := -1
	for i, r := range s {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			n, err := strconv.Atoi(s[start:i])
			return n, err == nil
		}
	}
	if start >= 0 {
		n, err := strconv.Atoi(s[start:])
		return n, err == nil
	}
	return 0, false
}
