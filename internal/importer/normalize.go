package importer

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/arutourism/arutourism-backend/pkg/util"
)

var atLatLngRe = regexp.MustCompile(`@(-?\d+\.\d+),(-?\d+\.\d+)`)

// ExtractLatLng pulls coordinates out of a maps link when possible.
// Two shapes are recognized: a "q=<lat>,<lng>" query parameter and an
// "@<lat>,<lng>" path segment. Returns (0, 0, false) otherwise.
func ExtractLatLng(raw string) (float64, float64, bool) {
	if raw == "" {
		return 0, 0, false
	}

	if u, err := url.Parse(raw); err == nil {
		q := u.Query().Get("q")
		if strings.Contains(q, ",") {
			parts := strings.SplitN(q, ",", 3)
			lat, errLat := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
			lng, errLng := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
			if errLat == nil && errLng == nil {
				return lat, lng, true
			}
		}
	}

	if m := atLatLngRe.FindStringSubmatch(raw); m != nil {
		lat, errLat := strconv.ParseFloat(m[1], 64)
		lng, errLng := strconv.ParseFloat(m[2], 64)
		if errLat == nil && errLng == nil {
			return lat, lng, true
		}
	}

	return 0, 0, false
}

// ParseFloatBR parses a decimal that may use a comma separator.
func ParseFloatBR(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// LooksLikeURL is a cheap sniff for site/social link values.
func LooksLikeURL(raw string) bool {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" || strings.ContainsAny(s, " \t") {
		return false
	}
	return strings.HasPrefix(s, "http://") ||
		strings.HasPrefix(s, "https://") ||
		strings.HasPrefix(s, "www.") ||
		strings.Contains(s, ".com") ||
		strings.Contains(s, ".br")
}

// normalizePhone keeps valid BR numbers as digits; malformed-but-present
// input degrades to bare digit-stripping rather than failing the row.
func normalizePhone(raw string) string {
	if raw == "" {
		return ""
	}
	if normalized, err := util.NormalizePhone(raw); err == nil {
		return normalized
	}
	return util.OnlyDigits(raw)
}
