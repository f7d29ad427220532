package schema

import (
	"strconv"
	"strings"
)

// PercentageSuffix marks the percentage variant of a raw-count field by
// naming convention (e.g. MP10020A_B vs MP10020A_B_P).
const PercentageSuffix = "_P"

// ToNumber converts a decoded JSON scalar to a float64. It accepts the
// numeric types encoding/json produces plus numeric strings; everything else
// (nil, bools, free text) reports false.
func ToNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// IsPercentageField reports whether the field name carries the percentage
// marker suffix.
func IsPercentageField(field string) bool {
	return strings.HasSuffix(strings.ToUpper(field), PercentageSuffix)
}

// PercentageVariant returns the percentage counterpart name for a raw-count
// field (the field with the marker appended).
func PercentageVariant(field string) string {
	return field + PercentageSuffix
}

// HasPercentageVariant reports whether fields contains the percentage
// counterpart of the given raw-count field. The lookup is case-insensitive
// on the suffix but exact on the base name, matching the upstream ArcGIS
// field naming convention.
func HasPercentageVariant(field string, fields map[string]struct{}) bool {
	if _, ok := fields[PercentageVariant(field)]; ok {
		return true
	}
	_, ok := fields[field+strings.ToLower(PercentageSuffix)]
	return ok
}
