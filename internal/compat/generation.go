package compat

import (
	"regexp"
	"strconv"
	"strings"
)

// Vendor is the processor vendor as far as generation inference cares.
type Vendor string

// Recognized vendors.
const (
	VendorIntel   Vendor = "intel"
	VendorAMD     Vendor = "amd"
	VendorUnknown Vendor = "unknown"
)

var (
	// Core i3/i5/i7/i9 followed by a 4-5 digit model number.
	intelModelRe = regexp.MustCompile(`\bi[3579]\s*[-\s]\s*(\d{4,5})`)
	// Ryzen followed by its tier digit.
	ryzenRe = regexp.MustCompile(`ryzen[^0-9]*(\d)`)
)

// DetectVendor classifies a marketing CPU name.
func DetectVendor(name string) Vendor {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "intel") || intelModelRe.MatchString(n):
		return VendorIntel
	case strings.Contains(n, "amd") || strings.Contains(n, "ryzen"):
		return VendorAMD
	default:
		return VendorUnknown
	}
}

// DetectGeneration infers the generation ordinal from a marketing CPU name.
//
// Intel Core model numbers encode the generation in their leading digits:
// five digits (i9-13900K) and four digits starting with 1 (i7-1065G7) carry
// a two-digit generation, any other four-digit number (i5-8250U) a single
// digit. Ryzen names yield the digit following the product line. Anything
// else is generation 0 and recognized is false.
func DetectGeneration(name string) (gen int, recognized bool) {
	n := strings.ToLower(name)

	switch DetectVendor(n) {
	case VendorIntel:
		m := intelModelRe.FindStringSubmatch(n)
		if m == nil {
			return 0, false
		}
		model := m[1]
		digits := 1
		if len(model) == 5 || model[0] == '1' {
			digits = 2
		}
		gen, _ = strconv.Atoi(model[:digits])
		return gen, true

	case VendorAMD:
		m := ryzenRe.FindStringSubmatch(n)
		if m == nil {
			return 0, false
		}
		gen, _ = strconv.Atoi(m[1])
		return gen, true
	}

	return 0, false
}

// GenerationSupported applies the generation clause of the CPU rule:
// Intel needs 8th generation or newer, everything else generation 2 or newer.
func GenerationSupported(v Vendor, gen int) bool {
	if v == VendorIntel {
		return gen >= MinIntelGeneration
	}
	return gen >= MinOtherGeneration
}
