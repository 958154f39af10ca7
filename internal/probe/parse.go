package probe

import (
	"bufio"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Record is one instance from an inventory query, keyed by property name.
type Record map[string]string

// Get returns the trimmed value of key, matched case-insensitively.
func (r Record) Get(key string) string {
	if v, ok := r[key]; ok {
		return v
	}
	for k, v := range r {
		if strings.EqualFold(k, key) {
			return v
		}
	}
	return ""
}

// ParseRecords splits list-formatted inventory output into records.
// Properties are "key=value" or "key : value" lines; blank lines separate
// instances. Lines without a separator are ignored.
func ParseRecords(out string) []Record {
	var records []Record
	current := Record{}

	flush := func() {
		if len(current) > 0 {
			records = append(records, current)
			current = Record{}
		}
	}

	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		line := strings.TrimSpace(strings.TrimRight(sc.Text(), "\r"))
		if line == "" {
			flush()
			continue
		}

		idx := strings.IndexAny(line, "=:")
		if idx <= 0 {
			continue
		}
		key := strings.TrimSpace(line[:idx])
		if strings.ContainsAny(key, " \t") {
			continue
		}
		current[key] = strings.TrimSpace(line[idx+1:])
	}
	flush()

	return records
}

// ParseInt parses a decimal integer, tolerating surrounding whitespace.
func ParseInt(s string) (int64, bool) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// BytesToGB converts bytes to whole gigabytes, rounding to nearest.
func BytesToGB(b int64) int {
	return int(math.Round(float64(b) / (1 << 30)))
}

// MHzToGHz converts a clock speed in MHz to GHz with two decimals.
func MHzToGHz(mhz int64) float64 {
	return math.Round(float64(mhz)/10) / 100
}

// ParseTPMSpecVersion maps a SpecVersion property ("2.0, 0, 1.38") to the
// TPM family version. Unknown families return 0.
func ParseTPMSpecVersion(spec string) float64 {
	spec = strings.TrimSpace(spec)
	switch {
	case strings.HasPrefix(spec, "2."):
		return 2.0
	case strings.HasPrefix(spec, "1."):
		return 1.2
	default:
		return 0
	}
}

// ParsePartitionScheme reports whether disk listing output shows a GPT disk:
// either the literal marker "GPT" appears or a disk row carries "*" in the
// Gpt column.
func ParsePartitionScheme(out string) bool {
	if strings.Contains(out, "GPT") {
		return true
	}

	gptCol := -1
	for _, raw := range strings.Split(out, "\n") {
		line := strings.TrimRight(raw, "\r")
		if gptCol < 0 {
			if strings.Contains(line, "Disk ###") {
				gptCol = strings.LastIndex(line, "Gpt")
			}
			continue
		}
		if !diskRow.MatchString(line) {
			continue
		}
		start := gptCol - 1
		if start < 0 || start >= len(line) {
			continue
		}
		if strings.Contains(line[start:], "*") {
			return true
		}
	}
	return false
}

var diskRow = regexp.MustCompile(`^\s*\*?\s*Disk\s+\d+`)

var (
	dxVersionRe = regexp.MustCompile(`DirectX Version:\s*DirectX\s*(\d+)`)
	wddmRe      = regexp.MustCompile(`Driver Model:\s*WDDM\s*(\d+\.\d+)`)
)

// ParseDxDiag extracts the DirectX version and the highest WDDM driver model
// from a dxdiag text report. Missing values are returned as zero.
func ParseDxDiag(report string) (directX int, wddm float64) {
	if m := dxVersionRe.FindStringSubmatch(report); m != nil {
		directX, _ = strconv.Atoi(m[1])
	}
	for _, m := range wddmRe.FindAllStringSubmatch(report, -1) {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil && v > wddm {
			wddm = v
		}
	}
	return directX, wddm
}
