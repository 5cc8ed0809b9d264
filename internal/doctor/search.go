package doctor

import (
	"sort"
	"strconv"
	"strings"
)

// Criteria is the composable search filter. Zero values mean "no filter";
// MaxFees at MaxFeeSentinel is likewise a no-op.
type Criteria struct {
	Specialty    []string `json:"specialty"`
	Location     []string `json:"location"`
	MinRating    float64  `json:"minRating"`
	MaxFees      float64  `json:"maxFees"`
	Availability string   `json:"availability"`
	SearchTerm   string   `json:"searchTerm"`
}

// ParseFee extracts the numeric part of a "BDT <n>" fee string; malformed
// strings parse to 0.
func ParseFee(fee string) float64 {
	s := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(fee), "BDT"))
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return n
}

// Search filters the directory through every active predicate and returns
// matches sorted by rating, best first.
func Search(list []Doctor, c Criteria) []Doctor {
	out := make([]Doctor, 0, len(list))
	for _, d := range list {
		if !matches(d, c) {
			continue
		}
		out = append(out, d)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Rating > out[j].Rating
	})
	return out
}

func matches(d Doctor, c Criteria) bool {
	if len(c.Specialty) > 0 && !containsFold(c.Specialty, d.Specialty) {
		return false
	}
	if len(c.Location) > 0 && !containsFold(c.Location, d.Location) {
		return false
	}
	if c.MinRating > 0 && d.Rating < c.MinRating {
		return false
	}
	if c.MaxFees > 0 && c.MaxFees < MaxFeeSentinel && ParseFee(d.Fees) > c.MaxFees {
		return false
	}
	if c.Availability != "" && !strings.Contains(strings.ToLower(d.Availability), strings.ToLower(c.Availability)) {
		return false
	}
	if c.SearchTerm != "" {
		term := strings.ToLower(c.SearchTerm)
		if !strings.Contains(strings.ToLower(d.Name), term) &&
			!strings.Contains(strings.ToLower(d.Specialty), term) &&
			!strings.Contains(strings.ToLower(d.Qualifications), term) {
			return false
		}
	}
	return true
}

// containsFold reports whether any needle matches the value as a
// case-insensitive substring.
func containsFold(needles []string, value string) bool {
	v := strings.ToLower(value)
	for _, n := range needles {
		if n == "" {
			continue
		}
		if strings.Contains(v, strings.ToLower(n)) {
			return true
		}
	}
	return false
}

// GetByID finds a directory entry.
func GetByID(list []Doctor, id int) (Doctor, bool) {
	for _, d := range list {
		if d.ID == id {
			return d, true
		}
	}
	return Doctor{}, false
}

// Specialties returns the distinct specialties in ascending order.
func Specialties(list []Doctor) []string {
	return distinct(list, func(d Doctor) string { return d.Specialty })
}

// Locations returns the distinct locations in ascending order.
func Locations(list []Doctor) []string {
	return distinct(list, func(d Doctor) string { return d.Location })
}

func distinct(list []Doctor, field func(Doctor) string) []string {
	seen := make(map[string]bool)
	out := make([]string, 0, len(list))
	for _, d := range list {
		v := field(d)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
