package member

import (
	"regexp"
	"strings"
)

// Dedupe collapses members sharing a lowercased (name, email) pair, keeping
// the record with the strictly newest createdAt. Survivors come out in
// first-seen key order; a later winner replaces its duplicate in place, so
// the order does not depend on map iteration.
func Dedupe(in []Member) []Member {
	idx := make(map[string]int, len(in))
	out := make([]Member, 0, len(in))
	for _, m := range in {
		key := strings.ToLower(m.Name) + "_" + strings.ToLower(m.Email)
		if j, ok := idx[key]; ok {
			if m.CreatedAt.After(out[j].CreatedAt) {
				out[j] = m
			}
			continue
		}
		idx[key] = len(out)
		out = append(out, m)
	}
	return out
}

// DefaultBioDenylist is the ordered list of department names and acronyms
// stripped from member bios. Order matters: the short acronyms are substrings
// of ordinary words and must run only after the long-form phrases are gone.
// A * matches up to the next comma or period, so the first entry erases any
// "Department of X" wholesale, not just the listed departments. This is
// institution-specific configuration, not logic.
var DefaultBioDenylist = []string{
	"Department of *",
	"Computer",
	"Mechanical",
	"Software Engineering",
	"Information and Communication Engineering",
	"Electrical and Electronic Engineering",
	"Civil Engineering",
	"Chemical Engineering",
	"Biomedical Engineering",
	"ICE",
	"CSE",
	"EEE",
	"ME",
	"CE",
	"ChE",
	"BME",
}

// Sanitizer strips a denylist of substrings from free text.
type Sanitizer struct {
	patterns []*regexp.Regexp
}

// NewSanitizer compiles case-insensitive removers for each denylist entry,
// preserving their order.
func NewSanitizer(denylist []string) *Sanitizer {
	s := &Sanitizer{patterns: make([]*regexp.Regexp, 0, len(denylist))}
	for _, entry := range denylist {
		s.patterns = append(s.patterns, compileEntry(entry))
	}
	return s
}

// compileEntry treats the entry as a literal substring except for *, which
// matches any run of text up to the next comma or period.
func compileEntry(entry string) *regexp.Regexp {
	parts := strings.Split(entry, "*")
	for i, p := range parts {
		parts[i] = regexp.QuoteMeta(p)
	}
	return regexp.MustCompile("(?i)" + strings.Join(parts, `[^,.]*`))
}

var (
	defaultSanitizer = NewSanitizer(DefaultBioDenylist)
	whitespaceRun    = regexp.MustCompile(`\s+`)
)

// SanitizeBio applies the default denylist to a bio. Returns "" when nothing
// survives, which callers treat as an absent bio.
func SanitizeBio(bio string) string {
	return defaultSanitizer.Sanitize(bio)
}

// Sanitize removes each denylist entry in sequence, collapses whitespace and
// trims leading/trailing punctuation.
func (s *Sanitizer) Sanitize(text string) string {
	for _, p := range s.patterns {
		text = p.ReplaceAllString(text, "")
	}
	text = whitespaceRun.ReplaceAllString(text, " ")
	return strings.Trim(text, " \t,.;:-!?")
}
