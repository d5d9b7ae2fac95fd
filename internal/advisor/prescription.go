package advisor

import (
	"regexp"
	"strconv"
	"strings"
)

// Prescription is the best-effort reading of a free-text scheme such as
// "3×6–10 @ RIR2". Missing pieces degrade instead of failing: no set
// count leaves HasSets false, no digits in the rep part falls back to
// AMRAP, no RIR tag leaves RIR empty.
type Prescription struct {
	Sets    int    `json:"sets,omitempty"`
	HasSets bool   `json:"has_sets"`
	RepText string `json:"rep_text"`
	RIR     string `json:"rir,omitempty"`
}

var (
	rirPattern  = regexp.MustCompile(`(?i)@?\s*RIR\s*(\d+)`)
	setsPattern = regexp.MustCompile(`(\d+)\s*[x×X*]`)
	repsPattern = regexp.MustCompile(`\d+(?:\s*[-–—]\s*\d+)?`)
)

// ParsePrescription is pattern matching, not a grammar. The RIR tag is
// stripped first so its digit never leaks into the rep text.
func ParsePrescription(text string) Prescription {
	p := Prescription{}
	rest := text
	if m := rirPattern.FindStringSubmatch(rest); m != nil {
		p.RIR = m[1]
		rest = rirPattern.ReplaceAllString(rest, " ")
	}
	if loc := setsPattern.FindStringSubmatchIndex(rest); loc != nil {
		count, err := strconv.Atoi(rest[loc[2]:loc[3]])
		if err == nil {
			p.Sets = count
			p.HasSets = true
		}
		rest = rest[loc[1]:]
	}
	if m := repsPattern.FindString(rest); m != "" {
		p.RepText = strings.Join(strings.Fields(m), "")
	} else {
		p.RepText = "AMRAP"
	}
	return p
}
