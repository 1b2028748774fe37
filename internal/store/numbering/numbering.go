// Package numbering formats the sequential document references assigned to
// material invoices (serial, MRN and GIN numbers).
package numbering

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies one of the three invoice reference sequences.
type Kind string

const (
	KindSerial Kind = "serial_number"
	KindMRN    Kind = "mrn_number"
	KindGIN    Kind = "gin_number"
)

// Prefix returns the human-readable prefix for a sequence.
func (k Kind) Prefix() string {
	switch k {
	case KindSerial:
		return "INV"
	case KindMRN:
		return "MRN"
	case KindGIN:
		return "GIN"
	}
	return ""
}

// Kinds lists every sequence, in seeding order.
func Kinds() []Kind {
	return []Kind{KindSerial, KindMRN, KindGIN}
}

const padWidth = 5

// Format renders a counter value as "<PREFIX>-00001".
func Format(k Kind, value int64) string {
	return fmt.Sprintf("%s-%0*d", k.Prefix(), padWidth, value)
}

// NumericSuffix strips all non-digit characters from a formatted reference
// and parses the remainder. Unparseable or empty input counts as 0, so a
// malformed last record restarts the sequence rather than failing creation.
func NumericSuffix(ref string) int64 {
	var b strings.Builder
	for _, r := range ref {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0
	}
	n, err := strconv.ParseInt(b.String(), 10, 64)
	if err != nil {
		return 0
	}
	return n
}
