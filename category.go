package budgetfill

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Bucket is one of the three fixed cost categories.
type Bucket int

const (
	Civil Bucket = iota
	Electrical
	Mechanical
)

// Buckets lists every bucket in template order.
var Buckets = []Bucket{Civil, Electrical, Mechanical}

// Label returns the canonical category label used by the catalog and the
// template headings.
func (b Bucket) Label() string {
	switch b {
	case Civil:
		return "CIVIL"
	case Electrical:
		return "INSTALAÇÕES ELÉTRICAS"
	case Mechanical:
		return "INSTALAÇÕES MECÂNICAS"
	}
	return fmt.Sprintf("Bucket(%d)", int(b))
}

// Key returns a short lower-case identifier, used for configuration keys.
func (b Bucket) Key() string {
	switch b {
	case Civil:
		return "civil"
	case Electrical:
		return "electrical"
	case Mechanical:
		return "mechanical"
	}
	return ""
}

func (b Bucket) String() string { return b.Label() }

// Valid reports whether b is one of the three known buckets.
func (b Bucket) Valid() bool {
	return b >= Civil && b <= Mechanical
}

// ParseBucketKey maps a configuration key ("civil", "electrical",
// "mechanical") back to its bucket.
func ParseBucketKey(key string) (Bucket, bool) {
	for _, b := range Buckets {
		if strings.EqualFold(strings.TrimSpace(key), b.Key()) {
			return b, true
		}
	}
	return 0, false
}

var accentFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeLabel trims, collapses inner whitespace, strips diacritics and
// upper-cases a free-text label. "  Instalações  elétricas " becomes
// "INSTALACOES ELETRICAS".
func NormalizeLabel(s string) string {
	folded, _, err := transform.String(accentFolder, s)
	if err != nil {
		folded = s
	}
	return strings.ToUpper(strings.Join(strings.Fields(folded), " "))
}
