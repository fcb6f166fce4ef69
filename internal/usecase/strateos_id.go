package usecase

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/containerq/backend/internal/domain"
)

// fragmentPattern captures everything after the last '#' of a local name
var fragmentPattern = regexp.MustCompile(`^.*#(.*)`)

// vendorNames are the catalog vendors known to prefix Strateos container IDs.
// Order matters: the first vendor that prefixes a fragment wins.
var vendorNames = []string{
	"Fisher",
	"ThermoFisher",
	"Eppendorf",
	"Costar",
	"USA Scientific",
	"Mesoscale",
	"Chemspeed",
	"E&K Scientific",
	"Sumitomo Bakelite Co.",
	"PerkinElmer",
	"Labcyte",
	"Greiner",
	"Corning",
	"Axygen",
	"Tradewinds",
}

// vendorStrings holds vendorNames as they appear inside instance URIs
var vendorStrings = escapeVendorNames(vendorNames)

func escapeVendorNames(names []string) []string {
	escaped := make([]string, len(names))
	for i, name := range names {
		escaped[i] = strings.ReplaceAll(html.EscapeString(name), " ", "%20")
	}
	return escaped
}

// VendorStrings returns a copy of the escaped vendor prefixes in match order
func VendorStrings() []string {
	out := make([]string, len(vendorStrings))
	copy(out, vendorStrings)
	return out
}

// StrateosID extracts the bare catalog identifier from an instance URI of
// the form .../<anything>#<Vendor><CatalogID>.
func StrateosID(uri string) (string, error) {
	suffix := uri
	if idx := strings.LastIndex(uri, "/"); idx >= 0 {
		suffix = uri[idx+1:]
	}

	m := fragmentPattern.FindStringSubmatch(suffix)
	if m == nil {
		return "", fmt.Errorf("%w: unable to extract a strateos ID from %s", domain.ErrNoStrateosID, uri)
	}
	vendorAndID := m[1]

	for _, vendor := range vendorStrings {
		if trimmed, ok := strings.CutPrefix(vendorAndID, vendor); ok {
			return trimmed, nil
		}
	}

	return "", fmt.Errorf("%w: unable to extract a strateos ID from %s", domain.ErrNoStrateosID, uri)
}
