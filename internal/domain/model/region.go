package model

import "fmt"

// Region identifies a sales column.
type Region string

// Supported regions, in report order.
const (
	Global Region = "Global"
	NA     Region = "NA"
	EU     Region = "EU"
	JP     Region = "JP"
	Other  Region = "Other"
)

// Regions returns every region in report order.
func Regions() []Region {
	return []Region{Global, NA, EU, JP, Other}
}

// ParseRegion maps a label such as "NA" to a Region.
func ParseRegion(s string) (Region, error) {
	for _, r := range Regions() {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown region %q", s)
}

// Label is the human form used in report headings ("NA Sales").
func (r Region) Label() string { return string(r) + " Sales" }

// Identifier names the region's artifacts ("NA_Sales").
func (r Region) Identifier() string { return string(r) + "_Sales" }
