package riot

import (
	"fmt"
	"strings"
)

// Region is a platform shard of the API, e.g. EUW.
type Region string

const (
	RegionBR   Region = "BR"
	RegionEUNE Region = "EUNE"
	RegionEUW  Region = "EUW"
	RegionKR   Region = "KR"
	RegionLAN  Region = "LAN"
	RegionLAS  Region = "LAS"
	RegionNA   Region = "NA"
	RegionOCE  Region = "OCE"
	RegionRU   Region = "RU"
	RegionTR   Region = "TR"
)

var allRegions = []Region{
	RegionBR, RegionEUNE, RegionEUW, RegionKR, RegionLAN,
	RegionLAS, RegionNA, RegionOCE, RegionRU, RegionTR,
}

func Regions() []Region {
	return append([]Region(nil), allRegions...)
}

// ParseRegion accepts any casing and surrounding whitespace.
func ParseRegion(raw string) (Region, error) {
	candidate := Region(strings.ToUpper(strings.TrimSpace(raw)))
	for _, r := range allRegions {
		if r == candidate {
			return r, nil
		}
	}
	return "", fmt.Errorf("invalid region %q", raw)
}

func (r Region) Valid() bool {
	_, err := ParseRegion(string(r))
	return err == nil
}

// Lower is the form used in hosts and URL paths.
func (r Region) Lower() string {
	return strings.ToLower(string(r))
}

func (r Region) String() string {
	return string(r)
}
