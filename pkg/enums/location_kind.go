package enums

import "strings"

// LocationKind partitions locations into stock sources and sell-through sinks.
type LocationKind string

const (
	LocationKindWarehouse LocationKind = "warehouse"
	LocationKindRetailHub LocationKind = "retail_hub"
)

// RetailHubPrefix is the naming convention that marks a sell-through location.
// Kind is derived, never stored; the prefix match must stay compatible with
// the existing location names.
const RetailHubPrefix = "Retail Hub"

// String implements fmt.Stringer.
func (k LocationKind) String() string {
	return string(k)
}

// KindOfLocation classifies a location name by the retail-hub prefix
// convention. Anything else is a warehouse.
func KindOfLocation(location string) LocationKind {
	if strings.HasPrefix(location, RetailHubPrefix) {
		return LocationKindRetailHub
	}
	return LocationKindWarehouse
}

// IsRetailHub reports whether the location name is a sell-through sink.
func IsRetailHub(location string) bool {
	return KindOfLocation(location) == LocationKindRetailHub
}
