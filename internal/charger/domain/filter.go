package domain

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	SortNewest = "newest"
	SortOldest = "oldest"
)

// ListFilter holds the recognized list options. All conditions are combined
// with AND; nil/empty fields impose no constraint.
type ListFilter struct {
	Status        string
	ConnectorType string
	Name          string // case-insensitive substring match
	PowerOutput   *float64
	Latitude      *float64
	Longitude     *float64
	Sort          string
}

// ParseListFilter reads the list options from a query string. Optional
// filters that fail to parse (a non-numeric powerOutput, a malformed
// location) are dropped silently rather than rejected; that is deliberate,
// so that a sloppy caller still gets the remaining filters applied.
func ParseListFilter(values url.Values) ListFilter {
	filter := ListFilter{
		Status:        values.Get("status"),
		ConnectorType: values.Get("connectorType"),
		Name:          values.Get("name"),
		Sort:          values.Get("sort"),
	}

	if raw := values.Get("powerOutput"); raw != "" {
		if power, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.PowerOutput = &power
		}
	}

	// location is expected as "latitude,longitude"
	if raw := values.Get("location"); raw != "" {
		parts := strings.SplitN(raw, ",", 2)
		if len(parts) == 2 {
			lat, latErr := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
			lon, lonErr := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
			if latErr == nil && lonErr == nil {
				filter.Latitude = &lat
				filter.Longitude = &lon
			}
		}
	}

	return filter
}
