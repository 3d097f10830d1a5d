package domain

import "encoding/json"

// DefaultResolution is the H3 resolution used for pickup and destination cells.
const DefaultResolution = 9

// PlaceholderDestination stands in for rides that list no destinations.
const PlaceholderDestination = "Unknown"

// CellID is a spatial-index cell identifier rendered as lowercase hex.
type CellID string

// LatLng is an endpoint mapping. Nil fields mean the coordinate was null or absent.
type LatLng struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// Complete reports whether both coordinates are set.
func (l *LatLng) Complete() bool {
	return l != nil && l.Latitude != nil && l.Longitude != nil
}

// Ride is the typed view of a ride record used by standardization.
type Ride struct {
	RouteNumber       string    `json:"route_number"`
	PickupPoint       string    `json:"pickup_point"`
	PickupLatLng      *LatLng   `json:"pickup_latlng"`
	DestinationLatLng *LatLng   `json:"destination_latlng"`
	Destinations      []*string `json:"destinations"`
}

// DestinationNames returns the listed destinations, or the placeholder when
// none are listed. It reports false if any entry is null.
func (r Ride) DestinationNames() ([]string, bool) {
	if len(r.Destinations) == 0 {
		return []string{PlaceholderDestination}, true
	}
	names := make([]string, 0, len(r.Destinations))
	for _, d := range r.Destinations {
		if d == nil {
			return nil, false
		}
		names = append(names, *d)
	}
	return names, true
}

// Point is a concrete coordinate pair as written to standardized output.
type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// StandardRecord is one flat row of standardized output. Continuation records
// leave the route and pickup fields nil so they are omitted from JSON.
type StandardRecord struct {
	RouteNumber       *string `json:"route_number,omitempty"`
	PickupPoint       *string `json:"pickup_point,omitempty"`
	PickupLatLng      *Point  `json:"pickup_latlng,omitempty"`
	PickupHexID       CellID  `json:"pickup_hexid,omitempty"`
	Destination       string  `json:"destination"`
	DestinationLatLng Point   `json:"destination_latlng"`
	DestinationHexID  CellID  `json:"destination_hexid"`
}

// IsContinuation reports whether the record lacks route and pickup context.
func (r StandardRecord) IsContinuation() bool {
	return r.PickupLatLng == nil
}

// Partition holds the classified buckets of one partitioning run.
type Partition struct {
	Complete   []json.RawMessage
	Incomplete []json.RawMessage
	Dropped    int
}

// Total returns the number of input elements the partition accounts for.
func (p Partition) Total() int {
	return len(p.Complete) + len(p.Incomplete) + p.Dropped
}

// CompleteDocument is the on-disk shape of the complete bucket.
type CompleteDocument struct {
	NonNullObjects []json.RawMessage `json:"non_null_objects"`
}

// IncompleteDocument is the on-disk shape of the incomplete bucket.
type IncompleteDocument struct {
	NullObjects []json.RawMessage `json:"null_objects"`
}
