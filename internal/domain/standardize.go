package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// CellIndexer maps a coordinate to a hierarchical hexagonal cell.
type CellIndexer interface {
	CellFor(lat, lng float64, resolution int) (CellID, error)
}

// ParseRide decodes a ride record. It reports false when the element is not
// an object or a known field has the wrong JSON type.
func ParseRide(raw json.RawMessage) (Ride, bool) {
	var ride Ride
	if err := json.Unmarshal(raw, &ride); err != nil {
		return Ride{}, false
	}
	return ride, true
}

// StandardizeRide flattens one ride into standardized records.
//
// Rides that fail to parse, lack a complete pickup or destination pair, or list
// a null destination yield no records and no error. Indexer failures are returned.
func StandardizeRide(raw json.RawMessage, indexer CellIndexer, resolution int) ([]StandardRecord, error) {
	ride, ok := ParseRide(raw)
	if !ok {
		return nil, nil
	}
	if !ride.PickupLatLng.Complete() || !ride.DestinationLatLng.Complete() {
		return nil, nil
	}
	names, ok := ride.DestinationNames()
	if !ok {
		return nil, nil
	}

	routeNumber := strings.TrimSpace(ride.RouteNumber)
	pickupPoint := ride.PickupPoint
	pickup := Point{Latitude: *ride.PickupLatLng.Latitude, Longitude: *ride.PickupLatLng.Longitude}
	destination := Point{Latitude: *ride.DestinationLatLng.Latitude, Longitude: *ride.DestinationLatLng.Longitude}

	pickupCell, err := indexer.CellFor(pickup.Latitude, pickup.Longitude, resolution)
	if err != nil {
		return nil, fmt.Errorf("pickup cell for route %q: %w", routeNumber, err)
	}
	destinationCell, err := indexer.CellFor(destination.Latitude, destination.Longitude, resolution)
	if err != nil {
		return nil, fmt.Errorf("destination cell for route %q: %w", routeNumber, err)
	}

	records := make([]StandardRecord, 0, len(names))
	records = append(records, StandardRecord{
		RouteNumber:       &routeNumber,
		PickupPoint:       &pickupPoint,
		PickupLatLng:      &pickup,
		PickupHexID:       pickupCell,
		Destination:       strings.TrimSpace(names[0]),
		DestinationLatLng: destination,
		DestinationHexID:  destinationCell,
	})

	// Rides carry one destination_latlng, so continuations share its cell.
	for _, name := range names[1:] {
		records = append(records, StandardRecord{
			Destination:       strings.TrimSpace(name),
			DestinationLatLng: destination,
			DestinationHexID:  destinationCell,
		})
	}
	return records, nil
}
