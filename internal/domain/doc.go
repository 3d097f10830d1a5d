// Package domain models ride records and the two batch transformations applied
// to them: coordinate-completeness partitioning and H3 standardization.
//
// # Ride Records
//
// A ride record is a JSON object exported from the route survey:
//
//	{
//	    "route_number": " 12A ",
//	    "pickup_point": "Bole Medhanialem",
//	    "pickup_latlng": {"latitude": 8.99, "longitude": 38.79},
//	    "destination_latlng": {"latitude": 9.03, "longitude": 38.75},
//	    "destinations": ["Piassa", "Arat Kilo"]
//	}
//
// Coordinates are numbers or null. Surveyors left them null when a stop could
// not be located, so null is common and is not an error.
//
// # Partitioning
//
// Each element of the input array falls into exactly one of three outcomes:
//
//	Complete    both endpoint objects present, all four coordinates non-null
//	Incomplete  both endpoint objects present, at least one coordinate null or absent
//	Dropped     element is not an object, or an endpoint is absent or not an object
//
// Dropped elements are excluded from both output documents without an error.
// Kept elements are written back verbatim, so key order and any unknown fields
// survive the round trip.
//
// # Standardization
//
// Standardization flattens a complete ride into one record per destination.
// The first destination produces a full record carrying route and pickup
// context; every further destination produces a continuation record with only
// the destination fields. Rides carry a single destination_latlng, so every
// continuation reuses the coordinates and cell computed for the first
// destination. See [StandardizeRide].
//
// Cells are H3 indexes rendered as lowercase hex, computed at [DefaultResolution]
// unless configured otherwise.
package domain
