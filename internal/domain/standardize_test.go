package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- fake indexer ---

type fakeIndexer struct {
	calls int
	err   error
}

func (f *fakeIndexer) CellFor(lat, lng float64, resolution int) (CellID, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return CellID(fmt.Sprintf("r%d:%g,%g", resolution, lat, lng)), nil
}

func strPtr(s string) *string { return &s }

// --- tests ---

func TestStandardizeRide_ExplodesDestinations(t *testing.T) {
	raw := json.RawMessage(`{
		"route_number": "  12A ",
		"pickup_point": "Bole",
		"pickup_latlng": {"latitude": 8.99, "longitude": 38.79},
		"destination_latlng": {"latitude": 9.03, "longitude": 38.75},
		"destinations": [" A", "B ", "C"]
	}`)
	idx := &fakeIndexer{}

	got, err := StandardizeRide(raw, idx, DefaultResolution)
	require.NoError(t, err)

	dest := Point{Latitude: 9.03, Longitude: 38.75}
	destCell := CellID("r9:9.03,38.75")
	want := []StandardRecord{
		{
			RouteNumber:       strPtr("12A"),
			PickupPoint:       strPtr("Bole"),
			PickupLatLng:      &Point{Latitude: 8.99, Longitude: 38.79},
			PickupHexID:       "r9:8.99,38.79",
			Destination:       "A",
			DestinationLatLng: dest,
			DestinationHexID:  destCell,
		},
		{Destination: "B", DestinationLatLng: dest, DestinationHexID: destCell},
		{Destination: "C", DestinationLatLng: dest, DestinationHexID: destCell},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}
	assert.False(t, got[0].IsContinuation())
	assert.True(t, got[1].IsContinuation())
	assert.True(t, got[2].IsContinuation())
	assert.Equal(t, 2, idx.calls, "cells are computed once per ride")
}

func TestStandardizeRide_DefaultsToPlaceholderDestination(t *testing.T) {
	for name, destinations := range map[string]string{
		"absent": ``,
		"null":   `, "destinations": null`,
		"empty":  `, "destinations": []`,
	} {
		t.Run(name, func(t *testing.T) {
			raw := json.RawMessage(`{"route_number": "7", "pickup_point": "P",
				"pickup_latlng": {"latitude": 1, "longitude": 2},
				"destination_latlng": {"latitude": 3, "longitude": 4}` + destinations + `}`)

			got, err := StandardizeRide(raw, &fakeIndexer{}, DefaultResolution)
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, PlaceholderDestination, got[0].Destination)
			assert.Equal(t, "7", *got[0].RouteNumber)
		})
	}
}

func TestStandardizeRide_SkipsIncompleteRides(t *testing.T) {
	cases := map[string]string{
		"missing destination latitude": `{"pickup_latlng": {"latitude": 1, "longitude": 2}, "destination_latlng": {"longitude": 4}, "destinations": ["A", "B"]}`,
		"null pickup longitude":        `{"pickup_latlng": {"latitude": 1, "longitude": null}, "destination_latlng": {"latitude": 3, "longitude": 4}}`,
		"missing destination mapping":  `{"pickup_latlng": {"latitude": 1, "longitude": 2}}`,
		"missing pickup mapping":       `{"destination_latlng": {"latitude": 3, "longitude": 4}}`,
		"string coordinate":            `{"pickup_latlng": {"latitude": "1", "longitude": 2}, "destination_latlng": {"latitude": 3, "longitude": 4}}`,
		"non-object element":           `"not a ride"`,
		"null element":                 `null`,
		"null destination entry":       `{"pickup_latlng": {"latitude": 1, "longitude": 2}, "destination_latlng": {"latitude": 3, "longitude": 4}, "destinations": ["A", null]}`,
		"numeric destination entry":    `{"pickup_latlng": {"latitude": 1, "longitude": 2}, "destination_latlng": {"latitude": 3, "longitude": 4}, "destinations": ["A", 7]}`,
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			idx := &fakeIndexer{}
			got, err := StandardizeRide(json.RawMessage(raw), idx, DefaultResolution)
			require.NoError(t, err)
			assert.Empty(t, got)
			assert.Zero(t, idx.calls)
		})
	}
}

func TestStandardizeRide_IndexerError(t *testing.T) {
	raw := json.RawMessage(`{"route_number": "9", "pickup_latlng": {"latitude": 1, "longitude": 2}, "destination_latlng": {"latitude": 3, "longitude": 4}}`)
	boom := errors.New("boom")

	_, err := StandardizeRide(raw, &fakeIndexer{err: boom}, DefaultResolution)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), `"9"`)
}

func TestStandardRecord_JSONShape(t *testing.T) {
	full := StandardRecord{
		RouteNumber:       strPtr("1"),
		PickupPoint:       strPtr("P"),
		PickupLatLng:      &Point{Latitude: 1, Longitude: 2},
		PickupHexID:       "abc",
		Destination:       "D",
		DestinationLatLng: Point{Latitude: 3, Longitude: 4},
		DestinationHexID:  "def",
	}
	out, err := json.Marshal(full)
	require.NoError(t, err)
	assert.Equal(t,
		`{"route_number":"1","pickup_point":"P","pickup_latlng":{"latitude":1,"longitude":2},"pickup_hexid":"abc","destination":"D","destination_latlng":{"latitude":3,"longitude":4},"destination_hexid":"def"}`,
		string(out))

	cont := StandardRecord{Destination: "E", DestinationLatLng: Point{Latitude: 3, Longitude: 4}, DestinationHexID: "def"}
	out, err = json.Marshal(cont)
	require.NoError(t, err)
	assert.Equal(t, `{"destination":"E","destination_latlng":{"latitude":3,"longitude":4},"destination_hexid":"def"}`, string(out))
}
