// Package csvfile exports standardized records as a flat CSV table.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"

	"github.com/couchcryptid/ride-data-etl/internal/domain"
	"github.com/jszwec/csvutil"
)

// row is the CSV projection of a StandardRecord. Pickup columns are nil, and
// so empty, for continuation records.
type row struct {
	RouteNumber          *string  `csv:"route_number"`
	PickupPoint          *string  `csv:"pickup_point"`
	PickupLatitude       *float64 `csv:"pickup_latitude"`
	PickupLongitude      *float64 `csv:"pickup_longitude"`
	PickupHexID          string   `csv:"pickup_hexid"`
	Destination          string   `csv:"destination"`
	DestinationLatitude  float64  `csv:"destination_latitude"`
	DestinationLongitude float64  `csv:"destination_longitude"`
	DestinationHexID     string   `csv:"destination_hexid"`
}

func toRow(r domain.StandardRecord) row {
	out := row{
		RouteNumber:          r.RouteNumber,
		PickupPoint:          r.PickupPoint,
		PickupHexID:          string(r.PickupHexID),
		Destination:          r.Destination,
		DestinationLatitude:  r.DestinationLatLng.Latitude,
		DestinationLongitude: r.DestinationLatLng.Longitude,
		DestinationHexID:     string(r.DestinationHexID),
	}
	if r.PickupLatLng != nil {
		out.PickupLatitude = &r.PickupLatLng.Latitude
		out.PickupLongitude = &r.PickupLatLng.Longitude
	}
	return out
}

// Writer writes standardized records to a CSV file with a header row.
// It implements pipeline.BatchLoader.
type Writer struct {
	Path string
}

func (Writer) Name() string { return "csv" }

func (w Writer) LoadBatch(ctx context.Context, records []domain.StandardRecord) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.Create(w.Path)
	if err != nil {
		return fmt.Errorf("create %s: %w", w.Path, err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	cw := csv.NewWriter(f)
	enc := csvutil.NewEncoder(cw)
	if err := enc.EncodeHeader(row{}); err != nil {
		return fmt.Errorf("encode csv header: %w", err)
	}
	for i := range records {
		if err := enc.Encode(toRow(records[i])); err != nil {
			return fmt.Errorf("encode csv row %d: %w", i, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", w.Path, err)
	}
	return nil
}
