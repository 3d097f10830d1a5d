package h3

import (
	"fmt"
	"math"

	"github.com/couchcryptid/ride-data-etl/internal/domain"
	uberh3 "github.com/uber/h3-go/v4"
)

// MaxResolution is the finest H3 resolution.
const MaxResolution = 15

// Indexer implements domain.CellIndexer using the H3 library.
type Indexer struct{}

// NewIndexer creates an H3 indexer.
func NewIndexer() *Indexer {
	return &Indexer{}
}

// CellFor returns the hex-encoded H3 cell containing the coordinate.
func (Indexer) CellFor(lat, lng float64, resolution int) (domain.CellID, error) {
	if resolution < 0 || resolution > MaxResolution {
		return "", fmt.Errorf("h3 resolution %d out of range 0-%d", resolution, MaxResolution)
	}
	if !finite(lat) || !finite(lng) {
		return "", fmt.Errorf("h3 cell for non-finite coordinate %v,%v", lat, lng)
	}

	cell := uberh3.LatLngToCell(uberh3.NewLatLng(lat, lng), resolution)
	if !cell.IsValid() {
		return "", fmt.Errorf("h3 cell for %v,%v at resolution %d: invalid index", lat, lng, resolution)
	}
	return domain.CellID(cell.String()), nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
