// Package catalog supplies the fixed set of municipalities to assess, read
// from a worldcities-style reference CSV and filtered to one administrative
// region.
package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/guaibalabs/weather-risk/internal/domain"
)

// ErrUnavailable marks a catalog that cannot be loaded. It is fatal for the
// whole batch: with no location set there is no meaningful result.
var ErrUnavailable = errors.New("city catalog unavailable")

// Required columns of the reference CSV.
const (
	colCity   = "city"
	colLat    = "lat"
	colLon    = "lng"
	colRegion = "admin_name"
)

// Catalog reads municipalities from a CSV file on every List call. The
// reference dataset is small enough that re-reading keeps the catalog free
// of cross-run state.
type Catalog struct {
	path   string
	region string
}

// New creates a Catalog over the CSV at path, filtered to the given
// administrative region.
func New(path, region string) *Catalog {
	return &Catalog{path: path, region: region}
}

// Region returns the administrative region this catalog is filtered to.
func (c *Catalog) Region() string { return c.region }

// List returns the region's municipalities in file order. Any read or parse
// problem wraps ErrUnavailable.
func (c *Catalog) List() ([]domain.Location, error) {
	f, err := os.Open(c.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer f.Close()

	return c.parse(f)
}

func (c *Catalog) parse(r io.Reader) ([]domain.Location, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %v", ErrUnavailable, err)
	}

	cols := map[string]int{}
	for i, name := range header {
		cols[name] = i
	}
	for _, required := range []string{colCity, colLat, colLon, colRegion} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrUnavailable, required)
		}
	}

	var locations []domain.Location
	for line := 2; ; line++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrUnavailable, line, err)
		}

		if record[cols[colRegion]] != c.region {
			continue
		}

		lat, err := strconv.ParseFloat(record[cols[colLat]], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: bad latitude %q", ErrUnavailable, line, record[cols[colLat]])
		}
		lon, err := strconv.ParseFloat(record[cols[colLon]], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: bad longitude %q", ErrUnavailable, line, record[cols[colLon]])
		}

		locations = append(locations, domain.Location{
			City: record[cols[colCity]],
			Lat:  lat,
			Lon:  lon,
		})
	}

	return locations, nil
}
