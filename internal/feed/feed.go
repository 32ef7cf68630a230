// Package feed reads cached close-approach records.
//
// Fetching is done elsewhere; this package only decodes the cache file that
// the fetcher leaves behind.
package feed

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

// DateLayout is the layout used for approach dates in the cache file.
const DateLayout = "2006-01-02"

// ErrEmpty is returned when a cache file holds no usable records.
var ErrEmpty = errors.New("feed: no records")

// Record is one close approach. Records are immutable once loaded.
type Record struct {
	Name        string    `yaml:"name"`
	Date        time.Time `yaml:"-"`
	DistanceKm  float64   `yaml:"distance_km"`
	VelocityKmS float64   `yaml:"velocity_km_s"`
}

// rawRecord mirrors Record with the date kept as text.
type rawRecord struct {
	Name        string  `yaml:"name"`
	Date        string  `yaml:"date"`
	DistanceKm  float64 `yaml:"distance_km"`
	VelocityKmS float64 `yaml:"velocity_km_s"`
}

type cacheFile struct {
	Fetched time.Time   `yaml:"fetched"`
	Records []rawRecord `yaml:"records"`
}

// Feed is a decoded cache.
type Feed struct {
	Fetched time.Time
	Records []Record
	// Skipped counts entries dropped for missing names, bad dates or
	// non-positive distances.
	Skipped int
}

// Load reads and decodes a cache file.
func Load(path string) (*Feed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading feed %s: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing feed %s: %w", path, err)
	}
	return f, nil
}

// Parse decodes cache file contents. Records are returned ordered by date,
// then by name.
func Parse(data []byte) (*Feed, error) {
	var raw cacheFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	f := &Feed{Fetched: raw.Fetched}
	for _, r := range raw.Records {
		if r.Name == "" || r.DistanceKm <= 0 {
			f.Skipped++
			continue
		}
		date, err := time.Parse(DateLayout, r.Date)
		if err != nil {
			f.Skipped++
			continue
		}
		f.Records = append(f.Records, Record{
			Name:        r.Name,
			Date:        date,
			DistanceKm:  r.DistanceKm,
			VelocityKmS: r.VelocityKmS,
		})
	}
	if len(f.Records) == 0 {
		return f, ErrEmpty
	}

	sort.SliceStable(f.Records, func(i, j int) bool {
		a, b := f.Records[i], f.Records[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		return a.Name < b.Name
	})
	return f, nil
}

// Save writes records as a cache file. Used by tools and tests.
func Save(path string, fetched time.Time, records []Record) error {
	raw := cacheFile{Fetched: fetched}
	for _, r := range records {
		raw.Records = append(raw.Records, rawRecord{
			Name:        r.Name,
			Date:        r.Date.Format(DateLayout),
			DistanceKm:  r.DistanceKm,
			VelocityKmS: r.VelocityKmS,
		})
	}
	data, err := yaml.Marshal(&raw)
	if err != nil {
		return fmt.Errorf("marshaling feed: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing feed %s: %w", path, err)
	}
	return nil
}

// Limit returns at most n records, keeping the closest approaches.
// The returned slice keeps date order.
func Limit(records []Record, n int) []Record {
	if n <= 0 || len(records) <= n {
		return records
	}
	idx := make([]int, len(records))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return records[idx[a]].DistanceKm < records[idx[b]].DistanceKm
	})
	keep := idx[:n]
	sort.Ints(keep)

	out := make([]Record, 0, n)
	for _, i := range keep {
		out = append(out, records[i])
	}
	return out
}
