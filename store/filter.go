package store

import (
	"sort"
	"strings"

	"github.com/spf13/cast"

	"gomelclient/pkg/models"
)

// FilterCars narrows a car list in memory. MaxPrice of zero means
// unbounded; MinPrice of zero is the natural floor.
func FilterCars(cars []models.Car, f models.CarFilter) []models.Car {
	out := make([]models.Car, 0, len(cars))
	search := strings.ToLower(strings.TrimSpace(f.Search))
	for _, c := range cars {
		if f.City != "" && c.City != f.City {
			continue
		}
		if search != "" && !matchesSearch(c, search) {
			continue
		}
		if f.Type != "" && c.Type != f.Type {
			continue
		}
		if f.Transmission != "" && c.Transmission != f.Transmission {
			continue
		}
		if f.Fuel != "" && c.Fuel != f.Fuel {
			continue
		}
		if c.PricePerDay < f.MinPrice {
			continue
		}
		if f.MaxPrice > 0 && c.PricePerDay > f.MaxPrice {
			continue
		}
		out = append(out, c)
	}
	return out
}

func matchesSearch(c models.Car, q string) bool {
	return strings.Contains(strings.ToLower(c.Name), q) ||
		strings.Contains(strings.ToLower(c.Brand), q) ||
		strings.Contains(strings.ToLower(c.Type), q)
}

// SortCars orders a car list by the given key. When any car carries a range
// availability annotation, available-for-range cars sort first regardless of
// key. Sorting is stable so unaffected order is preserved.
func SortCars(cars []models.Car, sortBy string) []models.Car {
	out := make([]models.Car, len(cars))
	copy(out, cars)

	switch sortBy {
	case models.SortPriceLow:
		sort.SliceStable(out, func(i, j int) bool { return out[i].PricePerDay < out[j].PricePerDay })
	case models.SortPriceHigh:
		sort.SliceStable(out, func(i, j int) bool { return out[i].PricePerDay > out[j].PricePerDay })
	case models.SortRating:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	case models.SortNewest:
		sort.SliceStable(out, func(i, j int) bool {
			return cast.ToInt(out[i].ID.String()) > cast.ToInt(out[j].ID.String())
		})
	}

	annotated := false
	for _, c := range out {
		if c.AvailableForRange != nil {
			annotated = true
			break
		}
	}
	if annotated {
		sort.SliceStable(out, func(i, j int) bool {
			return availRank(out[i]) < availRank(out[j])
		})
	}
	return out
}

func availRank(c models.Car) int {
	if c.AvailableForRange != nil && *c.AvailableForRange {
		return 0
	}
	return 1
}
