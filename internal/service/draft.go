package service

import (
	"github.com/safarhub/backoffice/internal/models"
)

// Draft helpers. A draft is the locally-owned working copy of a record
// held while editing; every helper is a pure function that returns a
// new value and leaves its input untouched.

// Merge returns a copy of the draft with exactly one field overridden.
// Every other field keeps its previous value.
func Merge(draft map[string]interface{}, field string, value interface{}) map[string]interface{} {
	merged := make(map[string]interface{}, len(draft)+1)
	for k, v := range draft {
		merged[k] = v
	}
	merged[field] = value
	return merged
}

// MergeAll applies a set of field overrides in one pass
func MergeAll(draft map[string]interface{}, fields map[string]interface{}) map[string]interface{} {
	merged := make(map[string]interface{}, len(draft)+len(fields))
	for k, v := range draft {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return merged
}

// AppendItem adds a default-valued element to the end of a composite
// field, preserving the existing elements and their order.
func AppendItem[T any](list []T, item T) []T {
	out := make([]T, 0, len(list)+1)
	out = append(out, list...)
	return append(out, item)
}

// UpdateAt replaces fields of the element at index i via mutate,
// preserving length, order and every other element. An out-of-range
// index returns the list unchanged.
func UpdateAt[T any](list []T, i int, mutate func(*T)) []T {
	if i < 0 || i >= len(list) {
		return list
	}
	out := make([]T, len(list))
	copy(out, list)
	mutate(&out[i])
	return out
}

// RemoveAt filters out the element at index i. Remaining elements keep
// their relative order and are not renumbered.
func RemoveAt[T any](list []T, i int) []T {
	if i < 0 || i >= len(list) {
		return list
	}
	out := make([]T, 0, len(list)-1)
	out = append(out, list[:i]...)
	return append(out, list[i+1:]...)
}

// RenumberDays makes itinerary day numbers contiguous again after a
// removal. Itinerary days are the one composite field whose domain
// requires sequential numbering; flight legs and price tiers are not
// renumbered.
func RenumberDays(days []models.ItineraryDay) []models.ItineraryDay {
	out := make([]models.ItineraryDay, len(days))
	copy(out, days)
	for i := range out {
		out[i].Day = i + 1
	}
	return out
}
