package services

import (
	"verve-storefront-io/api/pkg/models"
)

// MergeDisplayItems merges a candidate item into an ordered display list and
// returns a new list. The operation is total: a nil candidate is a no-op, a
// zero-or-negative quantity is a removal request (also a no-op when the id is
// absent), an identity match replaces in place, and anything else appends.
// The result never contains duplicate identities and never reorders
// untouched entries.
func MergeDisplayItems(items []models.DisplayItem, candidate *models.DisplayItem) []models.DisplayItem {
	if candidate == nil {
		return items
	}

	if candidate.Quantity <= 0 {
		out := make([]models.DisplayItem, 0, len(items))
		for _, item := range items {
			if item.Id != candidate.Id {
				out = append(out, item)
			}
		}
		return out
	}

	out := make([]models.DisplayItem, len(items))
	copy(out, items)

	// An exact id match always wins; only when no entry carries the
	// candidate's id does an equal, non-empty variant id count as the same
	// item (an optimistic local entry being replaced by its server-assigned
	// line). Checking id across the whole list first keeps ids unique: a
	// variant match can only fire when the candidate's id is absent.
	for i := range out {
		if out[i].Id == candidate.Id {
			out[i] = mergeDisplayFields(out[i], *candidate)
			return out
		}
	}
	for i := range out {
		if out[i].VariantId != "" && out[i].VariantId == candidate.VariantId {
			out[i] = mergeDisplayFields(out[i], *candidate)
			return out
		}
	}

	return append(out, *candidate)
}

// mergeDisplayFields shallow-merges candidate over existing: fields present
// on the candidate win, absent ones keep the existing value. Quantity is
// always taken from the candidate.
func mergeDisplayFields(existing, candidate models.DisplayItem) models.DisplayItem {
	merged := existing
	merged.Quantity = candidate.Quantity

	if candidate.Id != "" {
		merged.Id = candidate.Id
	}
	if candidate.Title != "" {
		merged.Title = candidate.Title
	}
	if candidate.Handle != "" {
		merged.Handle = candidate.Handle
	}
	if candidate.Thumbnail != "" {
		merged.Thumbnail = candidate.Thumbnail
	}
	if candidate.UnitPrice != 0 {
		merged.UnitPrice = candidate.UnitPrice
	}
	if candidate.VariantId != "" {
		merged.VariantId = candidate.VariantId
	}
	if candidate.ProductId != "" {
		merged.ProductId = candidate.ProductId
	}
	if candidate.Metadata != nil {
		merged.Metadata = candidate.Metadata
	}
	return merged
}
