// Package render derives what the list shows from the cached gifts.
package render

import (
	"sort"

	"github.com/angelmondragon/wishlist-backend/internal/gifts"
)

// FilterAll shows every category.
const FilterAll = "all"

// ComputeView returns the gifts visible under filter: pending gifts first,
// done gifts last, each group keeping the store order. The input is not
// modified.
func ComputeView(list []gifts.Gift, filter string) []gifts.Gift {
	if filter == "" {
		filter = FilterAll
	}
	view := make([]gifts.Gift, 0, len(list))
	for _, g := range list {
		if filter == FilterAll || g.Category == filter {
			view = append(view, g)
		}
	}
	sort.SliceStable(view, func(i, j int) bool {
		return !view[i].Done && view[j].Done
	})
	return view
}
