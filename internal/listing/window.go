// Package listing implements the paginated "load more" protocol shared by the
// home search and the profile browser: windowing an ordered result list,
// deciding between a full page and a partial-data response, and assembling the
// partial-data envelope from rendered item fragments.
package listing

// Window returns the items in [offset, offset+limit) clipped to the bounds of
// items, and the number of items left after the window. Out-of-range values
// never fail: negative offset or limit are treated as 0 and a window past the
// end is empty. resultsLeft is 0 exactly when the window reaches the end.
func Window[T any](items []T, offset, limit int) (slice []T, resultsLeft int) {
	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}

	n := len(items)
	start := min(offset, n)
	end := n
	if limit < n-start {
		end = start + limit
	}

	return items[start:end:end], n - end
}
