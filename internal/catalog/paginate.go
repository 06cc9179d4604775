package catalog

// Paginate returns the 1-based page of items: the window [(page-1)*PageSize, page*PageSize)
// clamped to len(items). Pages before the first or past the last are empty.
func Paginate[T any](items []T, page int) []T {
	if page < 1 || page-1 > len(items)/PageSize {
		return []T{}
	}
	start := (page - 1) * PageSize
	if start >= len(items) {
		return []T{}
	}
	end := min(start+PageSize, len(items))
	return items[start:end]
}
