package journal

// Paginate returns the 1-indexed page of list. Non-positive arguments or a
// page past the end give an empty slice.
func Paginate[T any](list []T, pageSize, page int) []T {
	if pageSize <= 0 || page <= 0 {
		return []T{}
	}
	start := (page - 1) * pageSize
	if start >= len(list) {
		return []T{}
	}
	end := min(start+pageSize, len(list))
	return list[start:end]
}

// TotalPages is the number of pages needed for n items, at least 1.
func TotalPages(n, pageSize int) int {
	if pageSize <= 0 || n <= 0 {
		return 1
	}
	return (n + pageSize - 1) / pageSize
}
