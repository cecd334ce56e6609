package helpers

// SafeFirstN returns at most the first n elements of slice.
func SafeFirstN[T any](slice []T, n int) []T {
	if len(slice) > n {
		return slice[:n]
	}
	return slice
}

// SafeLastN returns at most the last n elements of slice.
func SafeLastN[T any](slice []T, n int) []T {
	if len(slice) > n {
		return slice[len(slice)-n:]
	}
	return slice
}

// Batch splits items into batches of at most batchSize elements.
func Batch[T any](items []T, batchSize int) [][]T {
	batches := make([][]T, 0)
	for i := 0; i < len(items); i += batchSize {
		end := min(i+batchSize, len(items))
		batches = append(batches, items[i:end])
	}
	return batches
}
