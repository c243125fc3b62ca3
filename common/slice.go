package common

func PushFront[T any](s []T, x T) []T {
	return append([]T{x}, s...)
}
