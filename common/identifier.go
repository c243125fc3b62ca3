package common

// Fresh derives a name from base that taken rejects, priming it as needed.
func Fresh(base string, taken func(string) bool) string {
	name := base
	for taken(name) {
		name += "'"
	}
	return name
}
