package slab

// SetIDSource replaces the cutout id generator for the duration of a test.
func SetIDSource(fn func() string) (restore func()) {
	old := newID
	newID = fn
	return func() { newID = old }
}
