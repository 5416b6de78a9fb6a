package engine

// Limits bounds recursive traversals over document structures. They
// guard against pathological documents (cyclic or extremely deep
// trees), not against well-formed ones.
type Limits struct {
	// Maximum outline nesting depth. Default: 256.
	MaxOutlineDepth int

	// Maximum page tree depth. Default: 64.
	MaxPageTreeDepth int

	// Maximum name tree depth for named-destination lookup. Default: 64.
	MaxNameTreeDepth int
}

// DefaultLimits returns the default traversal bounds.
func DefaultLimits() Limits {
	return Limits{
		MaxOutlineDepth:  256,
		MaxPageTreeDepth: 64,
		MaxNameTreeDepth: 64,
	}
}
