// Package builder defines shared constants used by the tree generators.
package builder

//-----------------------------------------------------------------------------
// Builder Method Name Constants
//   used to prefix errors with the constructor name for context.
//-----------------------------------------------------------------------------

const (
	// MethodChain is the canonical name for the Chain constructor.
	MethodChain = "Chain"
	// MethodStar is the canonical name for the Star constructor.
	MethodStar = "Star"
	// MethodBinary is the canonical name for the Binary constructor.
	MethodBinary = "Binary"
	// MethodRandom is the canonical name for the Random constructor.
	MethodRandom = "Random"
	// MethodFromParents is the canonical name for the FromParents constructor.
	MethodFromParents = "FromParents"
)

//-----------------------------------------------------------------------------
// Size Defaults
//-----------------------------------------------------------------------------

// MinCliques is the smallest tree any constructor accepts: a lone root.
const MinCliques = 1

// DefaultFrontals is the number of frontal keys per clique.
const DefaultFrontals = 1

// DefaultSeparator is the maximum separator size of a non-root clique.
const DefaultSeparator = 1

// DefaultDim is the dimension of every generated variable.
const DefaultDim = 1

// DefaultCoefficient is returned by coefficient sources without an RNG.
const DefaultCoefficient = 0.5

// MinDiagonal bounds |R(i,i)| from below so that every conditional is
// well conditioned.
const MinDiagonal = 1.0

// NoParent marks the root in a parent index slice.
const NoParent = -1
