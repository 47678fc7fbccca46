package lattice

// Value is the capability set a value lattice must expose to be lifted
// into a separate domain. All operations are value-semantic.
//
// Bot and Top are instance-based factories (the receiver's contents are
// ignored), so generic code can obtain the extremal elements from any
// value, including the zero value.
type Value[V any] interface {
	Bot() V
	Top() V
	IsBot() bool
	IsTop() bool

	Leq(V) bool
	Eq(V) bool

	Join(V) V
	Meet(V) V
	Widen(V) V
	Narrow(V) V

	String() string
}
