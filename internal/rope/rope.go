// Package rope provides shared, immutable sub-slices of a single backing
// array. It is the Go counterpart of the reference-counted RcSlice/RcStr
// types in the original implementation: Rust needs an explicit Rc because
// it has no tracing GC, but Go's slices already alias a shared backing
// array and the garbage collector keeps that array alive for as long as
// any sub-slice references it. Rope exists only to make that sharing an
// explicit, documented contract rather than an accident of slicing, and
// to forbid mutation through the shared view.
package rope

// Slice is an immutable view over a shared backing array of T. Two
// Slices produced by slicing the same Of(full) share storage; neither
// copies the underlying elements.
type Slice[T any] struct {
	full  []T
	start int
	end   int
}

// Of wraps a backing array as a full-length Slice. Callers must not
// mutate full afterwards.
func Of[T any](full []T) Slice[T] {
	return Slice[T]{full: full, start: 0, end: len(full)}
}

// Empty returns the zero-length Slice.
func Empty[T any]() Slice[T] {
	return Slice[T]{}
}

// Len reports the number of elements in the slice.
func (s Slice[T]) Len() int { return s.end - s.start }

// IsEmpty reports whether the slice has no elements.
func (s Slice[T]) IsEmpty() bool { return s.end <= s.start }

// At returns the i-th element.
func (s Slice[T]) At(i int) T { return s.full[s.start+i] }

// Raw returns a read-only view of the elements. Callers must not mutate
// the returned slice; doing so would corrupt every other Slice sharing
// the same backing array.
func (s Slice[T]) Raw() []T {
	if s.end <= s.start {
		return nil
	}
	return s.full[s.start:s.end]
}

// Sub returns the sub-slice [start, end) of s, sharing storage with s.
func (s Slice[T]) Sub(start, end int) Slice[T] {
	if start < 0 || end < start || s.start+end > s.end {
		panic("rope: slice out of range")
	}
	return Slice[T]{full: s.full, start: s.start + start, end: s.start + end}
}

// SubFrom returns the sub-slice [start, Len()) of s.
func (s Slice[T]) SubFrom(start int) Slice[T] {
	return s.Sub(start, s.Len())
}

// String is the string specialization used for document text: it shares
// storage with the original decoded buffer so that token and tree nodes
// can hold substrings without copying the source text.
type String = Slice[byte]

// StringOf wraps a string's bytes as a shared, read-only buffer.
func StringOf(s string) String {
	return Of([]byte(s))
}

// Text returns a String's bytes as a string. This does copy, matching
// Go's string immutability; callers on a hot path should prefer Raw.
func Text(s String) string {
	return string(s.Raw())
}
