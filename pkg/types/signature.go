package types

import "strings"

// Param is one named parameter of a callable.
type Param struct {
	Name string
	Type Descriptor
	// Decl is the type as spelled in the declaration, e.g. "[]int32".
	Decl string
}

// Signature holds the descriptors of a callable: one per parameter slot and
// one for the return slot.
type Signature struct {
	// Name is the callable name as declared.
	Name string
	// Receiver is the owning type name for methods and constructors, "" for functions.
	Receiver string
	// Params are the parameters in declaration order.
	Params []Param
	// Return is the return descriptor; Void() when the callable returns nothing.
	Return Descriptor
	// Result is the result type as spelled in the declaration, "" when none.
	Result string
	// Output names the parameter observed as the result of a void callable.
	// Empty means "not set explicitly".
	Output string
}

// Arity returns the number of parameters.
func (s *Signature) Arity() int {
	return len(s.Params)
}

// ParamIndex returns the index of the named parameter, or -1.
func (s *Signature) ParamIndex(name string) int {
	for i, p := range s.Params {
		if p.Name == name {
			return i
		}
	}
	return -1
}

// OutputParam returns the parameter whose post-call state is the observable
// result of a void callable. The explicit Output wins; otherwise the first
// non-scalar parameter by position is used and inferred is true. It returns
// -1 when the callable has a return value or no candidate exists.
func (s *Signature) OutputParam() (index int, inferred bool) {
	if !s.Return.IsVoid() {
		return -1, false
	}
	if s.Output != "" {
		if i := s.ParamIndex(s.Output); i >= 0 {
			return i, false
		}
	}
	for i, p := range s.Params {
		if !p.Type.IsScalar() {
			return i, true
		}
	}
	return -1, false
}

// NonScalarParams counts parameters that can carry an in-place result.
func (s *Signature) NonScalarParams() int {
	n := 0
	for _, p := range s.Params {
		if !p.Type.IsScalar() {
			n++
		}
	}
	return n
}

// String renders the signature in Java-like form.
func (s *Signature) String() string {
	var b strings.Builder
	b.WriteString(s.Return.String())
	b.WriteByte(' ')
	if s.Receiver != "" {
		b.WriteString(s.Receiver)
		b.WriteByte('.')
	}
	b.WriteString(s.Name)
	b.WriteByte('(')
	for i, p := range s.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Type.String())
		if p.Name != "" {
			b.WriteByte(' ')
			b.WriteString(p.Name)
		}
	}
	b.WriteByte(')')
	return b.String()
}

// Clone returns a copy of s that shares no slices with it.
func (s *Signature) Clone() *Signature {
	c := *s
	c.Params = append([]Param(nil), s.Params...)
	return &c
}
