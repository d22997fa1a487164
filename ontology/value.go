package ontology

import "strconv"

// ValueKind discriminates the closed set of object types a relation fact
// can carry.
type ValueKind int

const (
	// KindIRI is a reference to another individual by qualified identifier.
	KindIRI ValueKind = iota
	// KindString is a string literal.
	KindString
	// KindFloat is a 64-bit floating-point literal.
	KindFloat
)

// String returns the string representation of ValueKind.
func (k ValueKind) String() string {
	switch k {
	case KindIRI:
		return "iri"
	case KindString:
		return "string"
	case KindFloat:
		return "float"
	default:
		return "unknown"
	}
}

// Value is the object position of a relation fact: an individual reference
// or a literal. Exactly one of the payload fields is meaningful, selected
// by Kind.
type Value struct {
	Kind  ValueKind
	IRI   string
	Str   string
	Float float64
}

// IRIValue builds a Value referencing an individual by qualified identifier.
func IRIValue(iri string) Value {
	return Value{Kind: KindIRI, IRI: iri}
}

// StringValue builds a string literal Value.
func StringValue(s string) Value {
	return Value{Kind: KindString, Str: s}
}

// FloatValue builds a float literal Value.
func FloatValue(f float64) Value {
	return Value{Kind: KindFloat, Float: f}
}

// IsLiteral reports whether the value is a string or float literal rather
// than an individual reference.
func (v Value) IsLiteral() bool {
	return v.Kind == KindString || v.Kind == KindFloat
}

// Equal reports whether two values have the same kind and payload.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindIRI:
		return v.IRI == o.IRI
	case KindString:
		return v.Str == o.Str
	case KindFloat:
		return v.Float == o.Float
	default:
		return false
	}
}

// String renders the value for logs and CLI output. Floats use the
// shortest representation that round-trips.
func (v Value) String() string {
	switch v.Kind {
	case KindIRI:
		return v.IRI
	case KindString:
		return v.Str
	case KindFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	default:
		return ""
	}
}

// Fact is one relation fact. Seq is the store-assigned insertion sequence;
// it is unique per store and strictly increasing in insertion order.
type Fact struct {
	Subject   string
	Predicate string
	Object    Value
	Seq       uint64
}
