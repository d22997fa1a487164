package vocabulary

import "strings"

// Separator terminates a namespace and precedes the local fragment.
const Separator = "#"

// Namespace is the base URI that qualifies all identifiers in one ontology.
// The zero value qualifies nothing; construct with New.
type Namespace string

// New builds a Namespace from a source URI, appending the fragment
// separator if the source does not already end with one.
//
// Example:
//
//	ns := vocabulary.New("http://example.org/kb")  // "http://example.org/kb#"
func New(source string) Namespace {
	if source == "" {
		return ""
	}
	if strings.HasSuffix(source, Separator) {
		return Namespace(source)
	}
	return Namespace(source + Separator)
}

// String returns the namespace including its trailing separator.
func (ns Namespace) String() string {
	return string(ns)
}

// Contains reports whether id already carries this namespace.
func (ns Namespace) Contains(id string) bool {
	return ns != "" && strings.Contains(id, string(ns))
}

// Qualify maps a short or already-qualified name to its canonical global
// identifier. Names that already contain the namespace pass through
// unchanged; otherwise every character outside [A-Za-z0-9] is replaced with
// an underscore and the namespace is prepended. Total and idempotent:
// Qualify(Qualify(x)) == Qualify(x) for all x.
func (ns Namespace) Qualify(name string) string {
	if ns.Contains(name) {
		return name
	}
	return string(ns) + sanitize(name)
}

// LocalName returns the local fragment of an identifier, stripping
// everything up to and including the final separator. Identifiers without
// a separator are returned unchanged.
func (ns Namespace) LocalName(id string) string {
	if i := strings.LastIndex(id, Separator); i >= 0 {
		return id[i+len(Separator):]
	}
	return id
}

// sanitize replaces every character outside [A-Za-z0-9] with an underscore.
func sanitize(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
