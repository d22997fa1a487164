// Package storage is the persistence boundary around the ontology store:
// load-on-open, write-on-close, nothing in between.
//
// # File Format
//
// Ontologies persist as a line-oriented triple document. Each line is one
// record; the first field selects the record type:
//
//	class <iri>
//	ind   <iri> <class-iri>
//	rel   <subject> <predicate> <object-iri>
//	str   <subject> <predicate> "<string literal>"
//	num   <subject> <predicate> <float>
//
// Blank lines and lines starting with '#' are ignored. Individuals emit
// one "ind" line per class membership, in membership order. Facts appear
// in insertion order, so a load→save→load round trip preserves every
// ordering guarantee the store makes.
//
// IRI fields are percent-escaped ('%', space, tab, CR, LF), since
// identifiers that already carry the namespace pass through qualification
// unsanitized and may contain characters that would otherwise break the
// field and line structure. String literals are Go-quoted instead.
//
// # Lifecycle
//
// Open creates the file when it does not exist, mirroring the behavior of
// the original ontology API. Close rewrites the whole document through a
// temp-file rename, so a crash mid-write never truncates the previous
// state. Mutations between Open and Close live only in memory.
package storage
