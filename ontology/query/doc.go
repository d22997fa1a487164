// Package query evaluates declarative graph-pattern queries against an
// ontology store.
//
// # Query Language
//
// Queries are a SPARQL-like conjunction of triple patterns with a
// projection list:
//
//	SELECT ?x ?z WHERE { ?x knows ?y . ?y knows ?z }
//
// Each pattern is subject predicate object. A term starting with '?' is a
// variable; a double-quoted term is a string literal; a term parseable as
// a number is a float literal; any other term is an identifier, qualified
// against the store's namespace. Literals may appear only in the object
// position. The separator '.' between patterns is optional before the
// closing brace.
//
// # Evaluation
//
// Execution is a nested-loop join: patterns are evaluated left to right,
// each filtering the fact set by its fixed terms and the bindings
// accumulated so far. When the predicate term is fixed the store's
// predicate index narrows the scan. Result rows follow insertion order of
// the first pattern's matching facts, refined in the same order by
// subsequent joins.
package query
