// Package ontology implements the in-memory knowledge graph store: typed
// individuals, class memberships, and relation facts connecting individuals
// to each other or to literal values.
//
// # Data Model
//
// The atomic unit of stored knowledge is the relation fact, a
// (subject, predicate, object) triple where subject and predicate are
// namespace-qualified identifiers and the object is either another
// individual's identifier or a literal (string or float). Facts carry a
// store-assigned insertion sequence; every ordering and first-match
// guarantee in the API is defined in terms of that sequence.
//
// Individuals are created against a declared class and may accumulate
// further class memberships. Removing an individual cascades: every fact
// naming it as subject or object is removed in the same operation, so the
// store never holds a dangling reference.
//
// # Determinism
//
// Operations that must pick among multiple matching facts (RemoveProperty,
// PropertyValue) take the first-inserted fact, the one with the lowest
// sequence number. RemoveRelatedIndividuals snapshots its targets in
// sequence order before mutating, so deletion order is stable within a
// call.
//
// The store performs no internal locking; see the module documentation for
// the single-threaded contract.
package ontology
