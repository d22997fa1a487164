// Package vocabulary provides namespace-qualified identifier handling for
// the ontology store.
//
// Every class, individual, and property name that enters the store is
// qualified against a single base namespace before it is used as a key. The
// qualification is a pure string transform:
//
//   - Names already containing the namespace pass through unchanged.
//   - Short names have every character outside [A-Za-z0-9] replaced with
//     an underscore, then the namespace prepended.
//
// Qualification is idempotent, so callers may pass either short names or
// fully qualified identifiers to any store operation.
//
// # Identifier Format
//
// Qualified identifiers follow the RDF convention of a base URI, a '#'
// separator, and a local fragment:
//
//	http://example.org/kb#alice
//	└──── namespace ─────┘└local┘
//
// LocalName inverts the qualification for display purposes, returning the
// fragment after the final '#'.
package vocabulary
