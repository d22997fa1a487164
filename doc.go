// Package ontologyapi provides a persisted knowledge graph for typed
// individuals, class memberships, and named relations between individuals
// or between an individual and a literal value.
//
// # Architecture
//
// The module is organized in four layers:
//
//	┌─────────────────────────────────────┐
//	│         cmd/ontology                │  CLI verbs over one
//	│  (open, mutate, query, close)       │  ontology file
//	└─────────────────────────────────────┘
//	           ↓ uses
//	┌─────────────────────────────────────┐
//	│           storage                   │  Load-on-open /
//	│   (triple file format, Open/Close)  │  write-on-close
//	└─────────────────────────────────────┘
//	           ↓ materializes
//	┌─────────────────────────────────────┐
//	│       ontology + ontology/query     │  In-memory fact store,
//	│   (store, cascade, pattern joins)   │  SELECT/WHERE evaluation
//	└─────────────────────────────────────┘
//	           ↓ keyed by
//	┌─────────────────────────────────────┐
//	│          vocabulary                 │  Namespace-qualified
//	│   (Qualify, LocalName)              │  identifiers
//	└─────────────────────────────────────┘
//
// All identifiers are namespace-qualified before they are stored; raw short
// names never appear as keys. Mutations happen only through explicit store
// operations, and nothing is written to disk until the storage handle is
// closed.
//
// # Concurrency
//
// The store is single-threaded by contract. It performs no internal locking;
// callers that share a store across goroutines must serialize access with one
// writer or many readers at a time.
package ontologyapi
