// Package reference provides the typed bibliographic reference model.
//
// A reference keeps its fields in four maps keyed by variable kind:
// ordinary (plain strings), number, name and date. A variable appears in
// at most one map; the CSL-JSON ingest routes each field by the variable
// catalog in variables.go.
//
// References are supplied once and replaced atomically on re-ingest; they
// are never mutated in place, so the engine shares them freely across
// derived queries.
package reference
