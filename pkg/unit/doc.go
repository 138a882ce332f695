// Package unit defines the storage unit configuration captured by the form:
// the root StorageUnit with its ordered Compartments and SensorAreas, and the
// pure derivation helpers that turn a unit code id plus a 1-based position
// into compartment codes, sensor area external ids, and sensor pin ids.
// Mutation rules live in pkg/formstate; this package only holds values.
package unit
