// Package fieldparse converts raw provider strings into normalized values.
//
// The parsers never fail the caller. When a string cannot be converted the
// Parser logs a diagnostic naming the field and the raw value, notifies its
// FailureRecorder, and returns the field's sentinel:
//
//	VCPUCount   -> Number(0)
//	Memory      -> Unknown
//	ClockSpeed  -> Unknown
//	MonthlyCost -> unknown cost
//
// Every provider adapter shares these primitives, so all clouds get the same
// numeric semantics and the same rounding.
package fieldparse
