// Package normalizer drives a run: it reads every provider export in output
// order, normalizes each row through the provider's adapter, drops records
// whose monthly cost could not be parsed, merges the providers and sorts the
// result by monthly cost.
//
// Files are processed one at a time; each is closed before the next is
// opened. Field-level parse failures never stop a run. Structural problems
// (a missing file, a missing column, malformed CSV) do, and so does a run in
// which no record survives filtering: Write refuses to produce an output
// without rows and returns ErrNoRecords.
package normalizer
