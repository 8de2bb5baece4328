// Package instance defines the normalized, cross-provider representation of a
// cloud compute offering.
//
// A Record is built once per input row by a provider adapter and is never
// mutated afterwards. Numeric columns are carried as tagged values so that
// filtering and sorting inspect what was parsed instead of sniffing the
// rendered text:
//
//	Number(4)         renders "4.0"
//	Text("Intel Xeon") renders "Intel Xeon"
//	Shared("shared")  renders "shared"
//	Unknown()         renders "Unknown"
//
// Monthly costs use Cost, which is either a known decimal amount rendered as
// "$73.00" or unknown, rendered as "Unknown".
package instance
