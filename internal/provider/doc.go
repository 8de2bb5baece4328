// Package provider defines the per-cloud adapters that map a provider's raw
// CSV export onto the normalized instance record.
//
// Each provider declares its required input columns as a row struct whose csv
// tags name the columns, and implements Adapter over that row type:
//
//	type Adapter[R any] interface {
//		Name() ProviderType
//		ParseName(row R) string
//		ParseVCPUCount(row R) instance.Value
//		ParseMemory(row R) instance.Value
//		ParseClockSpeed(row R) instance.Value
//		ParseMonthlyCost(row R) instance.Cost
//		ParseNotes(row R) string
//	}
//
// NewSource wraps an adapter into a Source, which checks input headers
// against the declared columns (failing with ErrMissingColumn), decodes raw
// rows into the row struct and assembles the record.
//
// Supported providers, in output order:
//   - AWS: EC2 instance comparison (API Name, vCPUs, Memory, Clock Speed(GHz), Linux On Demand cost)
//   - Azure: virtual machine comparison (Name, vCPUs, Memory, CPU Type, Linux Pay As You Go cost)
//   - GCP: Compute Engine comparison (Machine type, vCPUs, Memory, CPU Type, Linux On Demand cost)
//   - Digital Ocean: droplet price list (Type, $/MO, vCPUs, Memory, CPU Type, $/HR, SSD)
//
// Example usage:
//
//	parser := fieldparse.New(log, nil)
//	src, err := provider.New(provider.ProviderGCP, parser)
//	if err != nil {
//		return err
//	}
//	if err := src.CheckHeader(reader.Header()); err != nil {
//		return err
//	}
//	record, err := src.Normalize(row)
package provider
