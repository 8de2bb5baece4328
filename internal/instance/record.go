package instance

// Output column names, in header order.
const (
	ColumnName        = "Name"
	ColumnVCPUs       = "vCPUs"
	ColumnRAM         = "RAM (GB)"
	ColumnCPUSpeed    = "CPU Speed"
	ColumnMonthlyCost = "Monthly Cost (on demand)"
	ColumnNotes       = "Notes"
	ColumnCloud       = "Cloud"
)

var header = []string{
	ColumnName,
	ColumnVCPUs,
	ColumnRAM,
	ColumnCPUSpeed,
	ColumnMonthlyCost,
	ColumnNotes,
	ColumnCloud,
}

// Header returns the output column names in order.
func Header() []string {
	out := make([]string, len(header))
	copy(out, header)
	return out
}

// Record is one normalized instance offering.
type Record struct {
	Name        string
	VCPUs       Value
	RAM         Value
	CPUSpeed    Value
	MonthlyCost Cost
	Notes       string
	Cloud       string
}

// Row renders the record in Header order.
func (r Record) Row() []string {
	return []string{
		r.Name,
		r.VCPUs.String(),
		r.RAM.String(),
		r.CPUSpeed.String(),
		r.MonthlyCost.String(),
		r.Notes,
		r.Cloud,
	}
}
