package provider

import (
	"fmt"

	"github.com/zgpcy/instance-normalizer/internal/fieldparse"
	"github.com/zgpcy/instance-normalizer/internal/instance"
)

// DigitalOceanSharedCPU is the CPU Type of droplets without dedicated cores.
const DigitalOceanSharedCPU = "Shared"

// DigitalOceanRow declares the columns read from the droplet price list.
type DigitalOceanRow struct {
	Type    string `csv:"Type"`
	Monthly string `csv:"$/MO"`
	VCPUs   string `csv:"vCPUs"`
	Memory  string `csv:"Memory"`
	CPUType string `csv:"CPU Type"`
	Hourly  string `csv:"$/HR"`
	SSD     string `csv:"SSD"`
}

// DigitalOcean adapts droplet rows.
type DigitalOcean struct {
	parser *fieldparse.Parser
}

var _ Adapter[DigitalOceanRow] = (*DigitalOcean)(nil)

// NewDigitalOcean creates the Digital Ocean adapter.
func NewDigitalOcean(parser *fieldparse.Parser) *DigitalOcean {
	return &DigitalOcean{parser: parser}
}

func (d *DigitalOcean) Name() ProviderType { return ProviderDigitalOcean }

// ParseName combines the droplet type with its list price, since several
// plans share a type name.
func (d *DigitalOcean) ParseName(row DigitalOceanRow) string {
	return row.Type + " " + row.Monthly
}

func (d *DigitalOcean) ParseVCPUCount(row DigitalOceanRow) instance.Value {
	return d.parser.VCPUCount(row.VCPUs)
}

func (d *DigitalOcean) ParseMemory(row DigitalOceanRow) instance.Value {
	return d.parser.Memory(row.Memory)
}

func (d *DigitalOcean) ParseClockSpeed(row DigitalOceanRow) instance.Value {
	if row.CPUType == DigitalOceanSharedCPU {
		return instance.Shared(row.CPUType)
	}
	return d.parser.ClockSpeed(row.CPUType)
}

func (d *DigitalOcean) ParseMonthlyCost(row DigitalOceanRow) instance.Cost {
	return d.parser.MonthlyCost(row.Hourly)
}

func (d *DigitalOcean) ParseNotes(row DigitalOceanRow) string {
	return fmt.Sprintf("Includes %s of storage", row.SSD)
}
