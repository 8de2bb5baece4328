package provider

import (
	"regexp"
	"strconv"

	"github.com/zgpcy/instance-normalizer/internal/fieldparse"
	"github.com/zgpcy/instance-normalizer/internal/instance"
)

// GCPSharedCore is the vCPU value GCP uses for shared-core machine types.
const GCPSharedCore = "shared"

// GCPRow declares the columns read from the GCP Compute Engine comparison export.
type GCPRow struct {
	MachineType string `csv:"Machine type"`
	VCPUs       string `csv:"vCPUs"`
	Memory      string `csv:"Memory"`
	CPUType     string `csv:"CPU Type"`
	Cost        string `csv:"Linux On Demand cost"`
}

var (
	gcpGHz    = regexp.MustCompile(`(\d+\.\d+)GHz`)
	gcpFamily = regexp.MustCompile(`-([a-z]+)`)
)

// GCP adapts Compute Engine rows.
type GCP struct {
	parser *fieldparse.Parser
}

var _ Adapter[GCPRow] = (*GCP)(nil)

// NewGCP creates the GCP adapter.
func NewGCP(parser *fieldparse.Parser) *GCP {
	return &GCP{parser: parser}
}

func (g *GCP) Name() ProviderType { return ProviderGCP }

func (g *GCP) ParseName(row GCPRow) string {
	return row.MachineType
}

func (g *GCP) ParseVCPUCount(row GCPRow) instance.Value {
	if row.VCPUs == GCPSharedCore {
		return instance.Shared(row.VCPUs)
	}
	return g.parser.VCPUCount(row.VCPUs)
}

func (g *GCP) ParseMemory(row GCPRow) instance.Value {
	return g.parser.Memory(row.Memory)
}

// ParseClockSpeed takes the first "<n.n>GHz" figure of the CPU description.
func (g *GCP) ParseClockSpeed(row GCPRow) instance.Value {
	if m := gcpGHz.FindStringSubmatch(row.CPUType); m != nil {
		if f, err := strconv.ParseFloat(m[1], 64); err == nil {
			return instance.Number(f)
		}
	}
	return instance.Text(row.CPUType)
}

func (g *GCP) ParseMonthlyCost(row GCPRow) instance.Cost {
	return g.parser.MonthlyCost(row.Cost)
}

// ParseNotes returns the machine family, the lowercase word after the first
// hyphen ("n2-highcpu-4" -> "highcpu"), or the whole machine type.
func (g *GCP) ParseNotes(row GCPRow) string {
	if m := gcpFamily.FindStringSubmatch(row.MachineType); m != nil {
		return m[1]
	}
	return row.MachineType
}
