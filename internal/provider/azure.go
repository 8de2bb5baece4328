package provider

import (
	"regexp"
	"strconv"

	"github.com/zgpcy/instance-normalizer/internal/fieldparse"
	"github.com/zgpcy/instance-normalizer/internal/instance"
)

// AzureRow declares the columns read from the Azure virtual machine comparison export.
type AzureRow struct {
	Name    string `csv:"Name"`
	VCPUs   string `csv:"vCPUs"`
	Memory  string `csv:"Memory"`
	CPUType string `csv:"CPU Type"`
	Cost    string `csv:"Linux Pay As You Go cost"`
}

var azureGHz = regexp.MustCompile(`(\d+\.\d+) GHz`)

var azureNotes = map[string]string{
	"A": "General-purpose",
	"B": "General-purpose",
	"D": "General-purpose",
	"F": "Compute-optimized",
	"E": "Memory-optimized",
}

// Azure adapts Azure VM rows.
type Azure struct {
	parser *fieldparse.Parser
}

var _ Adapter[AzureRow] = (*Azure)(nil)

// NewAzure creates the Azure adapter.
func NewAzure(parser *fieldparse.Parser) *Azure {
	return &Azure{parser: parser}
}

func (a *Azure) Name() ProviderType { return ProviderAzure }

func (a *Azure) ParseName(row AzureRow) string {
	return row.Name
}

func (a *Azure) ParseVCPUCount(row AzureRow) instance.Value {
	return a.parser.VCPUCount(row.VCPUs)
}

func (a *Azure) ParseMemory(row AzureRow) instance.Value {
	return a.parser.Memory(row.Memory)
}

// ParseClockSpeed averages every "<n.n> GHz" figure in the CPU description,
// e.g. base and turbo clocks. Descriptions without one pass through as text.
func (a *Azure) ParseClockSpeed(row AzureRow) instance.Value {
	matches := azureGHz.FindAllStringSubmatch(row.CPUType, -1)

	speeds := make([]float64, 0, len(matches))
	for _, m := range matches {
		f, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		speeds = append(speeds, f)
	}

	if mean, ok := fieldparse.MeanGHz(speeds); ok {
		return instance.Number(mean)
	}
	return instance.Text(row.CPUType)
}

func (a *Azure) ParseMonthlyCost(row AzureRow) instance.Cost {
	return a.parser.MonthlyCost(row.Cost)
}

func (a *Azure) ParseNotes(row AzureRow) string {
	return azureNotes[firstChar(row.Name)]
}
