package provider

import (
	"github.com/zgpcy/instance-normalizer/internal/fieldparse"
	"github.com/zgpcy/instance-normalizer/internal/instance"
)

// AWSRow declares the columns read from the EC2 instance comparison export.
type AWSRow struct {
	APIName    string `csv:"API Name"`
	VCPUs      string `csv:"vCPUs"`
	Memory     string `csv:"Memory"`
	ClockSpeed string `csv:"Clock Speed(GHz)"`
	Cost       string `csv:"Linux On Demand cost"`
}

// awsNotes maps the first letter of an API name to its instance family.
var awsNotes = map[string]string{
	"t": "Intended for testing and development",
	"c": "Compute-optimized",
	"m": "Memory-optimized",
	"r": "General Purpose",
}

// AWS adapts EC2 rows.
type AWS struct {
	parser *fieldparse.Parser
}

// Verify that AWS implements Adapter
var _ Adapter[AWSRow] = (*AWS)(nil)

// NewAWS creates the EC2 adapter.
func NewAWS(parser *fieldparse.Parser) *AWS {
	return &AWS{parser: parser}
}

func (a *AWS) Name() ProviderType { return ProviderAWS }

func (a *AWS) ParseName(row AWSRow) string {
	return row.APIName
}

func (a *AWS) ParseVCPUCount(row AWSRow) instance.Value {
	return a.parser.VCPUCount(row.VCPUs)
}

func (a *AWS) ParseMemory(row AWSRow) instance.Value {
	return a.parser.Memory(row.Memory)
}

// ParseClockSpeed reads a column that is already expressed in GHz.
func (a *AWS) ParseClockSpeed(row AWSRow) instance.Value {
	return a.parser.ClockSpeed(row.ClockSpeed)
}

func (a *AWS) ParseMonthlyCost(row AWSRow) instance.Cost {
	return a.parser.MonthlyCost(row.Cost)
}

func (a *AWS) ParseNotes(row AWSRow) string {
	return awsNotes[firstChar(row.APIName)]
}
