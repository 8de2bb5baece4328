package provider

import (
	"errors"
	"testing"

	"github.com/zgpcy/instance-normalizer/internal/fieldparse"
	"github.com/zgpcy/instance-normalizer/internal/instance"
	"github.com/zgpcy/instance-normalizer/internal/logger"
)

func testParser() *fieldparse.Parser {
	return fieldparse.New(logger.Discard(), nil)
}

func mustSource(t *testing.T, pt ProviderType) Source {
	t.Helper()
	src, err := New(pt, testParser())
	if err != nil {
		t.Fatalf("New(%q) error = %v", pt, err)
	}
	return src
}

func assertRecord(t *testing.T, got instance.Record, want []string) {
	t.Helper()
	row := got.Row()
	header := instance.Header()
	for i := range want {
		if row[i] != want[i] {
			t.Errorf("%s = %q, want %q", header[i], row[i], want[i])
		}
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		key     string
		want    ProviderType
		wantErr bool
	}{
		{"aws", ProviderAWS, false},
		{"Azure", ProviderAzure, false},
		{" gcp ", ProviderGCP, false},
		{"digitalocean", ProviderDigitalOcean, false},
		{"digital_ocean", ProviderDigitalOcean, false},
		{"do", ProviderDigitalOcean, false},
		{"oracle", "", true},
	}

	for _, tt := range tests {
		got, err := ParseType(tt.key)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownProvider) {
				t.Errorf("ParseType(%q) error = %v, want ErrUnknownProvider", tt.key, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseType(%q) = %q, %v; want %q", tt.key, got, err, tt.want)
		}
	}
}

func TestRank(t *testing.T) {
	if Rank(ProviderAWS) != 0 || Rank(ProviderDigitalOcean) != 3 {
		t.Errorf("unexpected ranks: aws=%d do=%d", Rank(ProviderAWS), Rank(ProviderDigitalOcean))
	}
	if Rank(ProviderType("Oracle")) != len(Order) {
		t.Error("unknown providers should rank last")
	}
}

func TestNew_UnknownProvider(t *testing.T) {
	if _, err := New(ProviderType("Oracle"), testParser()); !errors.Is(err, ErrUnknownProvider) {
		t.Errorf("New(Oracle) error = %v, want ErrUnknownProvider", err)
	}
}

func TestColumns_DeclaredSchema(t *testing.T) {
	tests := []struct {
		provider ProviderType
		want     []string
	}{
		{ProviderAWS, []string{"API Name", "vCPUs", "Memory", "Clock Speed(GHz)", "Linux On Demand cost"}},
		{ProviderAzure, []string{"Name", "vCPUs", "Memory", "CPU Type", "Linux Pay As You Go cost"}},
		{ProviderGCP, []string{"Machine type", "vCPUs", "Memory", "CPU Type", "Linux On Demand cost"}},
		{ProviderDigitalOcean, []string{"Type", "$/MO", "vCPUs", "Memory", "CPU Type", "$/HR", "SSD"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.provider), func(t *testing.T) {
			got := mustSource(t, tt.provider).Columns()
			if len(got) != len(tt.want) {
				t.Fatalf("Columns() = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("Columns()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestCheckHeader_MissingColumn(t *testing.T) {
	src := mustSource(t, ProviderAWS)

	err := src.CheckHeader([]string{"API Name", "vCPUs", "Memory", "Linux On Demand cost"})
	if !errors.Is(err, ErrMissingColumn) {
		t.Fatalf("CheckHeader() error = %v, want ErrMissingColumn", err)
	}
	if got := err.Error(); got != `missing column "Clock Speed(GHz)" in AWS input` {
		t.Errorf("error message = %q", got)
	}

	if err := src.CheckHeader([]string{"Extra", "API Name", "vCPUs", "Memory", "Clock Speed(GHz)", "Linux On Demand cost"}); err != nil {
		t.Errorf("CheckHeader() with extra columns error = %v, want nil", err)
	}
}

func TestNormalize_MissingColumn(t *testing.T) {
	src := mustSource(t, ProviderGCP)
	_, err := src.Normalize(Row{"Machine type": "e2-micro"})
	if !errors.Is(err, ErrMissingColumn) {
		t.Errorf("Normalize() error = %v, want ErrMissingColumn", err)
	}
}

func TestAWS_Normalize(t *testing.T) {
	tests := []struct {
		name string
		row  Row
		want []string
	}{
		{
			name: "burstable",
			row: Row{
				"API Name":             "t3.micro",
				"vCPUs":                "2 vCPUs",
				"Memory":               "1 GiB",
				"Clock Speed(GHz)":     "2.5 GHz",
				"Linux On Demand cost": "$0.0104 hourly",
			},
			want: []string{"t3.micro", "2.0", "1.0", "2.5", "$7.59", "Intended for testing and development", "AWS"},
		},
		{
			name: "compute optimized",
			row: Row{
				"API Name":             "c5.large",
				"vCPUs":                "2 vCPUs",
				"Memory":               "4 GiB",
				"Clock Speed(GHz)":     "3.4",
				"Linux On Demand cost": "$0.085 hourly",
			},
			want: []string{"c5.large", "2.0", "4.0", "3.4", "$62.05", "Compute-optimized", "AWS"},
		},
		{
			name: "memory family letter",
			row: Row{
				"API Name":             "m5.xlarge",
				"vCPUs":                "4 vCPUs",
				"Memory":               "16 GiB",
				"Clock Speed(GHz)":     "unknown",
				"Linux On Demand cost": "$0.192 hourly",
			},
			want: []string{"m5.xlarge", "4.0", "16.0", "Unknown", "$140.16", "Memory-optimized", "AWS"},
		},
		{
			name: "r family",
			row: Row{
				"API Name":             "r5.large",
				"vCPUs":                "2 vCPUs",
				"Memory":               "16 GiB",
				"Clock Speed(GHz)":     "3.1 GHz",
				"Linux On Demand cost": "$0.126 hourly",
			},
			want: []string{"r5.large", "2.0", "16.0", "3.1", "$91.98", "General Purpose", "AWS"},
		},
		{
			name: "no family note and unavailable price",
			row: Row{
				"API Name":             "x1e.xlarge",
				"vCPUs":                "4 vCPUs",
				"Memory":               "122 GiB",
				"Clock Speed(GHz)":     "2.3 GHz",
				"Linux On Demand cost": "unavailable",
			},
			want: []string{"x1e.xlarge", "4.0", "122.0", "2.3", "Unknown", "", "AWS"},
		},
	}

	src := mustSource(t, ProviderAWS)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := src.Normalize(tt.row)
			if err != nil {
				t.Fatalf("Normalize() error = %v", err)
			}
			assertRecord(t, rec, tt.want)
		})
	}
}

func TestAzure_ClockSpeed(t *testing.T) {
	azure := NewAzure(testParser())

	tests := []struct {
		cpu      string
		want     string
		wantKind instance.Kind
	}{
		{"2.4 GHz, 2.6 GHz", "2.5", instance.KindNumber},
		{"Intel Xeon Platinum 8272CL (Cascade Lake) 2.6 GHz base, 3.4 GHz turbo", "3.0", instance.KindNumber},
		{"AMD EPYC 2.45 GHz", "2.45", instance.KindNumber},
		{"2.1 GHz, 2.2 GHz, 2.4 GHz", "2.23", instance.KindNumber},
		{"2.25 GHz, 3.0 GHz", "2.62", instance.KindNumber},
		{"2.1 GHz, 2.15 GHz", "2.12", instance.KindNumber},
		{"Intel Xeon E5-2673 v4", "Intel Xeon E5-2673 v4", instance.KindText},
		{"3GHz", "3GHz", instance.KindText},
	}

	for _, tt := range tests {
		got := azure.ParseClockSpeed(AzureRow{CPUType: tt.cpu})
		if got.String() != tt.want || got.Kind() != tt.wantKind {
			t.Errorf("ParseClockSpeed(%q) = %q (%v), want %q (%v)", tt.cpu, got, got.Kind(), tt.want, tt.wantKind)
		}
	}
}

func TestAzure_Normalize(t *testing.T) {
	tests := []struct {
		name string
		row  Row
		want []string
	}{
		{
			name: "burstable",
			row: Row{
				"Name":                     "B1s",
				"vCPUs":                    "1",
				"Memory":                   "1 GiB",
				"CPU Type":                 "2.4 GHz, 2.6 GHz",
				"Linux Pay As You Go cost": "$0.0104 hourly",
			},
			want: []string{"B1s", "1.0", "1.0", "2.5", "$7.59", "General-purpose", "Azure"},
		},
		{
			name: "compute optimized",
			row: Row{
				"Name":                     "F2s v2",
				"vCPUs":                    "2",
				"Memory":                   "4 GiB",
				"CPU Type":                 "Intel Xeon",
				"Linux Pay As You Go cost": "$0.0846 hourly",
			},
			want: []string{"F2s v2", "2.0", "4.0", "Intel Xeon", "$61.76", "Compute-optimized", "Azure"},
		},
		{
			name: "memory optimized",
			row: Row{
				"Name":                     "E2s v3",
				"vCPUs":                    "2",
				"Memory":                   "16 GiB",
				"CPU Type":                 "",
				"Linux Pay As You Go cost": "$0.126 hourly",
			},
			want: []string{"E2s v3", "2.0", "16.0", "", "$91.98", "Memory-optimized", "Azure"},
		},
		{
			name: "other series",
			row: Row{
				"Name":                     "NC6",
				"vCPUs":                    "6",
				"Memory":                   "56 GiB",
				"CPU Type":                 "",
				"Linux Pay As You Go cost": "$0.90 hourly",
			},
			want: []string{"NC6", "6.0", "56.0", "", "$657.00", "", "Azure"},
		},
	}

	src := mustSource(t, ProviderAzure)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := src.Normalize(tt.row)
			if err != nil {
				t.Fatalf("Normalize() error = %v", err)
			}
			assertRecord(t, rec, tt.want)
		})
	}
}

func TestGCP_Normalize(t *testing.T) {
	tests := []struct {
		name string
		row  Row
		want []string
	}{
		{
			name: "shared core",
			row: Row{
				"Machine type":         "e2-micro",
				"vCPUs":                "shared",
				"Memory":               "1 GiB",
				"CPU Type":             "Intel Skylake 2.0GHz",
				"Linux On Demand cost": "$0.008376 hourly",
			},
			want: []string{"e2-micro", "shared", "1.0", "2.0", "$6.11", "micro", "GCP"},
		},
		{
			name: "standard",
			row: Row{
				"Machine type":         "n2-highcpu-4",
				"vCPUs":                "4",
				"Memory":               "4 GiB",
				"CPU Type":             "Intel Cascade Lake 2.8GHz, 3.4GHz turbo",
				"Linux On Demand cost": "$0.143 hourly",
			},
			want: []string{"n2-highcpu-4", "4.0", "4.0", "2.8", "$104.39", "highcpu", "GCP"},
		},
		{
			name: "no frequency and no family",
			row: Row{
				"Machine type":         "custom",
				"vCPUs":                "8",
				"Memory":               "32 GiB",
				"CPU Type":             "AMD EPYC Rome",
				"Linux On Demand cost": "$0.31 hourly",
			},
			want: []string{"custom", "8.0", "32.0", "AMD EPYC Rome", "$226.30", "custom", "GCP"},
		},
	}

	src := mustSource(t, ProviderGCP)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := src.Normalize(tt.row)
			if err != nil {
				t.Fatalf("Normalize() error = %v", err)
			}
			assertRecord(t, rec, tt.want)
		})
	}
}

func TestGCP_SharedVCPUIsNotNumeric(t *testing.T) {
	got := NewGCP(testParser()).ParseVCPUCount(GCPRow{VCPUs: "shared"})
	if got.Kind() != instance.KindShared {
		t.Errorf("Kind() = %v, want shared", got.Kind())
	}
	if got.String() != "shared" {
		t.Errorf("String() = %q, want shared", got.String())
	}
}

func TestDigitalOcean_Normalize(t *testing.T) {
	tests := []struct {
		name string
		row  Row
		want []string
	}{
		{
			name: "shared cpu",
			row: Row{
				"Type":     "Basic",
				"$/MO":     "$5",
				"vCPUs":    "1 vCPU",
				"Memory":   "1 GB",
				"CPU Type": "Shared",
				"$/HR":     "$0.00744",
				"SSD":      "25 GB",
			},
			want: []string{"Basic $5", "1.0", "1.0", "Shared", "$5.43", "Includes 25 GB of storage", "Digital Ocean"},
		},
		{
			name: "dedicated cpu",
			row: Row{
				"Type":     "CPU-Optimized",
				"$/MO":     "$40",
				"vCPUs":    "2 vCPUs",
				"Memory":   "4 GB",
				"CPU Type": "2.6 GHz",
				"$/HR":     "$0.05952",
				"SSD":      "25 GB",
			},
			want: []string{"CPU-Optimized $40", "2.0", "4.0", "2.6", "$43.45", "Includes 25 GB of storage", "Digital Ocean"},
		},
	}

	src := mustSource(t, ProviderDigitalOcean)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := src.Normalize(tt.row)
			if err != nil {
				t.Fatalf("Normalize() error = %v", err)
			}
			assertRecord(t, rec, tt.want)
		})
	}
}
