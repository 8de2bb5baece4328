package provider

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/zgpcy/instance-normalizer/internal/fieldparse"
	"github.com/zgpcy/instance-normalizer/internal/instance"
)

// ProviderType represents a cloud provider. Its value is the literal written
// to the Cloud column.
type ProviderType string

// Supported cloud providers
const (
	ProviderAWS          ProviderType = "AWS"
	ProviderAzure        ProviderType = "Azure"
	ProviderGCP          ProviderType = "GCP"
	ProviderDigitalOcean ProviderType = "Digital Ocean"
)

// Order is the order in which provider records are concatenated.
var Order = []ProviderType{
	ProviderAWS,
	ProviderAzure,
	ProviderGCP,
	ProviderDigitalOcean,
}

var (
	// ErrUnknownProvider is returned for provider keys that have no adapter.
	ErrUnknownProvider = errors.New("unknown provider")

	// ErrMissingColumn is returned when an input lacks a declared column.
	ErrMissingColumn = errors.New("missing column")
)

var typeKeys = map[string]ProviderType{
	"aws":           ProviderAWS,
	"azure":         ProviderAzure,
	"gcp":           ProviderGCP,
	"digitalocean":  ProviderDigitalOcean,
	"digital_ocean": ProviderDigitalOcean,
	"digital ocean": ProviderDigitalOcean,
	"do":            ProviderDigitalOcean,
}

// ParseType resolves a configuration key such as "aws" or "digitalocean".
func ParseType(key string) (ProviderType, error) {
	if t, ok := typeKeys[strings.ToLower(strings.TrimSpace(key))]; ok {
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownProvider, key)
}

// Rank returns the position of t in Order, or len(Order) if t is unknown.
func Rank(t ProviderType) int {
	for i, o := range Order {
		if o == t {
			return i
		}
	}
	return len(Order)
}

// Row is one raw input row keyed by column name.
type Row map[string]string

// Adapter maps one provider's typed row onto the normalized fields.
// R is a struct whose csv tags declare the provider's required columns.
type Adapter[R any] interface {
	Name() ProviderType
	ParseName(row R) string
	ParseVCPUCount(row R) instance.Value
	ParseMemory(row R) instance.Value
	ParseClockSpeed(row R) instance.Value
	ParseMonthlyCost(row R) instance.Cost
	ParseNotes(row R) string
}

// Source normalizes raw rows of one provider's export.
type Source interface {
	Name() ProviderType
	// Columns lists the input columns the adapter requires.
	Columns() []string
	// CheckHeader fails with ErrMissingColumn if a required column is absent.
	CheckHeader(header []string) error
	Normalize(row Row) (instance.Record, error)
}

type source[R any] struct {
	adapter Adapter[R]
	columns []string
}

// NewSource wraps an adapter, deriving its required columns from R's csv tags.
func NewSource[R any](adapter Adapter[R]) Source {
	return &source[R]{
		adapter: adapter,
		columns: columnsOf(reflect.TypeFor[R]()),
	}
}

// New returns the Source for a provider.
func New(t ProviderType, parser *fieldparse.Parser) (Source, error) {
	switch t {
	case ProviderAWS:
		return NewSource[AWSRow](NewAWS(parser)), nil
	case ProviderAzure:
		return NewSource[AzureRow](NewAzure(parser)), nil
	case ProviderGCP:
		return NewSource[GCPRow](NewGCP(parser)), nil
	case ProviderDigitalOcean:
		return NewSource[DigitalOceanRow](NewDigitalOcean(parser)), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, string(t))
	}
}

func (s *source[R]) Name() ProviderType {
	return s.adapter.Name()
}

func (s *source[R]) Columns() []string {
	out := make([]string, len(s.columns))
	copy(out, s.columns)
	return out
}

func (s *source[R]) CheckHeader(header []string) error {
	present := make(map[string]bool, len(header))
	for _, col := range header {
		present[col] = true
	}
	for _, col := range s.columns {
		if !present[col] {
			return fmt.Errorf("%w %q in %s input", ErrMissingColumn, col, s.adapter.Name())
		}
	}
	return nil
}

func (s *source[R]) Normalize(raw Row) (instance.Record, error) {
	for _, col := range s.columns {
		if _, ok := raw[col]; !ok {
			return instance.Record{}, fmt.Errorf("%w %q in %s row", ErrMissingColumn, col, s.adapter.Name())
		}
	}

	var row R
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "csv",
		Result:  &row,
	})
	if err != nil {
		return instance.Record{}, fmt.Errorf("failed to create row decoder: %w", err)
	}
	if err := decoder.Decode(map[string]string(raw)); err != nil {
		return instance.Record{}, fmt.Errorf("failed to decode %s row: %w", s.adapter.Name(), err)
	}

	a := s.adapter
	return instance.Record{
		Name:        a.ParseName(row),
		VCPUs:       a.ParseVCPUCount(row),
		RAM:         a.ParseMemory(row),
		CPUSpeed:    a.ParseClockSpeed(row),
		MonthlyCost: a.ParseMonthlyCost(row),
		Notes:       a.ParseNotes(row),
		Cloud:       string(a.Name()),
	}, nil
}

// columnsOf returns the csv tag values of a struct type's fields.
func columnsOf(t reflect.Type) []string {
	var columns []string
	for i := 0; i < t.NumField(); i++ {
		if tag := t.Field(i).Tag.Get("csv"); tag != "" {
			columns = append(columns, tag)
		}
	}
	return columns
}

// firstChar returns the first character of s, or "" for an empty string.
func firstChar(s string) string {
	for _, r := range s {
		return string(r)
	}
	return ""
}
