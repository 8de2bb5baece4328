package fieldparse

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/zgpcy/instance-normalizer/internal/instance"
	"github.com/zgpcy/instance-normalizer/internal/logger"
	"gonum.org/v1/gonum/stat"
)

// HoursPerMonth is the billing approximation used to turn hourly rates into
// monthly costs.
const HoursPerMonth = 730

var errNotFinite = errors.New("not a finite number")

// Field names the kind of value being parsed.
type Field string

// Parsed fields
const (
	FieldVCPUs       Field = "vCPUs"
	FieldMemory      Field = "Memory"
	FieldClockSpeed  Field = "Clock Speed"
	FieldMonthlyCost Field = "Monthly Cost"
)

// FailureRecorder is notified of every field that could not be parsed.
type FailureRecorder interface {
	RecordParseFailure(field Field)
}

// Parser holds the shared parsing primitives.
type Parser struct {
	logger   *logger.Logger
	recorder FailureRecorder
}

// New creates a Parser. recorder may be nil.
func New(log *logger.Logger, recorder FailureRecorder) *Parser {
	return &Parser{
		logger:   log,
		recorder: recorder,
	}
}

// VCPUCount parses strings such as "4 vCPUs" or "1 vCPU".
func (p *Parser) VCPUCount(s string) instance.Value {
	trimmed := strings.ReplaceAll(s, "vCPUs", "")
	trimmed = strings.ReplaceAll(trimmed, "vCPU", "")

	f, err := parseFloat(trimmed)
	if err != nil {
		p.fail(FieldVCPUs, s, err)
		return instance.Number(0)
	}
	return instance.Number(f)
}

// Memory parses strings such as "16 GiB" or "0.6 GB".
func (p *Parser) Memory(s string) instance.Value {
	trimmed := strings.ReplaceAll(s, "GiB", "")
	trimmed = strings.ReplaceAll(trimmed, "Gib", "")
	trimmed = strings.ReplaceAll(trimmed, "GB", "")

	f, err := parseFloat(trimmed)
	if err != nil {
		p.fail(FieldMemory, s, err)
		return instance.Unknown()
	}
	return instance.Number(f)
}

// ClockSpeed parses strings such as "2.5 GHz" or "3.1". Only the text before
// the first "GHz" is considered.
func (p *Parser) ClockSpeed(s string) instance.Value {
	num := s
	if i := strings.Index(s, "GHz"); i >= 0 {
		num = s[:i]
	}

	f, err := parseFloat(num)
	if err != nil {
		p.fail(FieldClockSpeed, s, err)
		return instance.Unknown()
	}
	return instance.Number(f)
}

// MonthlyCost parses an hourly rate such as "$0.0104 hourly" and converts it
// to a monthly cost. The product is taken in float64 and rounded to cents
// from its binary value, so "$0.0115 hourly" costs $8.39.
func (p *Parser) MonthlyCost(s string) instance.Cost {
	trimmed := strings.ReplaceAll(s, "$", "")
	trimmed = strings.ReplaceAll(trimmed, "hourly", "")

	hourly, err := parseFloat(trimmed)
	if err == nil && (math.IsNaN(hourly) || math.IsInf(hourly, 0)) {
		err = errNotFinite
	}
	if err != nil {
		p.fail(FieldMonthlyCost, s, err)
		return instance.UnknownCost()
	}
	return instance.CostFromFloat(HoursPerMonth * hourly)
}

// MeanGHz returns the arithmetic mean of speeds rounded to two decimals,
// halves to even. It returns false for an empty slice.
func MeanGHz(speeds []float64) (float64, bool) {
	if len(speeds) == 0 {
		return 0, false
	}
	return roundCents(stat.Mean(speeds, nil)), true
}

// roundCents rounds the exact binary value of f to two decimals.
func roundCents(f float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(f, 'f', 2, 64), 64)
	if err != nil {
		return f
	}
	return r
}

func (p *Parser) fail(field Field, raw string, err error) {
	p.logger.Error("Could not parse field",
		"field", string(field),
		"value", raw,
		"error", err)
	if p.recorder != nil {
		p.recorder.RecordParseFailure(field)
	}
}

func parseFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %w", err)
	}
	return f, nil
}
