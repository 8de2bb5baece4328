package normalizer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/dustin/go-humanize"
	"github.com/zgpcy/instance-normalizer/internal/collector"
	"github.com/zgpcy/instance-normalizer/internal/config"
	"github.com/zgpcy/instance-normalizer/internal/csvio"
	"github.com/zgpcy/instance-normalizer/internal/fieldparse"
	"github.com/zgpcy/instance-normalizer/internal/instance"
	"github.com/zgpcy/instance-normalizer/internal/logger"
	"github.com/zgpcy/instance-normalizer/internal/provider"
)

// ErrNoRecords is returned when no record survived filtering, leaving
// nothing to derive the output from.
var ErrNoRecords = errors.New("no instance records to write")

// Stats summarizes one provider's input.
type Stats struct {
	Provider      provider.ProviderType
	Path          string
	RowsRead      int
	Kept          int
	Rejected      int
	ParseFailures int
	Cheapest      instance.Cost
	Priciest      instance.Cost
}

// Result is the merged, sorted output of a run.
type Result struct {
	Records []instance.Record
	Stats   []Stats
}

// Normalizer runs the pipeline.
type Normalizer struct {
	logger  *logger.Logger
	metrics *collector.Metrics
}

// New creates a Normalizer.
func New(log *logger.Logger, metrics *collector.Metrics) *Normalizer {
	return &Normalizer{
		logger:  log,
		metrics: metrics,
	}
}

// Run processes inputs in output order (AWS, Azure, GCP, Digital Ocean),
// concatenates the filtered records and sorts them by monthly cost.
func (n *Normalizer) Run(ctx context.Context, inputs []config.Input) (*Result, error) {
	ordered := slices.Clone(inputs)
	slices.SortStableFunc(ordered, func(a, b config.Input) int {
		return provider.Rank(a.Provider) - provider.Rank(b.Provider)
	})

	result := &Result{}
	for _, in := range ordered {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		records, stats, err := n.processFile(in)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", in.Provider, err)
		}
		result.Records = append(result.Records, records...)
		result.Stats = append(result.Stats, stats)
	}

	SortByCost(result.Records)
	return result, nil
}

// processFile normalizes and filters one provider export.
func (n *Normalizer) processFile(in config.Input) ([]instance.Record, Stats, error) {
	stats := Stats{Provider: in.Provider, Path: in.Path}
	log := n.logger.WithFields("provider", string(in.Provider))
	pm := n.metrics.ForProvider(string(in.Provider))

	failures := &failureCounter{next: pm}
	src, err := provider.New(in.Provider, fieldparse.New(log, failures))
	if err != nil {
		return nil, stats, err
	}

	log.Info("Reading provider export", "path", in.Path)
	log.Debug("Required columns", "columns", src.Columns())

	// #nosec G304 -- input paths come from the operator's configuration
	f, err := os.Open(in.Path)
	if err != nil {
		return nil, stats, fmt.Errorf("failed to open input: %w", err)
	}
	defer f.Close()

	reader, err := csvio.NewReader(f)
	if err != nil {
		return nil, stats, fmt.Errorf("failed to read %s: %w", in.Path, err)
	}
	if err := src.CheckHeader(reader.Header()); err != nil {
		return nil, stats, err
	}

	var records []instance.Record
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, stats, fmt.Errorf("failed to read %s after line %d: %w", in.Path, reader.Line(), err)
		}
		stats.RowsRead++
		pm.RowRead()

		rec, err := src.Normalize(provider.Row(row))
		if err != nil {
			return nil, stats, fmt.Errorf("line %d: %w", reader.Line(), err)
		}
		records = append(records, rec)
	}

	kept, rejected := FilterKnownCost(records)
	for _, rec := range rejected {
		pm.RecordRejected()
		log.Debug("Dropping record without a monthly cost", "name", rec.Name)
	}
	for _, rec := range kept {
		pm.RecordKept()
		if !stats.Cheapest.Known() || rec.MonthlyCost.Compare(stats.Cheapest) < 0 {
			stats.Cheapest = rec.MonthlyCost
		}
		if !stats.Priciest.Known() || rec.MonthlyCost.Compare(stats.Priciest) > 0 {
			stats.Priciest = rec.MonthlyCost
		}
	}

	stats.Kept = len(kept)
	stats.Rejected = len(rejected)
	stats.ParseFailures = failures.count

	switch {
	case stats.RowsRead > 0 && stats.Kept == 0:
		log.Warn("Every record was dropped for an unparseable monthly cost; check the cost column",
			"rows", stats.RowsRead)
	case stats.Rejected > 0:
		log.Warn("Dropped records without a monthly cost",
			"rejected", stats.Rejected,
			"rows", stats.RowsRead)
	}

	log.Info("Provider export normalized",
		"rows", stats.RowsRead,
		"kept", stats.Kept,
		"parse_failures", stats.ParseFailures)

	return kept, stats, nil
}

// FilterKnownCost splits records into those with a parsed monthly cost and
// those without. Order is preserved in both.
func FilterKnownCost(records []instance.Record) (kept, rejected []instance.Record) {
	for _, rec := range records {
		if rec.MonthlyCost.Known() {
			kept = append(kept, rec)
		} else {
			rejected = append(rejected, rec)
		}
	}
	return kept, rejected
}

// SortByCost sorts records by ascending monthly cost. Records with equal
// costs keep their relative order.
func SortByCost(records []instance.Record) {
	slices.SortStableFunc(records, func(a, b instance.Record) int {
		return a.MonthlyCost.Compare(b.MonthlyCost)
	})
}

// Write writes records to path under the normalized header. It refuses to
// write an empty result.
func (n *Normalizer) Write(path string, records []instance.Record) error {
	if len(records) == 0 {
		return ErrNoRecords
	}

	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, rec.Row())
	}

	size, err := csvio.WriteFile(path, instance.Header(), rows)
	if err != nil {
		return err
	}

	n.logger.Info("Wrote normalized instances",
		"path", path,
		"records", len(records),
		"size", humanize.Bytes(uint64(size)))
	return nil
}

// failureCounter counts parse failures for the run statistics and forwards
// them to the metrics recorder.
type failureCounter struct {
	next  fieldparse.FailureRecorder
	count int
}

func (f *failureCounter) RecordParseFailure(field fieldparse.Field) {
	f.count++
	if f.next != nil {
		f.next.RecordParseFailure(field)
	}
}
