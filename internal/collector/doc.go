// Package collector records Prometheus metrics for a normalization run.
//
// The normalizer is a batch job, so metrics are gathered on a private
// registry and written once at the end of the run in the text exposition
// format, ready for the node_exporter textfile collector.
//
// Exposed metrics:
//   - instance_normalizer_rows_read_total: Input rows read, by provider
//   - instance_normalizer_records_kept_total: Records that passed the cost filter, by provider
//   - instance_normalizer_records_rejected_total: Records dropped for an unparseable cost, by provider
//   - instance_normalizer_parse_failures_total: Sentinel substitutions, by provider and field
//   - instance_normalizer_records_written: Records in the last output file
//   - instance_normalizer_run_duration_seconds: Duration of the last run
//   - instance_normalizer_last_success_timestamp_seconds: Unix time of the last successful run
//   - instance_normalizer_build_info: Build version information
//
// Example usage:
//
//	metrics := collector.New(clock.RealClock{})
//	aws := metrics.ForProvider("AWS")
//	parser := fieldparse.New(log, aws)
//	...
//	metrics.ObserveSuccess(start, len(records))
//	if err := metrics.WriteTextfile("/var/lib/node_exporter/instance_normalizer.prom"); err != nil {
//		log.Error("Failed to write metrics", "error", err)
//	}
package collector
