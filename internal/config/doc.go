// Package config provides configuration management for the instance normalizer.
//
// Configuration is read from an optional YAML file, completed with defaults
// and validated. Command-line flags may override individual values; callers
// re-run Validate after applying them.
//
// Relative input, output and metrics paths are resolved against data_dir.
// Sources may be listed in any order: Inputs always returns them in output
// order (AWS, Azure, GCP, Digital Ocean). A source can be switched off with
// enabled: false.
//
// Example configuration file (config.yaml):
//
//	data_dir: data
//	output: all_instances.csv
//	log_level: info
//	log_format: text
//	metrics_file: instance_normalizer.prom
//	summary: true
//
//	sources:
//	  - provider: aws
//	    path: "Amazon EC2 Instance Comparison.csv"
//	  - provider: azure
//	    path: "Microsoft Azure Virtual Machine Comparison.csv"
//	  - provider: gcp
//	    path: "GCPinstances.info - GCP Compute Engine Instance Comparison (by DoiT International).csv"
//	  - provider: digitalocean
//	    path: DO_droplets.csv
//	    enabled: false
//
// Without a file, Default reads every provider's default export from ./data
// and writes ./data/all_instances.csv.
package config
