// Package config loads solver parameter files.
//
// Two formats are accepted. YAML:
//
//	C: 1e6
//	classification_tol: 1e-3
//	lyapunov_tol: 1e-3
//	max_eval: 1000
//	verbose: false
//	time_limit: 30s
//
// and the legacy line format, one `key value` pair per line with `#`
// comments. Missing keys keep their defaults; unknown keys are an error.
// The decoded values are checked with validator struct tags.
package config
