// Package control
// Author: momentics <momentics@gmail.com>
//
// Configuration, logging and metrics for the speedcore workload harness.
//
// Provides:
//   - Config with YAML loading, scale-factor application and validation
//   - Structured JSON logger construction (logiface + stumpy)
//   - An ordered, concurrent-safe metrics registry for workload results
package control
