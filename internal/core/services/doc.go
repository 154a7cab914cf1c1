// Package services implements the driving port interfaces.
// Services contain the core reader logic (query matching, highlighting,
// hit aggregation, section derivation, evidence scoring and scroll
// tracking) and orchestrate calls to driven ports (adapters).
//
// Services depend only on domain, ports and golang.org/x helpers.
// They never touch a terminal, a file or the network directly.
package services
