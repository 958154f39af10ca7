// Package probe queries the operating system for the facts that decide
// Windows 11 upgrade eligibility.
//
// Each probe invokes exactly one OS facility (an inventory query, a registry
// read, a scripted utility) through the Host facade and returns a typed fact
// plus an error. Probe errors are *errors.CheckError values with a 3XX code;
// they never panic past the probe boundary, and the fact returned alongside an
// error is always the zero-valued or best-effort value.
//
// Parsers are pure functions over the raw text and are tested without any OS:
//
//	records := probe.ParseRecords(out)
//	gpt := probe.ParsePartitionScheme(diskpartOut)
//	dx, wddm := probe.ParseDxDiag(report)
//
// Probes that depend on transient files create them in a unique Workspace and
// remove it on every path, including timeouts.
package probe
