// Package cli wires together the Cobra command tree for the pathwatch binary.
//
// It defines the root command and its subcommands (check, version), binds
// flags, reads configuration and action inputs, drives the three-stage
// decision (resolve inputs, materialize refs, detect changes), and returns
// deterministic exit codes for CI gating.
package cli
