// Package config loads and merges pathwatch configuration.
//
// Precedence (highest to lowest):
//  1. CLI flags (passed in as overrides)
//  2. Environment variables (PATHWATCH_REMOTE, PATHWATCH_FETCH_STRATEGY, etc.)
//  3. Config file (.pathwatch.yaml)
//  4. Built-in defaults
//
// The environment is read through an injected lookup function, never through
// package-level os.Getenv calls, so tests can supply a plain map. Use [Load]
// to obtain a merged, validated [Config].
package config
