// Package config defines the run configuration for a scriptup invocation.
//
// The [Config] struct is the canonical representation of one upload or
// rollback run: the script to push, the partition and region selection,
// bucket naming, and the mutation flags (dry-run, override, create). It
// is assembled once from CLI flags, validated at construction, and never
// mutated afterwards.
package config
