// Package config provides configuration structures and validation for the
// prime-structured initial-condition generator and the swarm-Koopman
// evolution core. It includes deterministic default configurations plus
// auto-scaling helpers, with the same normalize-then-validate capability the
// original swarm-synchronization configuration package offered.
package config
