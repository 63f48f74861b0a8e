package qunit

import (
	"os"
	"strconv"
	"time"
)

// separabilityThresholdEnv is the environment variable that overrides the
// default separability threshold, kept verbatim from the Qrack lineage
// this core is grounded on.
const separabilityThresholdEnv = "QRACK_QUNIT_SEPARABILITY_THRESHOLD"

// defaultSeparabilityThreshold is ε-scale.
const defaultSeparabilityThreshold = 1e-6

// stabilizerExactEpsilon is the Bloch-radius tolerance used in place of the
// configured separability threshold when the probed engine reports
// StabilizerProbe.IsClifford true: a pure floating-point epsilon rather
// than a heuristic tolerance, since a Clifford-restricted engine's Bloch
// read carries no approximation noise to absorb.
const stabilizerExactEpsilon = 1e-12

// Config carries the per-register tuning parameters. The core reads
// SeparabilityThreshold and ReactiveSeparate; ThresholdQubits and
// SchedulingTimeout are carried but not read by any code in this module.
type Config struct {
	// SeparabilityThreshold (τ) bounds how far a Bloch-vector length may
	// sit from 1 before the separator refuses to treat a marginal state as
	// pure.
	SeparabilityThreshold float64

	// ReactiveSeparate controls whether the separator runs automatically
	// after multi-qubit gates.
	ReactiveSeparate bool

	// ThresholdQubits is a hint for an engine backend's own internal
	// switching. The core does not interpret it, and EngineFactory receives
	// only the qubit count and initial permutation, so no backend sees it.
	ThresholdQubits int

	// SchedulingTimeout is a wait bound for a backend worker queue. The
	// reference engine backend does not read it: its queue blocks without a
	// timeout.
	SchedulingTimeout time.Duration
}

// NewConfig returns the default tuning parameters, applying the
// QRACK_QUNIT_SEPARABILITY_THRESHOLD environment override if it parses as a
// float, mirroring qunit.cpp's ENABLE_ENV_VARS block (qunit.cpp:76-80).
func NewConfig() *Config {
	cfg := &Config{
		SeparabilityThreshold: defaultSeparabilityThreshold,
		ReactiveSeparate:      true,
		ThresholdQubits:       0,
		SchedulingTimeout:     10 * time.Second,
	}

	if raw := os.Getenv(separabilityThresholdEnv); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			cfg.SeparabilityThreshold = v
		}
	}

	return cfg
}

// clone returns an independent copy, used by Register.Clone so that tuning
// changes on a clone never leak back into the source.
func (c *Config) clone() *Config {
	cp := *c
	return &cp
}
