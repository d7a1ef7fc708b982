// Package config carries every tunable constant the routing kernel needs
// as a single injectable record, not globals, so test suites can perturb
// them freely.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/AbanoubPhelopos/Wsnly-Graduation-Project-Backend/pkg"
	"github.com/spf13/viper"
)

// AgencyRule maps an agency identifier (exact match, or prefix when
// Prefix is true) to a Mode. Rules are tried in order; the first match
// wins. Unmatched agencies fall back to RoutingConfig.DefaultMode.
type AgencyRule struct {
	Agency string
	Prefix bool
	Mode   pkg.Mode
}

// RoutingConfig is the process-wide set of physical and algorithmic
// constants the routing kernel runs on. Every field has a documented
// default unless overridden via Load.
type RoutingConfig struct {
	WalkSpeedMPS     float64
	MetroSpeedMPS    float64
	BusSpeedMPS      float64
	MicrobusSpeedMPS float64

	StopDwellTimeSec   float64
	TransferPenaltySec float64
	MaxSpeedMPS        float64

	MaxWalkDistanceM float64
	// BoardingRadiiM is the radius ladder tried in order by Router when
	// hunting for non-empty boarding/alighting candidate sets.
	BoardingRadiiM []float64

	// DirectWalkFallbackM is the distance beyond which a direct walking
	// journey is no longer considered. Defaults to 2 * MaxWalkDistanceM.
	DirectWalkFallbackM float64

	AgencyRules []AgencyRule
	DefaultMode pkg.Mode
}

// Default returns the reference physical constants and a sample agency
// table for a Cairo-style metro/bus/microbus network.
func Default() RoutingConfig {
	maxWalk := 1500.0
	return RoutingConfig{
		WalkSpeedMPS:     1.4,
		MetroSpeedMPS:    16.67,
		BusSpeedMPS:      8.33,
		MicrobusSpeedMPS: 11.11,

		StopDwellTimeSec:   30.0,
		TransferPenaltySec: 60.0,
		MaxSpeedMPS:        25.0,

		MaxWalkDistanceM:    maxWalk,
		BoardingRadiiM:      []float64{maxWalk, 2500.0, 4000.0, 6000.0},
		DirectWalkFallbackM: 2 * maxWalk,

		AgencyRules: []AgencyRule{
			{Agency: "M_CAI-METRO", Mode: pkg.METRO},
			{Agency: "MB_CAI_BUS", Mode: pkg.MICROBUS},
			{Agency: "B1_CAI_BUS", Mode: pkg.BUS},
		},
		DefaultMode: pkg.BUS,
	}
}

// ModeSpeed returns the physics speed used for transit-edge weighting
// and, symmetrically, for per-segment duration estimates in pkg/present.
func (c RoutingConfig) ModeSpeed(m pkg.Mode) float64 {
	switch m {
	case pkg.METRO:
		return c.MetroSpeedMPS
	case pkg.BUS:
		return c.BusSpeedMPS
	case pkg.MICROBUS:
		return c.MicrobusSpeedMPS
	case pkg.WALK:
		return c.WalkSpeedMPS
	default:
		return c.BusSpeedMPS
	}
}

// ModeForAgency resolves an agency identifier to a Mode using AgencyRules,
// defaulting to DefaultMode when nothing matches. An unresolved agency is
// never an error; robustness wins over strictness here.
func (c RoutingConfig) ModeForAgency(agencyID string) pkg.Mode {
	for _, rule := range c.AgencyRules {
		if rule.Prefix {
			if strings.HasPrefix(agencyID, rule.Agency) {
				return rule.Mode
			}
			continue
		}
		if agencyID == rule.Agency {
			return rule.Mode
		}
	}
	return c.DefaultMode
}

// Load overlays a YAML/ENV config file found at path onto Default(). A
// missing file is not an error: Default() alone is a complete config.
func Load(path string) (RoutingConfig, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("walk_speed_mps", cfg.WalkSpeedMPS)
	v.SetDefault("metro_speed_mps", cfg.MetroSpeedMPS)
	v.SetDefault("bus_speed_mps", cfg.BusSpeedMPS)
	v.SetDefault("microbus_speed_mps", cfg.MicrobusSpeedMPS)
	v.SetDefault("stop_dwell_time_sec", cfg.StopDwellTimeSec)
	v.SetDefault("transfer_penalty_sec", cfg.TransferPenaltySec)
	v.SetDefault("max_speed_mps", cfg.MaxSpeedMPS)
	v.SetDefault("max_walk_distance_m", cfg.MaxWalkDistanceM)

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); notFound || os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("fatal error config file: %w", err)
	}

	cfg.WalkSpeedMPS = v.GetFloat64("walk_speed_mps")
	cfg.MetroSpeedMPS = v.GetFloat64("metro_speed_mps")
	cfg.BusSpeedMPS = v.GetFloat64("bus_speed_mps")
	cfg.MicrobusSpeedMPS = v.GetFloat64("microbus_speed_mps")
	cfg.StopDwellTimeSec = v.GetFloat64("stop_dwell_time_sec")
	cfg.TransferPenaltySec = v.GetFloat64("transfer_penalty_sec")
	cfg.MaxSpeedMPS = v.GetFloat64("max_speed_mps")
	cfg.MaxWalkDistanceM = v.GetFloat64("max_walk_distance_m")
	cfg.DirectWalkFallbackM = 2 * cfg.MaxWalkDistanceM
	cfg.BoardingRadiiM = []float64{cfg.MaxWalkDistanceM, 2500.0, 4000.0, 6000.0}

	return cfg, nil
}
