// README: Pricing rule definitions and quote breakdown.
package pricing

import (
	"encoding/json"

	"ghaseel/internal/types"
)

// Rule keys known to the engine. Rules are externally configured and
// individually toggleable; unknown keys are ignored.
const (
	RuleDistanceFee        = "distance_fee"
	RuleCarTypeMultipliers = "car_type_multipliers"
)

// Rule is a stored pricing rule with its raw configuration payload. Payloads
// are parsed on demand into their typed shape; a payload that does not parse
// behaves exactly like an absent rule.
type Rule struct {
	Key     string
	Enabled bool
	Config  json.RawMessage
}

// DistanceFeeConfig is the payload shape of the distance_fee rule.
type DistanceFeeConfig struct {
	MaxFreeDistanceKm float64 `json:"max_free_distance_km"`
	FeePerKm          float64 `json:"fee_per_km"`
	MaxFee            float64 `json:"max_fee"`
}

// DistanceFee extracts the typed distance-fee config. The boolean is false
// when the rule is nil, disabled, or its payload is malformed.
func (r *Rule) DistanceFee() (DistanceFeeConfig, bool) {
	if r == nil || !r.Enabled {
		return DistanceFeeConfig{}, false
	}
	var cfg DistanceFeeConfig
	if err := json.Unmarshal(r.Config, &cfg); err != nil {
		return DistanceFeeConfig{}, false
	}
	if cfg.FeePerKm < 0 || cfg.MaxFee < 0 || cfg.MaxFreeDistanceKm < 0 {
		return DistanceFeeConfig{}, false
	}
	return cfg, true
}

// CarTypeMultiplier returns the multiplier for carType from a
// car_type_multipliers rule, or 1 when the rule is nil, disabled, malformed,
// or does not know the car type.
func (r *Rule) CarTypeMultiplier(carType string) float64 {
	if r == nil || !r.Enabled {
		return 1
	}
	var m map[string]float64
	if err := json.Unmarshal(r.Config, &m); err != nil {
		return 1
	}
	mult, ok := m[carType]
	if !ok || mult <= 0 {
		return 1
	}
	return mult
}

// QuoteRequest carries everything the engine needs to price a booking.
// Point is the customer's location; nil means the caller never provided one,
// and the distance fee stays neutral rather than guessing.
type QuoteRequest struct {
	ServiceID types.ID
	AddonIDs  []types.ID
	CarType   string
	ZoneID    types.ID
	Point     *types.Point
	Solo      bool
}

// Quote is the deterministic price breakdown returned to the caller.
// AddonIDs lists the addons that were actually found and counted, so a client
// can detect a typo'd id by diffing against its request.
type Quote struct {
	BasePrice        float64    `json:"base_price"`
	AddonsTotal      float64    `json:"addons_total"`
	DistanceFee      float64    `json:"distance_fee"`
	TotalPrice       float64    `json:"total_price"`
	EstimatedMinutes int        `json:"estimated_duration"`
	AddonIDs         []types.ID `json:"addon_ids"`
}
