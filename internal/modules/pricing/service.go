// README: Pricing service computes quote breakdowns from catalog, zone, and rule data.
package pricing

import (
	"context"
	"math"

	"ghaseel/internal/modules/catalog"
	"ghaseel/internal/modules/zone"
	"ghaseel/internal/types"
)

type Catalog interface {
	GetService(ctx context.Context, id types.ID) (*catalog.Service, error)
	ListAddons(ctx context.Context, ids []types.ID) ([]catalog.Addon, error)
}

type Zones interface {
	GetZone(ctx context.Context, id types.ID) (*zone.Zone, error)
}

// Rules returns the stored rule for a key, or nil when none is configured.
type Rules interface {
	GetRule(ctx context.Context, key string) (*Rule, error)
}

type Service struct {
	catalog Catalog
	zones   Zones
	rules   Rules
}

func NewService(catalog Catalog, zones Zones, rules Rules) *Service {
	return &Service{catalog: catalog, zones: zones, rules: rules}
}

// Quote prices a booking request. Lookup failures that matter to correctness
// (catalog.ErrServiceNotFound, zone.ErrNotFound) propagate; degraded rule or
// geometry configuration never does — it resolves to a neutral default.
func (s *Service) Quote(ctx context.Context, req QuoteRequest) (Quote, error) {
	sv, err := s.catalog.GetService(ctx, req.ServiceID)
	if err != nil {
		return Quote{}, err
	}

	base := sv.TeamPrice
	if req.Solo {
		base = sv.SoloPrice
	}
	duration := sv.EstMinutes

	addons, err := s.catalog.ListAddons(ctx, req.AddonIDs)
	if err != nil {
		return Quote{}, err
	}
	var addonsTotal float64
	addonIDs := make([]types.ID, 0, len(addons))
	for _, a := range addons {
		addonsTotal += a.Price
		duration += a.EstMinutes
		addonIDs = append(addonIDs, a.ID)
	}

	z, err := s.zones.GetZone(ctx, req.ZoneID)
	if err != nil {
		return Quote{}, err
	}

	fee := s.distanceFee(ctx, z, req.Point)
	mult := s.carTypeMultiplier(ctx, req.CarType)

	q := Quote{
		BasePrice:        base,
		AddonsTotal:      addonsTotal,
		DistanceFee:      fee,
		EstimatedMinutes: duration,
		AddonIDs:         addonIDs,
	}
	// The multiplier scales labour (base and addons); the distance fee is
	// travel cost and stays unscaled.
	q.TotalPrice = base*mult + addonsTotal*mult + fee
	return q, nil
}

func (s *Service) distanceFee(ctx context.Context, z *zone.Zone, p *types.Point) float64 {
	if p == nil {
		return 0
	}
	rule, err := s.rules.GetRule(ctx, RuleDistanceFee)
	if err != nil {
		return 0
	}
	cfg, ok := rule.DistanceFee()
	if !ok {
		return 0
	}
	center, ok := z.Geometry.CenterPoint()
	if !ok {
		return 0
	}
	return distanceFee(cfg, zone.HaversineKm(*p, center))
}

func (s *Service) carTypeMultiplier(ctx context.Context, carType string) float64 {
	rule, err := s.rules.GetRule(ctx, RuleCarTypeMultipliers)
	if err != nil {
		return 1
	}
	return rule.CarTypeMultiplier(carType)
}

// distanceFee applies the free radius, then the per-km fee up to the cap.
func distanceFee(cfg DistanceFeeConfig, distanceKm float64) float64 {
	if distanceKm <= cfg.MaxFreeDistanceKm {
		return 0
	}
	fee := (distanceKm - cfg.MaxFreeDistanceKm) * cfg.FeePerKm
	return math.Min(fee, cfg.MaxFee)
}
