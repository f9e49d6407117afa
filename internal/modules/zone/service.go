// README: Zone resolver maps a customer coordinate onto a service zone.
package zone

import (
	"context"
	"errors"

	"ghaseel/internal/types"
)

var ErrNotFound = errors.New("zone not found")

// Source lists zones in ascending-id order so resolution stays deterministic
// when coverage areas overlap.
type Source interface {
	ListZones(ctx context.Context) ([]Zone, error)
}

type Service struct {
	zones Source
}

func NewService(zones Source) *Service {
	return &Service{zones: zones}
}

// Resolve returns the first zone whose geometry contains p, or ErrNotFound.
// Zones with invalid geometry contain nothing and are skipped.
func (s *Service) Resolve(ctx context.Context, p types.Point) (*Zone, error) {
	zones, err := s.zones.ListZones(ctx)
	if err != nil {
		return nil, err
	}
	for i := range zones {
		if zones[i].Geometry.Contains(p) {
			return &zones[i], nil
		}
	}
	return nil, ErrNotFound
}
