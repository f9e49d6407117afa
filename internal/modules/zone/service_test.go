package zone

import (
	"context"
	"testing"

	"ghaseel/internal/types"
)

type fakeSource struct {
	zones []Zone
}

func (f *fakeSource) ListZones(ctx context.Context) ([]Zone, error) {
	return f.zones, nil
}

func riyadhZone() Zone {
	return Zone{
		ID:     "z_riyadh",
		NameEn: "Riyadh Central",
		NameAr: "وسط الرياض",
		Geometry: Geometry{
			Type:     GeometryCenter,
			Center:   types.Point{Lat: 24.7136, Lng: 46.6753},
			RadiusKm: 15,
		},
	}
}

func dammamZone() Zone {
	return Zone{
		ID:     "z_dammam",
		NameEn: "Dammam Corniche",
		NameAr: "كورنيش الدمام",
		Geometry: Geometry{
			Type: GeometryPolygon,
			Polygon: []types.Point{
				{Lat: 26.4207, Lng: 50.0888},
				{Lat: 26.4207, Lng: 50.1288},
				{Lat: 26.4507, Lng: 50.1288},
				{Lat: 26.4507, Lng: 50.0888},
			},
		},
	}
}

func TestResolve_CenterZone(t *testing.T) {
	svc := NewService(&fakeSource{zones: []Zone{riyadhZone(), dammamZone()}})

	z, err := svc.Resolve(context.Background(), types.Point{Lat: 24.7271, Lng: 46.6753})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if z.ID != "z_riyadh" {
		t.Errorf("resolved zone = %s, want z_riyadh", z.ID)
	}
}

func TestResolve_PolygonZone(t *testing.T) {
	svc := NewService(&fakeSource{zones: []Zone{riyadhZone(), dammamZone()}})

	z, err := svc.Resolve(context.Background(), types.Point{Lat: 26.4357, Lng: 50.1088})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if z.ID != "z_dammam" {
		t.Errorf("resolved zone = %s, want z_dammam", z.ID)
	}
}

func TestResolve_NoCoveringZone(t *testing.T) {
	svc := NewService(&fakeSource{zones: []Zone{riyadhZone(), dammamZone()}})

	// ~50km from the Riyadh centre, outside the Dammam rectangle.
	_, err := svc.Resolve(context.Background(), types.Point{Lat: 25.1636, Lng: 46.6753})
	if err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestResolve_FirstMatchWins(t *testing.T) {
	inner := riyadhZone()
	outer := riyadhZone()
	outer.ID = "z_riyadh_wide"
	outer.Geometry.RadiusKm = 40

	// Source order is ascending id; the first containing zone wins.
	svc := NewService(&fakeSource{zones: []Zone{inner, outer}})
	z, err := svc.Resolve(context.Background(), types.Point{Lat: 24.7271, Lng: 46.6753})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if z.ID != "z_riyadh" {
		t.Errorf("resolved zone = %s, want first match z_riyadh", z.ID)
	}
}

func TestResolve_MalformedGeometrySkipped(t *testing.T) {
	broken := Zone{ID: "z_broken", NameEn: "Broken"} // zero geometry
	svc := NewService(&fakeSource{zones: []Zone{broken, riyadhZone()}})

	z, err := svc.Resolve(context.Background(), types.Point{Lat: 24.7271, Lng: 46.6753})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if z.ID != "z_riyadh" {
		t.Errorf("resolved zone = %s, want z_riyadh (broken zone skipped)", z.ID)
	}

	// Only broken zones configured: resolution fails closed.
	svc = NewService(&fakeSource{zones: []Zone{broken}})
	if _, err := svc.Resolve(context.Background(), types.Point{Lat: 24.7271, Lng: 46.6753}); err != ErrNotFound {
		t.Errorf("expected ErrNotFound with only broken zones, got %v", err)
	}
}
