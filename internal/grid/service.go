package grid

import (
	"context"
	"time"

	"gridspot/internal/bookings"
	"gridspot/internal/tiers"
)

// Snapshot is the public occupancy view of the whole grid at one instant.
// Only slots with a live booking appear in Occupied; everything else is free.
type Snapshot struct {
	Size        int                      `json:"size"`
	GeneratedAt time.Time                `json:"generated_at"`
	Occupied    []bookings.PublicBooking `json:"occupied"`
	Tiers       []tiers.TierConfig       `json:"tiers"`
}

// SlotView is the per-slot lookup result: tier metadata plus the current
// occupant, if any
type SlotView struct {
	tiers.SlotInfo
	Occupant *bookings.PublicBooking `json:"occupant,omitempty"`
}

// ActiveLister is the slice of the booking repository the grid reads
type ActiveLister interface {
	ListActiveAt(ctx context.Context, at time.Time) ([]bookings.Booking, error)
}

// Service interface defines the public read surface over the grid
type Service interface {
	GetSnapshot(ctx context.Context) (*Snapshot, error)
	GetSlot(ctx context.Context, x, y int) (*SlotView, error)
}

type service struct {
	activeLister ActiveLister
	tierService  tiers.Service
	cache        *SnapshotCache

	now func() time.Time
}

// NewService creates a new grid query service instance. cache may be nil;
// every read then builds fresh from the database.
func NewService(activeLister ActiveLister, tierService tiers.Service, cache *SnapshotCache) Service {
	return &service{
		activeLister: activeLister,
		tierService:  tierService,
		cache:        cache,
		now:          time.Now,
	}
}

func (s *service) GetSnapshot(ctx context.Context) (*Snapshot, error) {
	if s.cache != nil {
		if cached := s.cache.Get(ctx); cached != nil {
			return cached, nil
		}
	}

	snapshot, err := s.buildSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, snapshot)
	}
	return snapshot, nil
}

func (s *service) GetSlot(ctx context.Context, x, y int) (*SlotView, error) {
	info, err := s.tierService.SlotInfoAt(ctx, x, y)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.GetSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	view := &SlotView{SlotInfo: *info}
	for i := range snapshot.Occupied {
		occupant := &snapshot.Occupied[i]
		if occupant.SlotX == x && occupant.SlotY == y {
			view.Occupant = occupant
			break
		}
	}
	return view, nil
}

func (s *service) buildSnapshot(ctx context.Context) (*Snapshot, error) {
	now := s.now()

	active, err := s.activeLister.ListActiveAt(ctx, now)
	if err != nil {
		return nil, err
	}

	configs, err := s.tierService.ListConfigs(ctx)
	if err != nil {
		return nil, err
	}

	occupied := make([]bookings.PublicBooking, 0, len(active))
	for i := range active {
		occupied = append(occupied, active[i].ToPublic())
	}

	return &Snapshot{
		Size:        tiers.GridSize,
		GeneratedAt: now,
		Occupied:    occupied,
		Tiers:       configs,
	}, nil
}
