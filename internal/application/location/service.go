package location

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/narcomap-api/internal/application/notification"
	"github.com/narcomap-api/internal/domain"
	"github.com/narcomap-api/internal/pkg/id"
	"github.com/narcomap-api/internal/pkg/validate"
)

type Service interface {
	List(ctx context.Context) ([]domain.Location, error)
	Get(ctx context.Context, locationID string) (*domain.Location, error)
	Create(ctx context.Context, input domain.LocationInput, actor notification.Actor) (*domain.Location, error)
	Update(ctx context.Context, locationID string, input domain.LocationInput) (*domain.Location, error)
	Delete(ctx context.Context, locationID string) error
	// Statistics aggregates case totals and marker counts per village.
	Statistics(ctx context.Context) ([]domain.VillageStats, error)
}

type locationStore interface {
	Put(ctx context.Context, l *domain.Location) error
	Get(ctx context.Context, locationID string) (*domain.Location, error)
	List(ctx context.Context) ([]domain.Location, error)
	Update(ctx context.Context, locationID string, updates map[string]interface{}) error
	Delete(ctx context.Context, locationID string) error
}

type service struct {
	repo    locationStore
	emitter *notification.Emitter
}

func NewService(repo locationStore, emitter *notification.Emitter) Service {
	return &service{repo: repo, emitter: emitter}
}

func (s *service) List(ctx context.Context) ([]domain.Location, error) {
	return s.repo.List(ctx)
}

func (s *service) Get(ctx context.Context, locationID string) (*domain.Location, error) {
	return s.repo.Get(ctx, locationID)
}

func (s *service) Create(ctx context.Context, input domain.LocationInput, actor notification.Actor) (*domain.Location, error) {
	if err := validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%s: %w", err, domain.ErrBadRequest)
	}
	if !domain.ValidVillage(input.Village) {
		return nil, fmt.Errorf("unknown kelurahan %q: %w", input.Village, domain.ErrBadRequest)
	}

	now := time.Now().UTC()
	l := &domain.Location{
		LocationID:  id.New(),
		Latitude:    *input.Latitude,
		Longitude:   *input.Longitude,
		Village:     input.Village,
		Address:     input.Address,
		Description: input.Description,
		Cases:       input.Cases,
		Color:       input.Color,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if l.Cases == 0 {
		l.Cases = 1
	}
	if l.Color == "" {
		l.Color = domain.DefaultMarkerColor
	}
	if err := s.repo.Put(ctx, l); err != nil {
		return nil, err
	}

	// Admins get pinged about new markers. The marker itself is already
	// persisted, so a notification failure is swallowed inside Emit.
	s.emitter.Emit(ctx, domain.NotificationLocation,
		fmt.Sprintf("Lokasi rawan baru ditambahkan di %s", l.Village),
		map[string]interface{}{
			"locationId": l.LocationID,
			"kelurahan":  l.Village,
			"latitude":   l.Latitude,
			"longitude":  l.Longitude,
		}, actor)

	return l, nil
}

func (s *service) Update(ctx context.Context, locationID string, input domain.LocationInput) (*domain.Location, error) {
	if _, err := s.repo.Get(ctx, locationID); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.Latitude != nil {
		if *input.Latitude < -90 || *input.Latitude > 90 {
			return nil, fmt.Errorf("latitude out of range: %w", domain.ErrBadRequest)
		}
		updates["latitude"] = *input.Latitude
	}
	if input.Longitude != nil {
		if *input.Longitude < -180 || *input.Longitude > 180 {
			return nil, fmt.Errorf("longitude out of range: %w", domain.ErrBadRequest)
		}
		updates["longitude"] = *input.Longitude
	}
	if input.Village != "" {
		if !domain.ValidVillage(input.Village) {
			return nil, fmt.Errorf("unknown kelurahan %q: %w", input.Village, domain.ErrBadRequest)
		}
		updates["village"] = input.Village
	}
	if input.Address != "" {
		updates["address"] = input.Address
	}
	if input.Description != "" {
		updates["description"] = input.Description
	}
	if input.Cases != 0 {
		if input.Cases < 1 {
			return nil, fmt.Errorf("cases must be at least 1: %w", domain.ErrBadRequest)
		}
		updates["cases"] = input.Cases
	}
	if input.Color != "" {
		updates["color"] = input.Color
	}
	if len(updates) == 0 {
		return s.repo.Get(ctx, locationID)
	}
	if err := s.repo.Update(ctx, locationID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, locationID)
}

func (s *service) Delete(ctx context.Context, locationID string) error {
	return s.repo.Delete(ctx, locationID)
}

func (s *service) Statistics(ctx context.Context) ([]domain.VillageStats, error) {
	locations, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	byVillage := map[string]*domain.VillageStats{}
	for _, l := range locations {
		st, ok := byVillage[l.Village]
		if !ok {
			st = &domain.VillageStats{Village: l.Village, Color: l.Color}
			byVillage[l.Village] = st
		}
		st.Total += l.Cases
		st.Count++
	}
	stats := make([]domain.VillageStats, 0, len(byVillage))
	for _, st := range byVillage {
		stats = append(stats, *st)
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Total > stats[j].Total })
	return stats, nil
}
