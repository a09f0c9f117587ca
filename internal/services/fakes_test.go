package services

import (
	"context"
	"errors"
	"sync"

	"fleetbilling/internal/billing"
	"fleetbilling/internal/domain"
)

type memTrips struct {
	mu        sync.Mutex
	trips     []billing.Trip
	nextID    int64
	failWrite error
	lists     int
}

func (m *memTrips) List(ctx context.Context) ([]billing.Trip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lists++
	out := make([]billing.Trip, len(m.trips))
	copy(out, m.trips)
	return out, nil
}

func (m *memTrips) Get(ctx context.Context, id int64) (billing.Trip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.trips {
		if t.ID == id {
			return t, nil
		}
	}
	return billing.Trip{}, domain.NotFound("trip", id)
}

func (m *memTrips) Create(ctx context.Context, t billing.Trip) (billing.Trip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrite != nil {
		return billing.Trip{}, m.failWrite
	}
	m.nextID++
	t.ID = m.nextID
	m.trips = append(m.trips, t)
	return t, nil
}

func (m *memTrips) Update(ctx context.Context, t billing.Trip) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrite != nil {
		return m.failWrite
	}
	for i := range m.trips {
		if m.trips[i].ID == t.ID {
			m.trips[i] = t
			return nil
		}
	}
	return domain.NotFound("trip", t.ID)
}

func (m *memTrips) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrite != nil {
		return m.failWrite
	}
	for i := range m.trips {
		if m.trips[i].ID == id {
			m.trips = append(m.trips[:i], m.trips[i+1:]...)
			return nil
		}
	}
	return domain.NotFound("trip", id)
}

type memPresets struct {
	rows  map[string]billing.StoredPreset
	fails map[string]error
}

func (m *memPresets) ListBySuffix(ctx context.Context, suffix string) ([]billing.StoredPreset, error) {
	if err := m.fails[suffix]; err != nil {
		return nil, err
	}
	out := []billing.StoredPreset{}
	for name, r := range m.rows {
		if billing.MatchesSuffix(name, suffix) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memPresets) Upsert(ctx context.Context, name string, price, wage float64) error {
	if m.rows == nil {
		m.rows = map[string]billing.StoredPreset{}
	}
	m.rows[name] = billing.StoredPreset{RouteName: name, Price: price, Wage: wage}
	return nil
}

func (m *memPresets) Delete(ctx context.Context, name string) error {
	if _, ok := m.rows[name]; !ok {
		return domain.NotFound("preset", name)
	}
	delete(m.rows, name)
	return nil
}

type memCN struct{ m billing.CNMap }

func (c *memCN) List(ctx context.Context) (billing.CNMap, error) { return c.m, nil }

func (c *memCN) Set(ctx context.Context, driver string, amount float64) error {
	if c.m == nil {
		c.m = billing.CNMap{}
	}
	c.m[billing.NormalizeName(driver)] = amount
	return nil
}

type memPrefs struct{ m map[string]billing.UserPreferences }

func (p *memPrefs) Get(ctx context.Context, profile string) (billing.UserPreferences, error) {
	return p.m[profile], nil
}

func (p *memPrefs) Save(ctx context.Context, profile string, prefs billing.UserPreferences) error {
	if p.m == nil {
		p.m = map[string]billing.UserPreferences{}
	}
	p.m[profile] = prefs
	return nil
}

type memRefills struct {
	list []billing.FuelRefill
}

func (m *memRefills) List(ctx context.Context) ([]billing.FuelRefill, error) { return m.list, nil }

func (m *memRefills) Create(ctx context.Context, rec billing.FuelRefill) (billing.FuelRefill, error) {
	rec.ID = int64(len(m.list) + 1)
	m.list = append(m.list, rec)
	return rec, nil
}

func (m *memRefills) Delete(ctx context.Context, id int64) error {
	return errors.New("not supported")
}
