package catalog

import (
	"context"
	"sort"
	"sync"

	"github.com/shopspring/decimal"
)

// Memory guarda o catálogo em memória; serve de dublê nos testes e em demos
type Memory struct {
	mu      sync.RWMutex
	races   map[int64]Race
	drivers map[int64]Driver
	entries []RaceEntry
	nextID  int64
}

func NewMemory() *Memory {
	return &Memory{
		races:   make(map[int64]Race),
		drivers: make(map[int64]Driver),
		nextID:  1,
	}
}

func (m *Memory) AddRace(r Race) Race {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r.ID == 0 {
		r.ID = m.nextID
		m.nextID++
	}
	m.races[r.ID] = r
	return r
}

func (m *Memory) AddDriver(d Driver) Driver {
	m.mu.Lock()
	defer m.mu.Unlock()
	if d.ID == 0 {
		d.ID = m.nextID
		m.nextID++
	}
	m.drivers[d.ID] = d
	return d
}

func (m *Memory) SetOdds(e RaceEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.entries {
		if m.entries[i].RaceID == e.RaceID && m.entries[i].DriverID == e.DriverID {
			m.entries[i] = e
			return
		}
	}
	m.entries = append(m.entries, e)
}

func (m *Memory) ListRaces(_ context.Context) ([]Race, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Race, 0, len(m.races))
	for _, r := range m.races {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *Memory) GetRace(_ context.Context, raceID int64) (Race, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.races[raceID]
	if !ok {
		return Race{}, ErrRaceNotFound
	}
	return r, nil
}

// HasRace valida a referência da corrida (usado pelo bet store em memória)
func (m *Memory) HasRace(raceID int64) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.races[raceID]
	return ok
}

func (m *Memory) RaceEntries(_ context.Context, raceID int64) ([]RaceEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, ok := m.races[raceID]; !ok {
		return nil, ErrRaceNotFound
	}
	var out []RaceEntry
	for _, e := range m.entries {
		if e.RaceID == raceID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].WinnerOdds.Equal(out[j].WinnerOdds) {
			return out[i].WinnerOdds.LessThan(out[j].WinnerOdds)
		}
		return out[i].DriverName < out[j].DriverName
	})
	return out, nil
}

func (m *Memory) CurrentOdds(_ context.Context, raceID int64, driverName, market string) (decimal.Decimal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, e := range m.entries {
		if e.RaceID != raceID || e.DriverName != driverName {
			continue
		}
		switch market {
		case "winner":
			return e.WinnerOdds, nil
		case "podium":
			return e.PodiumOdds, nil
		case "pole":
			return e.PoleOdds, nil
		}
	}
	return decimal.Zero, ErrOddsNotFound
}

func (m *Memory) CountRaces(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.races), nil
}
