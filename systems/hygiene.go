package systems

import (
	"math/rand/v2"
	"sort"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/nadagotchi/components"
	"github.com/pthm-cable/nadagotchi/config"
)

// DebrisRecord is the plain form of a debris entity, used for snapshots.
type DebrisRecord struct {
	ID         string  `json:"id"`
	Kind       string  `json:"type"`
	Location   string  `json:"location"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	CreatedDay int     `json:"createdAt"`
}

// Hygiene owns debris entities and the cached happiness penalties they cause.
// Every mutator recalculates the caches; readers never do.
type Hygiene struct {
	cfg    config.HygieneConfig
	world  *ecs.World
	mapper *ecs.Map2[components.Debris, components.Placement]
	filter *ecs.Filter2[components.Debris, components.Placement]
	byID   map[string]ecs.Entity
	nextID func() string
	seq    uint64

	globalPenalty   float64
	locationPenalty map[string]float64
}

// NewHygiene creates an empty debris world. nextID supplies unique debris IDs.
func NewHygiene(cfg config.HygieneConfig, nextID func() string) *Hygiene {
	world := ecs.NewWorld()
	return &Hygiene{
		cfg:             cfg,
		world:           world,
		mapper:          ecs.NewMap2[components.Debris, components.Placement](world),
		filter:          ecs.NewFilter2[components.Debris, components.Placement](world),
		byID:            make(map[string]ecs.Entity),
		nextID:          nextID,
		locationPenalty: make(map[string]float64),
	}
}

// Count returns the number of debris entities.
func (h *Hygiene) Count() int {
	return len(h.byID)
}

// GlobalPenalty returns the cached sum of all debris penalties.
func (h *Hygiene) GlobalPenalty() float64 {
	return h.globalPenalty
}

// LocationPenalty returns the cached penalty sum for one location.
func (h *Hygiene) LocationPenalty(location string) float64 {
	return h.locationPenalty[location]
}

// LocationPenalties returns a copy of the per-location cache.
func (h *Hygiene) LocationPenalties() map[string]float64 {
	out := make(map[string]float64, len(h.locationPenalty))
	for k, v := range h.locationPenalty {
		out[k] = v
	}
	return out
}

// Penalty returns the per-unit penalty for a debris kind.
func (h *Hygiene) Penalty(kind string) float64 {
	return h.cfg.Penalties[kind]
}

// Add inserts a debris record as-is. Records with an empty or duplicate ID are ignored.
func (h *Hygiene) Add(rec DebrisRecord) bool {
	if !h.add(rec) {
		return false
	}
	h.RecalculateCleanlinessPenalty()
	return true
}

// AddAll inserts many records with a single cache refresh.
func (h *Hygiene) AddAll(recs []DebrisRecord) {
	for _, rec := range recs {
		h.add(rec)
	}
	h.RecalculateCleanlinessPenalty()
}

func (h *Hygiene) add(rec DebrisRecord) bool {
	if rec.ID == "" {
		return false
	}
	if _, dup := h.byID[rec.ID]; dup {
		return false
	}
	h.seq++
	d := components.Debris{ID: rec.ID, Kind: rec.Kind, CreatedDay: rec.CreatedDay, Seq: h.seq}
	p := components.Placement{Location: rec.Location, X: rec.X, Y: rec.Y}
	h.byID[rec.ID] = h.mapper.NewEntity(&d, &p)
	return true
}

// Remove deletes a debris entity by ID.
func (h *Hygiene) Remove(id string) (DebrisRecord, bool) {
	e, ok := h.byID[id]
	if !ok || !h.world.Alive(e) {
		return DebrisRecord{}, false
	}
	d, p := h.mapper.Get(e)
	rec := toRecord(d, p)
	h.world.RemoveEntity(e)
	delete(h.byID, id)
	h.RecalculateCleanlinessPenalty()
	return rec, true
}

// Get returns one debris record.
func (h *Hygiene) Get(id string) (DebrisRecord, bool) {
	e, ok := h.byID[id]
	if !ok || !h.world.Alive(e) {
		return DebrisRecord{}, false
	}
	return toRecord(h.mapper.Get(e)), true
}

// All returns every debris record in insertion order.
func (h *Hygiene) All() []DebrisRecord {
	type entry struct {
		seq uint64
		rec DebrisRecord
	}
	var entries []entry
	query := h.filter.Query()
	for query.Next() {
		d, p := query.Get()
		entries = append(entries, entry{seq: d.Seq, rec: toRecord(d, p)})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })

	out := make([]DebrisRecord, len(entries))
	for i, e := range entries {
		out[i] = e.rec
	}
	return out
}

// SpawnDaily rolls the day's weeds for the garden, scaled by season and
// weather, plus an occasional forageable object. Returns what was added.
func (h *Hygiene) SpawnDaily(season, weather string, day int, rng *rand.Rand) []DebrisRecord {
	var spawned []DebrisRecord
	if h.Count() >= h.cfg.MaxCount {
		return nil
	}

	chance := h.cfg.SpawnChanceDaily * multiplier(h.cfg.SeasonMultipliers, season) * multiplier(h.cfg.WeatherMultipliers, weather)
	if rng.Float64() < chance {
		qty := h.cfg.WeedsMin
		if span := h.cfg.WeedsMax - h.cfg.WeedsMin; span > 0 {
			qty += rng.IntN(span + 1)
		}
		qty += h.cfg.WeatherBonus[weather]
		for range qty {
			if h.Count() >= h.cfg.MaxCount {
				break
			}
			rec := h.place(components.KindWeed, h.cfg.GardenLocation, day, rng)
			h.add(rec)
			spawned = append(spawned, rec)
		}
	}

	kinds := h.cfg.ForageDebris[season]
	if len(kinds) > 0 && h.Count() < h.cfg.MaxCount && rng.Float64() < h.cfg.ForageDebrisChance {
		rec := h.place(kinds[rng.IntN(len(kinds))], h.cfg.GardenLocation, day, rng)
		h.add(rec)
		spawned = append(spawned, rec)
	}

	if len(spawned) > 0 {
		h.RecalculateCleanlinessPenalty()
	}
	return spawned
}

// SpawnPoop may drop poop at the given location, away from existing poop.
func (h *Hygiene) SpawnPoop(location string, day int, rng *rand.Rand) (DebrisRecord, bool) {
	if h.Count() >= h.cfg.MaxCount || rng.Float64() >= h.cfg.PoopChance {
		return DebrisRecord{}, false
	}

	var existing []components.Placement
	query := h.filter.Query()
	for query.Next() {
		d, p := query.Get()
		if d.Kind == components.KindPoop && p.Location == location {
			existing = append(existing, *p)
		}
	}

	minSq := h.cfg.PoopMinDistance * h.cfg.PoopMinDistance
	for range max(h.cfg.PoopAttempts, 1) {
		rec := h.place(components.KindPoop, location, day, rng)
		candidate := components.Placement{Location: location, X: rec.X, Y: rec.Y}
		free := true
		for _, p := range existing {
			if candidate.DistanceSq(p) < minSq {
				free = false
				break
			}
		}
		if free {
			h.Add(rec)
			return rec, true
		}
	}
	return DebrisRecord{}, false
}

// RecalculateCleanlinessPenalty rebuilds the global and per-location caches
// in one pass over all debris.
func (h *Hygiene) RecalculateCleanlinessPenalty() {
	h.globalPenalty = 0
	clear(h.locationPenalty)

	query := h.filter.Query()
	for query.Next() {
		d, p := query.Get()
		penalty := h.cfg.Penalties[d.Kind]
		h.globalPenalty += penalty
		h.locationPenalty[p.Location] += penalty
	}
}

func (h *Hygiene) place(kind, location string, day int, rng *rand.Rand) DebrisRecord {
	return DebrisRecord{
		ID:         h.nextID(),
		Kind:       kind,
		Location:   location,
		X:          lerp(h.cfg.XMin, h.cfg.XMax, rng.Float64()),
		Y:          lerp(h.cfg.YMin, h.cfg.YMax, rng.Float64()),
		CreatedDay: day,
	}
}

func toRecord(d *components.Debris, p *components.Placement) DebrisRecord {
	return DebrisRecord{
		ID:         d.ID,
		Kind:       d.Kind,
		Location:   p.Location,
		X:          p.X,
		Y:          p.Y,
		CreatedDay: d.CreatedDay,
	}
}
