package unit

import (
	"github.com/google/uuid"

	"github.com/pfassina/grimdark/errs"
	"github.com/pfassina/grimdark/geom"
)

// ID is a stable entity identifier, generated once at creation and never
// reused (spec.md §3.3).
type ID string

// NewID mints a fresh, globally unique entity id.
func NewID() ID {
	return ID(uuid.NewString())
}

// Unit is a composite entity: an id plus a sparse set of components.
// Required components (Actor, Health, Movement, Combat, Status) are always
// present once a Unit is built via New; optional components (Morale,
// WoundList, Interrupt, AI) are added only when the scenario calls for
// them.
type Unit struct {
	id         ID
	components map[Kind]component
}

// New builds a Unit with its required components populated.
func New(actor Actor, health Health, movement Movement, combat Combat) *Unit {
	u := &Unit{
		id:         NewID(),
		components: make(map[Kind]component, 8),
	}
	u.components[KindActor] = actor
	u.components[KindHealth] = health
	u.components[KindMovement] = movement
	u.components[KindCombat] = combat
	u.components[KindStatus] = Status{}
	return u
}

// ID returns the unit's stable identifier.
func (u *Unit) ID() ID { return u.id }

// Has reports whether the unit carries a component of the given kind.
func (u *Unit) Has(k Kind) bool {
	_, ok := u.components[k]
	return ok
}

// set installs or replaces a component.
func (u *Unit) set(c component) {
	u.components[c.kind()] = c
}

// Actor returns the unit's Actor component. It panics if absent, since
// Actor is required for every Unit constructed via New.
func (u *Unit) Actor() Actor { return u.components[KindActor].(Actor) }

// Health returns the unit's Health component.
func (u *Unit) Health() Health { return u.components[KindHealth].(Health) }

// SetHealth replaces the unit's Health component.
func (u *Unit) SetHealth(h Health) { u.set(h) }

// Movement returns the unit's Movement component.
func (u *Unit) Movement() Movement { return u.components[KindMovement].(Movement) }

// SetMovement replaces the unit's Movement component.
func (u *Unit) SetMovement(m Movement) { u.set(m) }

// Combat returns the unit's Combat component.
func (u *Unit) Combat() Combat { return u.components[KindCombat].(Combat) }

// SetCombat replaces the unit's Combat component.
func (u *Unit) SetCombat(c Combat) { u.set(c) }

// Status returns the unit's Status component.
func (u *Unit) Status() Status { return u.components[KindStatus].(Status) }

// SetStatus replaces the unit's Status component.
func (u *Unit) SetStatus(s Status) { u.set(s) }

// Morale returns the unit's Morale component and whether it is present.
func (u *Unit) Morale() (Morale, bool) {
	c, ok := u.components[KindMorale]
	if !ok {
		return Morale{}, false
	}
	return c.(Morale), true
}

// SetMorale installs or replaces the unit's Morale component.
func (u *Unit) SetMorale(m Morale) { u.set(m) }

// Wounds returns the unit's WoundList component and whether it is present.
func (u *Unit) Wounds() (WoundList, bool) {
	c, ok := u.components[KindWound]
	if !ok {
		return WoundList{}, false
	}
	return c.(WoundList), true
}

// SetWounds installs or replaces the unit's WoundList component.
func (u *Unit) SetWounds(w WoundList) { u.set(w) }

// AddWound appends a wound to the unit's WoundList, creating the
// component if absent.
func (u *Unit) AddWound(w Wound) {
	list, _ := u.Wounds()
	list.Wounds = append(list.Wounds, w)
	u.SetWounds(list)
}

// Interrupt returns the unit's Interrupt component and whether it is
// present.
func (u *Unit) Interrupt() (Interrupt, bool) {
	c, ok := u.components[KindInterrupt]
	if !ok {
		return Interrupt{}, false
	}
	return c.(Interrupt), true
}

// SetInterrupt installs or replaces the unit's Interrupt component.
func (u *Unit) SetInterrupt(i Interrupt) { u.set(i) }

// AIComponent returns the unit's AI component and whether it is present.
func (u *Unit) AIComponent() (AI, bool) {
	c, ok := u.components[KindAI]
	if !ok {
		return AI{}, false
	}
	return c.(AI), true
}

// SetAI installs or replaces the unit's AI component.
func (u *Unit) SetAI(a AI) { u.set(a) }

// IsAlive reports whether the unit's current hit points are above zero.
func (u *Unit) IsAlive() bool { return u.Health().IsAlive() }

// Position is a convenience accessor over the Movement component.
func (u *Unit) Position() geom.Vector2 { return u.Movement().Position }

// EffectiveWeight applies the unit's Status.WeightModifier to a base
// action weight, clamped to geom's valid range (spec.md §4.2).
func (u *Unit) EffectiveWeight(base geom.Weight) geom.Weight {
	w := base + u.Status().WeightModifier
	if w < geom.MinWeight {
		w = geom.MinWeight
	}
	if w > geom.MaxWeight {
		w = geom.MaxWeight
	}
	return w
}

// Roster is the position-indexed collection of all units in a battle. It
// is the single source of truth for "who occupies this tile" queries used
// by pathing and targeting.
type Roster struct {
	units    map[ID]*Unit
	byTile   map[geom.Vector2]ID
}

// NewRoster builds an empty Roster.
func NewRoster() *Roster {
	return &Roster{
		units:  make(map[ID]*Unit),
		byTile: make(map[geom.Vector2]ID),
	}
}

// Add inserts a unit into the roster, indexing it by its current
// position. It returns an error if the tile is already occupied.
func (r *Roster) Add(u *Unit) error {
	pos := u.Position()
	if occupant, ok := r.byTile[pos]; ok && occupant != u.id {
		return errs.Newf(errs.CodeInvariantViolation, "tile %s already occupied by %s", pos, occupant)
	}
	r.units[u.id] = u
	r.byTile[pos] = u.id
	return nil
}

// Get returns the unit with the given id, or false if absent.
func (r *Roster) Get(id ID) (*Unit, bool) {
	u, ok := r.units[id]
	return u, ok
}

// At returns the unit occupying the given tile, or false if the tile is
// empty.
func (r *Roster) At(pos geom.Vector2) (*Unit, bool) {
	id, ok := r.byTile[pos]
	if !ok {
		return nil, false
	}
	u, ok := r.units[id]
	return u, ok
}

// Occupied reports whether any living unit occupies the given tile.
func (r *Roster) Occupied(pos geom.Vector2) bool {
	u, ok := r.At(pos)
	return ok && u.IsAlive()
}

// Move updates the roster's tile index to reflect a unit's new position.
// The caller is responsible for updating the unit's own Movement
// component.
func (r *Roster) Move(id ID, to geom.Vector2) error {
	u, ok := r.units[id]
	if !ok {
		return errs.Newf(errs.CodeInvariantViolation, "unknown unit %s", id)
	}
	if occupant, ok := r.byTile[to]; ok && occupant != id {
		return errs.Newf(errs.CodeInvariantViolation, "tile %s already occupied by %s", to, occupant)
	}
	delete(r.byTile, u.Position())
	r.byTile[to] = id
	return nil
}

// All returns every unit in the roster, in no particular order. Callers
// needing deterministic order should sort by ID.
func (r *Roster) All() []*Unit {
	out := make([]*Unit, 0, len(r.units))
	for _, u := range r.units {
		out = append(out, u)
	}
	return out
}

// Living returns every unit in the roster whose Health component reports
// alive.
func (r *Roster) Living() []*Unit {
	out := make([]*Unit, 0, len(r.units))
	for _, u := range r.units {
		if u.IsAlive() {
			out = append(out, u)
		}
	}
	return out
}

// Team returns every living unit belonging to the given team.
func (r *Roster) Team(team Team) []*Unit {
	out := make([]*Unit, 0)
	for _, u := range r.units {
		if u.IsAlive() && u.Actor().Team == team {
			out = append(out, u)
		}
	}
	return out
}
