package manager

import (
	"context"

	"github.com/pfassina/grimdark/action"
	"github.com/pfassina/grimdark/events"
	"github.com/pfassina/grimdark/geom"
	"github.com/pfassina/grimdark/pathing"
	"github.com/pfassina/grimdark/phase"
	"github.com/pfassina/grimdark/state"
	"github.com/pfassina/grimdark/unit"
)

// SelectionManager owns cursor position, the reachable set, and a
// snapshot of the actor's pre-activation position for cancellation
// (spec.md §4.6).
type SelectionManager struct {
	gs *state.GameState

	activeUnit unit.ID
	cursor     geom.Vector2
	reachable  map[geom.Vector2]int

	preMovePosition geom.Vector2
	preMovePoints   int
	committed       bool
}

// NewSelectionManager builds a SelectionManager bound to gs and
// subscribes it to BattlePhaseChanged: a Cancel input out of
// ActionSelection resolves (per phase/phase.go's transition table) back
// to UnitMoving, at which point the pre-activation snapshot must be
// restored (spec.md §4.6). Managers never hold a direct reference to one
// another; the event bus is the sole integration seam (spec.md §9).
func NewSelectionManager(gs *state.GameState) *SelectionManager {
	sm := &SelectionManager{gs: gs}
	events.BattlePhaseChangedTopic.On(gs.Bus).Subscribe(0, func(ctx context.Context, evt events.BattlePhaseChangedEvent) error {
		if evt.From == string(phase.ActionSelection) && evt.To == string(phase.UnitMoving) {
			return sm.Cancel(ctx)
		}
		return nil
	})
	return sm
}

// BeginActivation snapshots actor's pre-move state and computes its
// reachable set, called when a unit's activation starts.
func (sm *SelectionManager) BeginActivation(actorID unit.ID) {
	u, ok := sm.gs.Roster.Get(actorID)
	if !ok {
		return
	}
	mv := u.Movement()
	sm.activeUnit = actorID
	sm.cursor = mv.Position
	sm.preMovePosition = mv.Position
	sm.preMovePoints = mv.MovementPoints
	sm.committed = false
	sm.reachable = pathing.Reachable(sm.gs.Map, sm.gs.Roster, mv.Position, mv.MovementPoints, actorID)
}

// MoveCursor shifts the cursor by (dx, dy), clamped to the reachable set
// computed at BeginActivation: a shift onto a tile outside that set is
// ignored, whatever the current phase (spec.md §4.6's clamp rule).
// Returns the resulting cursor position.
func (sm *SelectionManager) MoveCursor(dx, dy int) geom.Vector2 {
	candidate := geom.Vector2{X: sm.cursor.X + dx, Y: sm.cursor.Y + dy}
	if _, ok := sm.reachable[candidate]; ok {
		sm.cursor = candidate
	}
	return sm.cursor
}

// Cursor returns the current cursor position.
func (sm *SelectionManager) Cursor() geom.Vector2 { return sm.cursor }

// Reachable returns the reachable-tile set computed at BeginActivation.
func (sm *SelectionManager) Reachable() map[geom.Vector2]int { return sm.reachable }

// MarkCommitted records that the Move action has executed, so Cancel
// knows whether to emit a reversing UnitMoved.
func (sm *SelectionManager) MarkCommitted() { sm.committed = true }

// Committed reports whether the active unit's move has been executed
// this activation.
func (sm *SelectionManager) Committed() bool { return sm.committed }

// PreMoveSnapshot returns the position and movement points to restore on
// cancel.
func (sm *SelectionManager) PreMoveSnapshot() (geom.Vector2, int) {
	return sm.preMovePosition, sm.preMovePoints
}

// ConfirmMove executes action.Move against the current cursor tile for
// the active unit and marks the activation committed on success, so a
// later Cancel knows a reversing UnitMoved is owed.
func (sm *SelectionManager) ConfirmMove(ctx context.Context, env action.Env) (action.Result, error) {
	u, ok := sm.gs.Roster.Get(sm.activeUnit)
	if !ok {
		return action.Result{}, nil
	}
	mv := action.Move{}
	tgt := action.Target{Tile: sm.cursor}
	v := mv.Validate(u, tgt, env)
	if !v.OK() {
		return action.Result{}, nil
	}
	result, err := mv.Execute(ctx, u, tgt, env, v)
	if err != nil {
		return action.Result{}, err
	}
	sm.MarkCommitted()
	sm.reachable = pathing.Reachable(sm.gs.Map, sm.gs.Roster, u.Movement().Position, u.Movement().MovementPoints, sm.activeUnit)
	return result, nil
}

// Cancel restores the active unit's position and movement_points to the
// pre-activation snapshot. It emits a reversing UnitMoved only if the
// move had actually been committed; otherwise it is a no-op, suppressing
// the event (spec.md §4.6).
func (sm *SelectionManager) Cancel(ctx context.Context) error {
	if !sm.committed {
		return nil
	}
	u, ok := sm.gs.Roster.Get(sm.activeUnit)
	if !ok {
		return nil
	}

	mv := u.Movement()
	from := mv.Position
	to := sm.preMovePosition

	if err := sm.gs.Roster.Move(sm.activeUnit, to); err != nil {
		return err
	}
	mv.Position = to
	mv.MovementPoints = sm.preMovePoints
	u.SetMovement(mv)

	sm.cursor = to
	sm.committed = false
	sm.reachable = pathing.Reachable(sm.gs.Map, sm.gs.Roster, to, sm.preMovePoints, sm.activeUnit)

	return events.UnitMovedTopic.On(sm.gs.Bus).Publish(ctx, events.UnitMovedEvent{
		UnitID: string(sm.activeUnit),
		From:   from,
		To:     to,
		Path:   []geom.Vector2{from, to},
		Cost:   0,
	})
}
