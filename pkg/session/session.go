// Package session owns the mutable state of one running game: the house,
// the two players, whose turn it is, the one-slot undo record, and the
// heart-to-heart allowance. All house mutation goes through the action
// methods here; each enforces its preconditions and returns a sentinel
// error on refusal, leaving state untouched.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mit2nil/decorum/pkg/catalog"
	"github.com/mit2nil/decorum/pkg/condition"
	"github.com/mit2nil/decorum/pkg/house"
)

// MaxHeartToHearts is the per-game limit on open discussions.
const MaxHeartToHearts = 3

var (
	ErrActionTaken    = errors.New("action already taken this turn")
	ErrNoRoomSelected = errors.New("no room selected")
	ErrNoSlotSelected = errors.New("no slot selected")
	ErrSlotOccupied   = errors.New("slot already holds an object")
	ErrSlotEmpty      = errors.New("slot is empty")
	ErrNothingToUndo  = errors.New("nothing to undo")
	ErrNoHeartsLeft   = errors.New("all heart-to-hearts used")
	ErrInvalidRoom    = errors.New("invalid room")
	ErrInvalidPlayer  = errors.New("invalid player")
)

// PendingKind tags the undo record variant.
type PendingKind string

const (
	PendingSetSlot PendingKind = "set_slot"
	PendingPaint   PendingKind = "paint"
)

// PendingAction captures the value an action overwrote. At most one lives
// at a time; it is cleared on undo or turn end.
type PendingAction struct {
	Kind       PendingKind        `json:"kind"`
	Room       int                `json:"room"`
	Slot       catalog.ObjectType `json:"slot,omitempty"`
	PrevObject *house.DecorObject `json:"prev_object,omitempty"`
	PrevColor  catalog.Color      `json:"prev_color,omitempty"`
}

// Player is one of the two participants. Conditions are set at game start
// and read-only afterwards.
type Player struct {
	Index      int                   `json:"index"`
	Name       string                `json:"name"`
	Conditions []condition.Condition `json:"conditions"`
}

// Session is the state of one game.
type Session struct {
	ID                uuid.UUID          `json:"id"`
	Players           [2]Player          `json:"players"`
	House             *house.House       `json:"house"`
	CurrentPlayer     int                `json:"current_player"`
	ActionTaken       bool               `json:"action_taken"`
	Pending           *PendingAction     `json:"pending,omitempty"`
	SelectedRoom      int                `json:"selected_room"` // -1 when none
	SelectedSlot      catalog.ObjectType `json:"selected_slot,omitempty"`
	HeartToHeartsUsed int                `json:"heart_to_hearts_used"`
	TurnCount         int                `json:"turn_count"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
}

// New starts a session on the given house. The house is typically a fresh
// default one, or one prepared by the scenario loader.
func New(h *house.House, p1Name, p2Name string, p1Conds, p2Conds []condition.Condition) *Session {
	if p1Name == "" {
		p1Name = "Player 1"
	}
	if p2Name == "" {
		p2Name = "Player 2"
	}
	now := time.Now()
	return &Session{
		ID: uuid.New(),
		Players: [2]Player{
			{Index: 0, Name: p1Name, Conditions: p1Conds},
			{Index: 1, Name: p2Name, Conditions: p2Conds},
		},
		House:        h,
		SelectedRoom: -1,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// SelectRoom marks a room as the action target. Selection is pure: it
// never mutates the house, and it is only available before the turn's
// action has been taken.
func (s *Session) SelectRoom(idx int) error {
	if s.ActionTaken {
		return ErrActionTaken
	}
	if idx < 0 || idx >= catalog.RoomCount {
		return ErrInvalidRoom
	}
	s.SelectedRoom = idx
	s.SelectedSlot = ""
	return nil
}

// SelectSlot marks a room's typed slot as the action target.
func (s *Session) SelectSlot(idx int, typ catalog.ObjectType) error {
	if err := s.SelectRoom(idx); err != nil {
		return err
	}
	s.SelectedSlot = typ
	return nil
}

// Deselect discards the in-flight selection. Nothing was committed, so
// nothing is rolled back.
func (s *Session) Deselect() {
	s.SelectedRoom = -1
	s.SelectedSlot = ""
}

// AddObject places the unique valid object of the given style into the
// selected slot, which must be empty.
func (s *Session) AddObject(style catalog.Style) error {
	room, typ, err := s.selectedSlot()
	if err != nil {
		return err
	}
	if !s.House.Room(room).SlotEmpty(typ) {
		return ErrSlotOccupied
	}
	obj, err := house.NewObject(typ, style)
	if err != nil {
		return fmt.Errorf("add object: %w", err)
	}
	s.commitSlot(room, typ, &obj)
	return nil
}

// RemoveObject clears the selected slot, which must be occupied.
func (s *Session) RemoveObject() error {
	room, typ, err := s.selectedSlot()
	if err != nil {
		return err
	}
	if s.House.Room(room).SlotEmpty(typ) {
		return ErrSlotEmpty
	}
	s.commitSlot(room, typ, nil)
	return nil
}

// SwapObject replaces the object in the selected slot, which must be
// occupied, with the valid object of the given style.
func (s *Session) SwapObject(style catalog.Style) error {
	room, typ, err := s.selectedSlot()
	if err != nil {
		return err
	}
	if s.House.Room(room).SlotEmpty(typ) {
		return ErrSlotEmpty
	}
	obj, err := house.NewObject(typ, style)
	if err != nil {
		return fmt.Errorf("swap object: %w", err)
	}
	s.commitSlot(room, typ, &obj)
	return nil
}

// PaintWalls repaints the selected room. A slot selection is irrelevant.
func (s *Session) PaintWalls(color catalog.Color) error {
	if s.ActionTaken {
		return ErrActionTaken
	}
	if s.SelectedRoom < 0 {
		return ErrNoRoomSelected
	}
	room := s.House.Room(s.SelectedRoom)
	s.Pending = &PendingAction{Kind: PendingPaint, Room: s.SelectedRoom, PrevColor: room.WallColor}
	room.WallColor = color
	s.finishAction()
	return nil
}

// Undo reverses the turn's action by restoring the captured prior value.
// Exactly one level; unavailable once the turn has ended.
func (s *Session) Undo() error {
	if !s.ActionTaken || s.Pending == nil {
		return ErrNothingToUndo
	}
	switch s.Pending.Kind {
	case PendingSetSlot:
		s.House.Room(s.Pending.Room).SetSlot(s.Pending.Slot, s.Pending.PrevObject)
	case PendingPaint:
		s.House.Room(s.Pending.Room).WallColor = s.Pending.PrevColor
	}
	s.Pending = nil
	s.ActionTaken = false
	s.UpdatedAt = time.Now()
	return nil
}

// EndTurn passes play to the other player. Always allowed: ending without
// an action is a pass.
func (s *Session) EndTurn() {
	s.CurrentPlayer = 1 - s.CurrentPlayer
	s.TurnCount++
	s.ActionTaken = false
	s.Pending = nil
	s.Deselect()
	s.UpdatedAt = time.Now()
}

// Round is the current round number; a round is one turn per player.
func (s *Session) Round() int {
	return s.TurnCount/2 + 1
}

// HeartToHeart spends one open-discussion allowance. Independent of turn
// state; refused once the limit is reached.
func (s *Session) HeartToHeart() error {
	if s.HeartToHeartsUsed >= MaxHeartToHearts {
		return ErrNoHeartsLeft
	}
	s.HeartToHeartsUsed++
	s.UpdatedAt = time.Now()
	return nil
}

// HeartsLeft reports the remaining heart-to-heart allowance.
func (s *Session) HeartsLeft() int {
	return MaxHeartToHearts - s.HeartToHeartsUsed
}

// CheckConditions evaluates one player's secret conditions against the
// current house. A query, not a transition: the game has no automatic end
// state.
func (s *Session) CheckConditions(player int) ([]condition.Result, error) {
	if player < 0 || player > 1 {
		return nil, ErrInvalidPlayer
	}
	return condition.EvaluateAll(s.Players[player].Conditions, s.House), nil
}

// AllConditionsMet reports whether every condition of both players holds.
func (s *Session) AllConditionsMet() bool {
	for i := range s.Players {
		for _, c := range s.Players[i].Conditions {
			if !c.Evaluate(s.House) {
				return false
			}
		}
	}
	return true
}

func (s *Session) selectedSlot() (int, catalog.ObjectType, error) {
	if s.ActionTaken {
		return 0, "", ErrActionTaken
	}
	if s.SelectedRoom < 0 {
		return 0, "", ErrNoRoomSelected
	}
	if s.SelectedSlot == "" {
		return 0, "", ErrNoSlotSelected
	}
	return s.SelectedRoom, s.SelectedSlot, nil
}

func (s *Session) commitSlot(room int, typ catalog.ObjectType, obj *house.DecorObject) {
	r := s.House.Room(room)
	s.Pending = &PendingAction{Kind: PendingSetSlot, Room: room, Slot: typ, PrevObject: r.Slot(typ)}
	r.SetSlot(typ, obj)
	s.finishAction()
}

func (s *Session) finishAction() {
	s.ActionTaken = true
	s.Deselect()
	s.UpdatedAt = time.Now()
}
