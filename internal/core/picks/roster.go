// Copyright (c) 2026 Fantasy Fight League. All rights reserved.
// Author: dev@fantasyfightleague.com

package picks

import (
	"context"
	"sort"
	"sync"

	"github.com/fantasyfightleague/fflcli/internal/core/events"
	"github.com/fantasyfightleague/fflcli/internal/platform/apperr"
	"github.com/fantasyfightleague/fflcli/pkg/slice"
)

// Typed rejection reasons for roster mutations. Each is returned without
// mutating the roster.
var (
	ErrAlreadySelected    = apperr.Validation("That fighter is already in your picks")
	ErrRosterFull         = apperr.Validation("You have reached the maximum number of fighters")
	ErrInsufficientBudget = apperr.Validation("You do not have enough budget left for that fighter")
	ErrRosterInvalid      = apperr.Validation("Check your picks before saving")
	ErrSaveInFlight       = apperr.Validation("A save is already in progress")
)

// Saver submits a finished roster. Implemented by [*Client]; tests inject
// fakes.
type Saver interface {
	Save(ctx context.Context, input SaveInput) (*Pick, error)
}

// Roster is the in-progress fighter selection for one (league, event) pair.
//
// Mutating operations re-validate the invariants before touching state:
// total cost never exceeds the budget, size never exceeds the maximum, and
// fighter identifiers never repeat. The baseline snapshot taken at load and
// after each successful save drives change detection.
type Roster struct {
	leagueID int64
	eventID  int64

	budget  int
	minSize int
	maxSize int

	saver Saver

	mu       sync.Mutex
	selected []events.Fighter
	baseline []int64
	saving   bool
}

// NewRoster creates an empty roster with the league's constraints.
func NewRoster(leagueID, eventID int64, budget, minSize, maxSize int, saver Saver) *Roster {
	return &Roster{
		leagueID: leagueID,
		eventID:  eventID,
		budget:   budget,
		minSize:  minSize,
		maxSize:  maxSize,
		saver:    saver,
		baseline: []int64{},
	}
}

// Hydrate loads a previously saved pick, matching its fighter identifiers
// against the event's available fighters, and resets the change baseline.
// A nil pick leaves the roster empty.
func (roster *Roster) Hydrate(saved *Pick, available []events.Fighter) {
	roster.mu.Lock()
	defer roster.mu.Unlock()

	roster.selected = nil
	if saved != nil {
		wanted := make(map[int64]bool, len(saved.SelectedFighters))
		for _, fighter := range saved.SelectedFighters {
			wanted[fighter.ID] = true
		}
		roster.selected = slice.Filter(available, func(f events.Fighter) bool {
			return wanted[f.ID]
		})
	}

	roster.baseline = sortedIDs(roster.selected)
}

// # Mutations

/*
Add appends a fighter after re-validating every invariant.

Returns:
  - error: ErrAlreadySelected, ErrRosterFull, or ErrInsufficientBudget;
    nil when the fighter was appended
*/
func (roster *Roster) Add(fighter events.Fighter) error {
	roster.mu.Lock()
	defer roster.mu.Unlock()

	if roster.isSelected(fighter.ID) {
		return ErrAlreadySelected
	}
	if len(roster.selected) >= roster.maxSize {
		return ErrRosterFull
	}
	if fighter.Price > roster.remaining() {
		return ErrInsufficientBudget
	}

	roster.selected = append(roster.selected, fighter)
	return nil
}

// Remove drops a fighter by identifier. Removing an unselected fighter is
// a no-op.
func (roster *Roster) Remove(fighterID int64) {
	roster.mu.Lock()
	defer roster.mu.Unlock()

	roster.selected = slice.Filter(roster.selected, func(f events.Fighter) bool {
		return f.ID != fighterID
	})
}

// Toggle adds the fighter when absent and removes it when present.
func (roster *Roster) Toggle(fighter events.Fighter) error {
	roster.mu.Lock()
	selected := roster.isSelected(fighter.ID)
	roster.mu.Unlock()

	if selected {
		roster.Remove(fighter.ID)
		return nil
	}
	return roster.Add(fighter)
}

// # Derived State

// Selected returns a copy of the current selection, in pick order.
func (roster *Roster) Selected() []events.Fighter {
	roster.mu.Lock()
	defer roster.mu.Unlock()

	out := make([]events.Fighter, len(roster.selected))
	copy(out, roster.selected)
	return out
}

// Spent returns the total cost of the current selection.
func (roster *Roster) Spent() int {
	roster.mu.Lock()
	defer roster.mu.Unlock()
	return roster.spent()
}

// Remaining returns the unspent budget.
func (roster *Roster) Remaining() int {
	roster.mu.Lock()
	defer roster.mu.Unlock()
	return roster.remaining()
}

// IsSelected reports whether the fighter is currently picked.
func (roster *Roster) IsSelected(fighterID int64) bool {
	roster.mu.Lock()
	defer roster.mu.Unlock()
	return roster.isSelected(fighterID)
}

// CanAfford reports whether a fighter at the given cost fits the remaining
// budget. An already-selected fighter is always affordable.
func (roster *Roster) CanAfford(fighter events.Fighter) bool {
	roster.mu.Lock()
	defer roster.mu.Unlock()

	if roster.isSelected(fighter.ID) {
		return true
	}
	return fighter.Price <= roster.remaining()
}

// CanSave reports whether the roster may be submitted: size within the
// inclusive [min, max] bounds, cost within budget, and no save in flight.
func (roster *Roster) CanSave() bool {
	roster.mu.Lock()
	defer roster.mu.Unlock()
	return roster.canSave()
}

// HasChanges reports whether the selected identifier set differs from the
// baseline captured at the last load or successful save.
func (roster *Roster) HasChanges() bool {
	roster.mu.Lock()
	defer roster.mu.Unlock()

	current := sortedIDs(roster.selected)
	if len(current) != len(roster.baseline) {
		return true
	}
	for i := range current {
		if current[i] != roster.baseline[i] {
			return true
		}
	}
	return false
}

// # Submission

/*
Save submits the roster for its (league, event) pair.

Description: Refuses invalid rosters locally and guards against double
submission with a busy flag. On success the change baseline advances to the
saved selection; on failure the in-progress edits are left untouched.

Returns:
  - *Pick: the saved roster
  - error: ErrSaveInFlight, ErrRosterInvalid, or the backend's typed reason
*/
func (roster *Roster) Save(ctx context.Context) (*Pick, error) {
	roster.mu.Lock()
	if roster.saving {
		roster.mu.Unlock()
		return nil, ErrSaveInFlight
	}
	if !roster.canSave() {
		roster.mu.Unlock()
		return nil, ErrRosterInvalid
	}

	roster.saving = true
	input := SaveInput{
		LeagueID: roster.leagueID,
		EventID:  roster.eventID,
		FighterIDs: slice.Map(roster.selected, func(f events.Fighter) int64 {
			return f.ID
		}),
	}
	roster.mu.Unlock()

	saved, err := roster.saver.Save(ctx, input)

	roster.mu.Lock()
	defer roster.mu.Unlock()
	roster.saving = false

	if err != nil {
		return nil, err
	}

	roster.baseline = sortedIDs(roster.selected)
	return saved, nil
}

// # Internal (callers hold the lock)

func (roster *Roster) isSelected(fighterID int64) bool {
	for _, fighter := range roster.selected {
		if fighter.ID == fighterID {
			return true
		}
	}
	return false
}

func (roster *Roster) spent() int {
	return slice.Reduce(roster.selected, 0, func(total int, f events.Fighter) int {
		return total + f.Price
	})
}

func (roster *Roster) remaining() int {
	return roster.budget - roster.spent()
}

func (roster *Roster) canSave() bool {
	count := len(roster.selected)
	return count >= roster.minSize &&
		count <= roster.maxSize &&
		roster.spent() <= roster.budget &&
		!roster.saving
}

func sortedIDs(fighters []events.Fighter) []int64 {
	ids := slice.Map(fighters, func(f events.Fighter) int64 { return f.ID })
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
