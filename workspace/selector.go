package workspace

import (
	"errors"

	"github.com/aeroswipe/aeroswipe/utils"
)

// Direction of travel on the ordering ring.
type Direction int

const (
	Next Direction = iota
	Previous
)

func (d Direction) String() string {
	if d == Next {
		return "next"
	}
	return "previous"
}

func (d Direction) step() int {
	if d == Next {
		return 1
	}
	return -1
}

// ErrWorkspaceNotFound means no eligible navigation target exists in the
// requested direction.
var ErrWorkspaceNotFound = errors.New("workspace: no eligible workspace found")

// Commander is the slice of the aerospace client the selector needs.
type Commander interface {
	Send(args []string, stdin string) (string, error)
}

// Settings supplies the selector's tunables at call time.
type Settings interface {
	// WrapAround makes Next from the last eligible workspace land on the
	// first, and vice versa.
	WrapAround() bool

	// SkipEmpty restricts navigation targets to workspaces with windows.
	SkipEmpty() bool

	// KeyboardOrdering selects the keyboard-row ring over the standard one.
	KeyboardOrdering() bool
}

// Selector computes and issues workspace switches against the daemon.
type Selector struct {
	ch       Commander
	settings Settings

	standard *Table
	keyboard *Table
}

func NewSelector(ch Commander, settings Settings) *Selector {
	return &Selector{
		ch:       ch,
		settings: settings,
		standard: StandardTable(),
		keyboard: KeyboardTable(),
	}
}

func (s *Selector) table() *Table {
	if s.settings.KeyboardOrdering() {
		return s.keyboard
	}
	return s.standard
}

// Switch queries the daemon for the workspace under the pointer and the
// candidate set, walks the ordering ring in the given direction to the
// first eligible workspace, and switches to it. All read-only queries run
// before the mutating command, so a query failure never half-applies a
// switch. Daemon errors propagate unchanged.
func (s *Selector) Switch(direction Direction) error {
	out, err := s.ch.Send([]string{"list-workspaces", "--monitor", "mouse", "--visible"}, "")
	if err != nil {
		return err
	}
	current := Normalize(out)

	out, err = s.ch.Send([]string{"list-workspaces", "--all"}, "")
	if err != nil {
		return err
	}
	eligible := ParseList(out)

	if s.settings.SkipEmpty() {
		out, err = s.ch.Send([]string{"list-workspaces", "--monitor", "mouse", "--empty", "no"}, "")
		if err != nil {
			return err
		}
		eligible = ParseList(out)
	}

	target, err := s.resolve(current, eligible, direction)
	if err != nil {
		return err
	}

	utils.Verbose("switching workspace %s -> %s (%s)", current, target, direction)
	_, err = s.ch.Send([]string{"workspace", target}, "")
	return err
}

// resolve walks the ring from current toward direction and returns the
// first eligible candidate.
func (s *Selector) resolve(current string, eligible map[string]bool, direction Direction) (string, error) {
	table := s.table()

	start, ok := table.Locate(current)
	if !ok {
		// the daemon can report names outside the single-character
		// namespace; anchor on the first ring entry that is eligible
		start, ok = s.firstEligible(table, eligible)
		if !ok {
			return "", ErrWorkspaceNotFound
		}
	}

	n := table.Len()
	step := direction.step()

	if s.settings.WrapAround() {
		for i := 1; i < n; i++ {
			candidate := table.At(((start+step*i)%n + n) % n)
			if eligible[candidate] {
				return candidate, nil
			}
		}
		return "", ErrWorkspaceNotFound
	}

	for i := start + step; i >= 0 && i < n; i += step {
		if candidate := table.At(i); eligible[candidate] {
			return candidate, nil
		}
	}
	return "", ErrWorkspaceNotFound
}

func (s *Selector) firstEligible(table *Table, eligible map[string]bool) (int, bool) {
	for i := 0; i < table.Len(); i++ {
		if eligible[table.At(i)] {
			return i, true
		}
	}
	return 0, false
}
