// Package workspace resolves swipe directions into workspace switch
// commands. The single-character workspace namespace (1-9, A-Z) is arranged
// on a fixed ring, and Next/Previous walk the ring skipping names the
// daemon does not consider eligible.
package workspace

import "strings"

// Table is a fixed ordered ring of normalized workspace names. It is built
// once at startup and read-only afterwards.
type Table struct {
	names []string
	index map[string]int
}

func newTable(names []string) *Table {
	index := make(map[string]int, len(names))
	for i, name := range names {
		index[name] = i
	}
	return &Table{names: names, index: index}
}

// StandardTable orders workspaces numerically then alphabetically:
// 1-9 followed by A-Z.
func StandardTable() *Table {
	names := make([]string, 0, 35)
	for ch := '1'; ch <= '9'; ch++ {
		names = append(names, string(ch))
	}
	for ch := 'A'; ch <= 'Z'; ch++ {
		names = append(names, string(ch))
	}
	return newTable(names)
}

// KeyboardTable orders the alphabetic workspaces by physical keyboard rows
// instead of alphabetically, so swiping walks the keys left to right.
func KeyboardTable() *Table {
	names := make([]string, 0, 35)
	for ch := '1'; ch <= '9'; ch++ {
		names = append(names, string(ch))
	}
	for _, row := range []string{"QWERTYUIOP", "ASDFGHJKL", "ZXCVBNM"} {
		for _, ch := range row {
			names = append(names, string(ch))
		}
	}
	return newTable(names)
}

// Len returns the ring size.
func (t *Table) Len() int {
	return len(t.names)
}

// At returns the name at position i.
func (t *Table) At(i int) string {
	return t.names[i]
}

// Locate returns the position of a normalized name on the ring.
func (t *Table) Locate(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// Normalize canonicalizes a workspace name as reported by the daemon.
func Normalize(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// ParseList normalizes the daemon's line-per-workspace output into a set.
func ParseList(out string) map[string]bool {
	set := make(map[string]bool)
	for _, line := range strings.Split(out, "\n") {
		if name := Normalize(line); name != "" {
			set[name] = true
		}
	}
	return set
}
