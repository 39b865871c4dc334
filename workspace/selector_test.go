package workspace

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aeroswipe/aeroswipe/aerospace"
)

type fakeSettings struct {
	wrap     bool
	skip     bool
	keyboard bool
}

func (s *fakeSettings) WrapAround() bool       { return s.wrap }
func (s *fakeSettings) SkipEmpty() bool        { return s.skip }
func (s *fakeSettings) KeyboardOrdering() bool { return s.keyboard }

// fakeCommander answers canned responses per args signature and records
// every call in order.
type fakeCommander struct {
	responses map[string]string
	errs      map[string]error
	calls     []string
}

func (f *fakeCommander) Send(args []string, stdin string) (string, error) {
	key := strings.Join(args, " ")
	f.calls = append(f.calls, key)
	if err, ok := f.errs[key]; ok {
		return "", err
	}
	return f.responses[key], nil
}

const (
	queryCurrent  = "list-workspaces --monitor mouse --visible"
	queryAll      = "list-workspaces --all"
	queryNonEmpty = "list-workspaces --monitor mouse --empty no"
)

func newFake(current string, all []string) *fakeCommander {
	return &fakeCommander{
		responses: map[string]string{
			queryCurrent: current,
			queryAll:     strings.Join(all, "\n"),
		},
		errs: map[string]error{},
	}
}

func TestSwitch_NextSelectsFollowingEligible(t *testing.T) {
	fake := newFake("1", []string{"1", "2", "5"})
	s := NewSelector(fake, &fakeSettings{wrap: true})

	require.NoError(t, s.Switch(Next))
	assert.Equal(t, "workspace 2", fake.calls[len(fake.calls)-1])
}

func TestSwitch_NextSkipsIneligibleNames(t *testing.T) {
	fake := newFake("2", []string{"2", "7"})
	s := NewSelector(fake, &fakeSettings{wrap: true})

	require.NoError(t, s.Switch(Next))
	assert.Equal(t, "workspace 7", fake.calls[len(fake.calls)-1])
}

func TestSwitch_PreviousWalksBackward(t *testing.T) {
	fake := newFake("7", []string{"2", "7"})
	s := NewSelector(fake, &fakeSettings{wrap: true})

	require.NoError(t, s.Switch(Previous))
	assert.Equal(t, "workspace 2", fake.calls[len(fake.calls)-1])
}

func TestSwitch_NoWrapAtBoundary(t *testing.T) {
	fake := newFake("Z", []string{"Z"})
	s := NewSelector(fake, &fakeSettings{wrap: false})

	err := s.Switch(Next)
	require.ErrorIs(t, err, ErrWorkspaceNotFound)

	for _, call := range fake.calls {
		assert.NotContains(t, call, "workspace Z", "no mutating command after a failed resolve")
	}
}

func TestSwitch_WrapsPastBoundary(t *testing.T) {
	fake := newFake("Z", []string{"1", "Z"})
	s := NewSelector(fake, &fakeSettings{wrap: true})

	require.NoError(t, s.Switch(Next))
	assert.Equal(t, "workspace 1", fake.calls[len(fake.calls)-1])
}

func TestSwitch_WrapPreviousFromFirst(t *testing.T) {
	fake := newFake("1", []string{"1", "M"})
	s := NewSelector(fake, &fakeSettings{wrap: true})

	require.NoError(t, s.Switch(Previous))
	assert.Equal(t, "workspace M", fake.calls[len(fake.calls)-1])
}

func TestSwitch_SkipEmptyUsesNonEmptyQuery(t *testing.T) {
	fake := newFake("1", []string{"1", "2", "3"})
	fake.responses[queryNonEmpty] = "1\n3"
	s := NewSelector(fake, &fakeSettings{wrap: true, skip: true})

	require.NoError(t, s.Switch(Next))
	assert.Contains(t, fake.calls, queryNonEmpty)
	assert.Equal(t, "workspace 3", fake.calls[len(fake.calls)-1])
}

func TestSwitch_CurrentOutsideTableFallsBack(t *testing.T) {
	// daemon reports a name outside the 1-9/A-Z namespace; the selector
	// anchors on the first ring entry present in the eligible set
	fake := newFake("MAIL-2", []string{"3", "5"})
	s := NewSelector(fake, &fakeSettings{wrap: true})

	require.NoError(t, s.Switch(Next))
	assert.Equal(t, "workspace 5", fake.calls[len(fake.calls)-1])
}

func TestSwitch_NothingEligible(t *testing.T) {
	fake := newFake("MAIL-2", nil)
	s := NewSelector(fake, &fakeSettings{wrap: true})

	err := s.Switch(Next)
	require.ErrorIs(t, err, ErrWorkspaceNotFound)
}

func TestSwitch_QueryErrorShortCircuits(t *testing.T) {
	connErr := &aerospace.ConnectionError{}

	tests := []struct {
		name  string
		query string
	}{
		{"current query fails", queryCurrent},
		{"all query fails", queryAll},
		{"non-empty query fails", queryNonEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := newFake("1", []string{"1", "2"})
			fake.responses[queryNonEmpty] = "1\n2"
			fake.errs[tt.query] = connErr

			s := NewSelector(fake, &fakeSettings{wrap: true, skip: true})
			err := s.Switch(Next)

			var got *aerospace.ConnectionError
			require.ErrorAs(t, err, &got, "channel errors propagate unchanged")
			for _, call := range fake.calls {
				assert.False(t, strings.HasPrefix(call, "workspace "),
					"no mutating command after a failed query")
			}
		})
	}
}

func TestSwitch_KeyboardOrdering(t *testing.T) {
	// after 9 the keyboard ring continues with Q, not A
	fake := newFake("9", []string{"9", "A", "Q"})
	s := NewSelector(fake, &fakeSettings{wrap: true, keyboard: true})

	require.NoError(t, s.Switch(Next))
	assert.Equal(t, "workspace Q", fake.calls[len(fake.calls)-1])
}

func TestSwitch_NormalizesDaemonOutput(t *testing.T) {
	fake := newFake("  w \n", []string{" w ", "e"})
	s := NewSelector(fake, &fakeSettings{wrap: true, keyboard: true})

	require.NoError(t, s.Switch(Next))
	// keyboard ring: ... W E R ...
	assert.Equal(t, "workspace E", fake.calls[len(fake.calls)-1])
}
