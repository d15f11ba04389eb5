// SPDX-License-Identifier: MPL-2.0

package job

import (
	"errors"
	"testing"
)

func TestStateIsValid(t *testing.T) {
	t.Parallel()

	valid := []State{StateNotStarted, StateBlocked, StateRunning, StateSucceeded, StateFailed}
	for _, s := range valid {
		if ok, errs := s.IsValid(); !ok || len(errs) > 0 {
			t.Errorf("IsValid(%q) = %v, %v, want true", s, ok, errs)
		}
	}

	ok, errs := State("paused").IsValid()
	if ok {
		t.Error("IsValid() = true for unknown state")
	}
	if len(errs) != 1 || !errors.Is(errs[0], ErrInvalidState) {
		t.Errorf("errs = %v, want one ErrInvalidState", errs)
	}
}

func TestStateIsTerminal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		state State
		want  bool
	}{
		{state: StateNotStarted, want: false},
		{state: StateRunning, want: false},
		{state: StateBlocked, want: true},
		{state: StateSucceeded, want: true},
		{state: StateFailed, want: true},
	}

	for _, tt := range tests {
		if got := tt.state.IsTerminal(); got != tt.want {
			t.Errorf("IsTerminal(%q) = %v, want %v", tt.state, got, tt.want)
		}
	}
}
