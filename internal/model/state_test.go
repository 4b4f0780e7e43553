package model

import "testing"

func TestBehaviorState_String(t *testing.T) {
	tests := []struct {
		state BehaviorState
		want  string
	}{
		{StateIdle, "IDLE"},
		{StatePatrol, "PATROL"},
		{StateChase, "CHASE"},
		{StateAttack, "ATTACK"},
		{StateFlee, "FLEE"},
		{StateDead, "DEAD"},
		{BehaviorState(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.state.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBehaviorState_IsSpecial(t *testing.T) {
	if StatePatrol.IsSpecial() || StateIdle.IsSpecial() {
		t.Error("roaming states must not be special")
	}
	for _, s := range []BehaviorState{StateChase, StateAttack, StateFlee, StateDead} {
		if !s.IsSpecial() {
			t.Errorf("%v should be special", s)
		}
	}
}
