package leveler

import "testing"

func TestBlend(t *testing.T) {
	states := []GainState{
		{Gain: 2, PreviousGain: 1},
		{Gain: 4, PreviousGain: 3},
		{Gain: 9, PreviousGain: 9},
	}

	tests := []struct {
		name     string
		active   []bool
		gain     float64
		previous float64
	}{
		{"all", []bool{true, true, true}, 5, 13.0 / 3},
		{"first two", []bool{true, true, false}, 3, 2},
		{"third only", []bool{false, false, true}, 9, 9},
		{"none", []bool{false, false, false}, 1, 1},
		{"short mask", []bool{false, true}, 4, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gain, previous := Blend(states, tt.active)
			if gain != tt.gain || previous != tt.previous {
				t.Fatalf("Blend = %v, %v, want %v, %v", gain, previous, tt.gain, tt.previous)
			}
		})
	}
}
