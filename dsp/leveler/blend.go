package leveler

// Blend averages Gain and PreviousGain over the states whose active flag is
// set. With no active state it returns unity for both.
func Blend(states []GainState, active []bool) (gain, previousGain float64) {
	n := 0

	for i := range states {
		if i >= len(active) || !active[i] {
			continue
		}

		gain += states[i].Gain
		previousGain += states[i].PreviousGain
		n++
	}

	if n == 0 {
		return 1, 1
	}

	return gain / float64(n), previousGain / float64(n)
}
