package ui

// LevelMsg carries one reading from the audio goroutine.
type LevelMsg struct {
	// LoudnessL and LoudnessR are window loudness in dB.
	LoudnessL, LoudnessR float64
	// GainL and GainR are linear channel gains.
	GainL, GainR float64
	// Frames is the total number of frames processed so far.
	Frames int64
}

// DoneMsg ends the session. Err is nil on a clean end of stream.
type DoneMsg struct {
	Err error
}
