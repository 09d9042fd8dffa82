// Package monitor measures a stereo stream without altering it.
//
// A Monitor copies its input to its output and, once per interval, hands a
// (left, right) reading in dB to a report.Reporter: the RMS level of a
// rolling window, the sample peak since the previous reading, or the
// integrated loudness since the previous reading.
package monitor
