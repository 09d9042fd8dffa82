// Package report delivers periodic (left, right) loudness readings to
// diagnostic sinks: a console line, a daily log file and a UDP broadcast.
//
// Sinks never return errors to the caller. The first failure of a sink is
// logged through logrus and later failures are suppressed, so a full disk or
// an unreachable network cannot disturb audio processing. Wrap sinks in
// Async to move all I/O off the audio goroutine.
package report
