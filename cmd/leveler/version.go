package main

import (
	"os"
	"runtime"
	"strings"

	"github.com/cwbudde/algo-vecmath/cpu"
	"github.com/rapilodev/rms-leveler/internal/cli"
)

// VersionCmd prints version information.
type VersionCmd struct{}

// Run executes the command.
func (c *VersionCmd) Run(_ *Globals) error {
	cli.PrintVersion(os.Stdout, version,
		[2]string{"Go", runtime.Version()},
		[2]string{"Arch", runtime.GOARCH},
		[2]string{"SIMD", simdSummary(cpu.DetectFeatures())},
	)

	return nil
}

func simdSummary(f cpu.Features) string {
	var names []string

	for _, feature := range []struct {
		name string
		ok   bool
	}{
		{"SSE2", f.HasSSE2},
		{"AVX", f.HasAVX},
		{"AVX2", f.HasAVX2},
		{"AVX-512", f.HasAVX512},
		{"NEON", f.HasNEON},
	} {
		if feature.ok {
			names = append(names, feature.name)
		}
	}

	if len(names) == 0 {
		return "none"
	}

	return strings.Join(names, " ")
}
