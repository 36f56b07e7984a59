package cpu

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

// Features reports the host CPU capabilities relevant to element copies.
type Features struct {
	Architecture string
	NumCPU       int
	HasSSE2      bool
	HasAVX       bool
	HasAVX2      bool
	HasAVX512    bool
	HasNEON      bool
}

// DetectFeatures reports the available CPU features for the current process.
func DetectFeatures() Features {
	return Features{
		Architecture: runtime.GOARCH,
		NumCPU:       runtime.NumCPU(),
		HasSSE2:      cpu.X86.HasSSE2,
		HasAVX:       cpu.X86.HasAVX,
		HasAVX2:      cpu.X86.HasAVX2,
		HasAVX512:    cpu.X86.HasAVX512,
		HasNEON:      cpu.ARM64.HasASIMD,
	}
}

// Names returns the names of the supported features, for display.
func (f Features) Names() []string {
	var names []string
	for _, feat := range []struct {
		name string
		ok   bool
	}{
		{"sse2", f.HasSSE2},
		{"avx", f.HasAVX},
		{"avx2", f.HasAVX2},
		{"avx512", f.HasAVX512},
		{"neon", f.HasNEON},
	} {
		if feat.ok {
			names = append(names, feat.name)
		}
	}
	return names
}
