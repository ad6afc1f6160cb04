package hardware

import (
	"fmt"
	"runtime"

	"github.com/klauspost/cpuid/v2"
)

// DefaultThreads is the number of physical cores, or runtime.NumCPU when
// the topology is unknown.
func DefaultThreads() int {
	if n := cpuid.CPU.PhysicalCores; n > 0 {
		return n
	}
	return runtime.NumCPU()
}

func Describe() string {
	return fmt.Sprintf("%v physicalCores=%v logicalCores=%v avx2=%v fma3=%v",
		cpuid.CPU.BrandName,
		cpuid.CPU.PhysicalCores,
		cpuid.CPU.LogicalCores,
		cpuid.CPU.Supports(cpuid.AVX2),
		cpuid.CPU.Supports(cpuid.FMA3))
}
