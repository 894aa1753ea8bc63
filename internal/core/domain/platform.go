// Package domain holds the pure types of the toolchain provisioner.
package domain

import "runtime"

// OS identifies the host operating-system family. The set is closed: the
// distribution server only ever distinguishes these families.
type OS int

const (
	// Linux covers every family the distribution server has no dedicated
	// build for.
	Linux OS = iota
	// Mac is the darwin family.
	Mac
	// Windows receives a bare executable instead of an archive.
	Windows
	// SunOS covers solaris and illumos hosts.
	SunOS
)

// String returns the canonical name of the OS family.
func (o OS) String() string {
	switch o {
	case Mac:
		return "mac"
	case Windows:
		return "windows"
	case SunOS:
		return "sunos"
	default:
		return "linux"
	}
}

// DistName returns the OS segment used in distribution file names.
// The server names its darwin and sunos builds after the kernel and serves
// the linux build to everything else. This table must not drift.
func (o OS) DistName() string {
	switch o {
	case Mac:
		return "darwin"
	case SunOS:
		return "sunos"
	default:
		return "linux"
	}
}

// Arch identifies the CPU word width the distribution server serves.
type Arch int

const (
	// X86 is the 32-bit distribution.
	X86 Arch = iota
	// X64 is the 64-bit distribution.
	X64
)

// String returns the architecture segment used in distribution file names.
func (a Arch) String() string {
	if a == X64 {
		return "x64"
	}
	return "x86"
}

// DetectOS resolves the host OS family from the Go runtime.
func DetectOS() OS {
	switch runtime.GOOS {
	case "darwin":
		return Mac
	case "windows":
		return Windows
	case "solaris", "illumos":
		return SunOS
	default:
		return Linux
	}
}

// DetectArch resolves the host CPU word width from the Go runtime.
func DetectArch() Arch {
	switch runtime.GOARCH {
	case "amd64", "arm64", "ppc64", "ppc64le", "mips64", "mips64le", "riscv64", "s390x", "loong64":
		return X64
	default:
		return X86
	}
}

// DetectPlatform resolves both host properties at once. Callers inject the
// result into the installer so tests can supply any combination.
func DetectPlatform() (OS, Arch) {
	return DetectOS(), DetectArch()
}
