package compiler

import (
	"runtime"

	"github.com/jakoblorz/go-factory/internal/models"
)

// DefaultCC is the compiler driver used when none is configured.
const DefaultCC = "gcc"

// Host describes the platform conventions of the build machine.
type Host struct {
	// CC is the compiler driver used for compiling and linking
	CC string

	// ObjectExt and ExeExt include the leading dot. ExeExt is never empty:
	// <target>/<fixed> already names the project's object directory
	ObjectExt string
	ExeExt    string

	// Libraries maps platform libraries to linker names; a missing entry
	// means the host needs no library for it
	Libraries map[models.Stdlib]string
}

// HostFor returns the conventions of goos.
func HostFor(goos string) Host {
	host := Host{
		CC:        DefaultCC,
		ObjectExt: ".o",
		ExeExt:    ".exe",
		Libraries: map[models.Stdlib]string{
			models.StdlibThreads: "pthread",
			models.StdlibMath:    "m",
		},
	}
	if goos == "windows" {
		host.Libraries[models.StdlibSockets] = "ws2_32"
	}
	return host
}

// DefaultHost returns the conventions of the running platform.
func DefaultHost() Host {
	return HostFor(runtime.GOOS)
}

// WithCC returns a copy of h using cc as the compiler driver.
func (h Host) WithCC(cc string) Host {
	if cc != "" {
		h.CC = cc
	}
	return h
}

// LinkFlags maps mask to -l flags in table order, skipping libraries the
// host does not need.
func (h Host) LinkFlags(mask models.StdlibMask) Flags {
	var flags Flags
	for _, lib := range mask.Libraries() {
		if name, ok := h.Libraries[lib]; ok && name != "" {
			flags = append(flags, "-l"+name)
		}
	}
	return flags
}
