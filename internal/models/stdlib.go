package models

import (
	"fmt"
	"strings"
)

// Stdlib identifies a platform library a project may request at link time.
type Stdlib int

const (
	StdlibThreads Stdlib = iota
	StdlibMath
	StdlibSockets
)

// StdlibNames is the fixed table of recognized names; the index is the mask bit.
var StdlibNames = []string{
	StdlibThreads: "threads",
	StdlibMath:    "math",
	StdlibSockets: "sockets",
}

// ParseStdlib looks a name up in the fixed table.
func ParseStdlib(name string) (Stdlib, error) {
	for i, known := range StdlibNames {
		if known == name {
			return Stdlib(i), nil
		}
	}
	return -1, fmt.Errorf("unknown standard library: %s (must be %s)", name, strings.Join(StdlibNames, ", "))
}

// String returns the descriptor name of the library.
func (s Stdlib) String() string {
	if s < 0 || int(s) >= len(StdlibNames) {
		return fmt.Sprintf("stdlib(%d)", int(s))
	}
	return StdlibNames[s]
}

// StdlibMask is a bit set over the Stdlib table.
type StdlibMask uint32

// With returns the mask with lib's bit set.
func (m StdlibMask) With(lib Stdlib) StdlibMask {
	return m | 1<<uint(lib)
}

// Has reports whether lib's bit is set.
func (m StdlibMask) Has(lib Stdlib) bool {
	return m&(1<<uint(lib)) != 0
}

// Libraries lists the set libraries in table order.
func (m StdlibMask) Libraries() []Stdlib {
	var libs []Stdlib
	for i := range StdlibNames {
		if m.Has(Stdlib(i)) {
			libs = append(libs, Stdlib(i))
		}
	}
	return libs
}

// Names lists the descriptor names of the set libraries in table order.
func (m StdlibMask) Names() []string {
	libs := m.Libraries()
	names := make([]string, len(libs))
	for i, lib := range libs {
		names[i] = lib.String()
	}
	return names
}
