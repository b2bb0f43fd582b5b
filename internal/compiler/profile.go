// Package compiler renders compile and link invocations for the build
// profiles.
package compiler

import (
	"strings"

	"github.com/jakoblorz/go-factory/internal/models"
	"github.com/jakoblorz/go-factory/internal/toolchain"
)

const (
	TargetDebug   = "debug"
	TargetRelease = "release"
)

// DefaultTargets are built on every run unless narrowed.
var DefaultTargets = []string{TargetDebug, TargetRelease}

// Flags is an ordered list of command line tokens.
type Flags []string

// String joins the tokens with single spaces.
func (f Flags) String() string {
	return strings.Join(f, " ")
}

// Profile renders the commands of one build target.
type Profile interface {
	Name() string
	IncludeFlags(headers []string) Flags
	CompileCommand(source string, includes Flags, object string) toolchain.Command
	LinkCommand(objects []string, mask models.StdlibMask, exe string) toolchain.Command
}

// ForTarget returns the profile for name on the running host. Unknown names
// get the release profile.
func ForTarget(name string) Profile {
	return DefaultHost().ForTarget(name)
}

// ForTarget returns the profile for name on h.
func (h Host) ForTarget(name string) Profile {
	if name == TargetDebug {
		return &gccProfile{name: TargetDebug, host: h, codegen: "-g"}
	}
	return &gccProfile{name: TargetRelease, host: h, codegen: "-O3"}
}

type gccProfile struct {
	name    string
	host    Host
	codegen string
}

func (p *gccProfile) Name() string {
	return p.name
}

func (p *gccProfile) IncludeFlags(headers []string) Flags {
	flags := make(Flags, 0, len(headers))
	for _, h := range headers {
		flags = append(flags, "-I"+h)
	}
	return flags
}

func (p *gccProfile) CompileCommand(source string, includes Flags, object string) toolchain.Command {
	args := []string{source, "-c", p.codegen, "-Werror"}
	args = append(args, includes...)
	args = append(args, "-o", object)
	return toolchain.NewCommand(p.host.CC, args...)
}

func (p *gccProfile) LinkCommand(objects []string, mask models.StdlibMask, exe string) toolchain.Command {
	args := append([]string{}, objects...)
	args = append(args, p.host.LinkFlags(mask)...)
	args = append(args, "-o", exe)
	return toolchain.NewCommand(p.host.CC, args...)
}
