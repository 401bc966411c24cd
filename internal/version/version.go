// Package version carries build metadata for the killzone binaries.
package version

import (
	"fmt"
	"strconv"

	"github.com/RichStephens/killzone/internal/constants"
)

// Service is the name reported by /api/version and used as the tracing
// service name.
const Service = constants.ServiceName

// These variables are overridden at build time using -ldflags, e.g.
//
//	-X github.com/RichStephens/killzone/internal/version.Version=v1.2.0
var (
	Version = "dev"
	Commit  = "none"
	Date    = ""
	Dirty   = "false"
)

// Info is the build metadata as served to clients.
type Info struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date,omitempty"`
	Dirty   bool   `json:"dirty"`
}

// Current parses the ldflags-injected values. An unparsable Dirty flag is
// reported as clean.
func Current() Info {
	dirty, _ := strconv.ParseBool(Dirty)
	return Info{
		Service: Service,
		Version: Version,
		Commit:  Commit,
		Date:    Date,
		Dirty:   dirty,
	}
}

// String renders a one-line description used in the startup log.
func (i Info) String() string {
	s := fmt.Sprintf("%s %s (%s)", i.Service, i.Version, i.Commit)
	if i.Dirty {
		s += " dirty"
	}
	return s
}
