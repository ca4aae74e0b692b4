// Package debug provides environment-switched tracing for docschema.
//
// Each area is enabled by setting its variable to a true value
// (strconv.ParseBool):
//
//	DOCSCHEMA_DEBUG_LOAD      loader: files read, ids extracted, overlays
//	DOCSCHEMA_DEBUG_WALK      relationship/transient traversal steps
//	DOCSCHEMA_DEBUG_EXPAND    reference expansion
//	DOCSCHEMA_DEBUG_REGISTRY  registry mutations and reference resolution
package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Load     bool
	Walk     bool
	Expand   bool
	Registry bool
}

var d *debug

func init() {
	d = &debug{}
	d.Load = boolEnv("DOCSCHEMA_DEBUG_LOAD")
	d.Walk = boolEnv("DOCSCHEMA_DEBUG_WALK")
	d.Expand = boolEnv("DOCSCHEMA_DEBUG_EXPAND")
	d.Registry = boolEnv("DOCSCHEMA_DEBUG_REGISTRY")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Load() bool {
	return d.Load
}
func Walk() bool {
	return d.Walk
}
func Expand() bool {
	return d.Expand
}
func Registry() bool {
	return d.Registry
}
