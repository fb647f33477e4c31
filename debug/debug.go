// Package debug holds debugging switches read from the environment.
package debug

import (
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Gather   bool
	Registry bool
	Decode   bool
}

var d *debug

func init() {
	d = &debug{}
	d.Gather = boolEnv("SCHEMAIR_DEBUG_GATHER")
	d.Registry = boolEnv("SCHEMAIR_DEBUG_REGISTRY")
	d.Decode = boolEnv("SCHEMAIR_DEBUG_DECODE")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Gather() bool {
	return d.Gather
}
func Registry() bool {
	return d.Registry
}
func Decode() bool {
	return d.Decode
}

func Logf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
}
