// Package debug provides environment driven debug switches.
//
// Each switch is read once at startup from a DOCVAL_DEBUG_* variable
// holding a value accepted by strconv.ParseBool.
package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

type debug struct {
	Coerce bool
	JSON   bool
	Patch  bool
	Diff   bool
	Blob   bool
}

var d *debug

func init() {
	d = &debug{}
	d.Coerce = boolEnv("DOCVAL_DEBUG_COERCE")
	d.JSON = boolEnv("DOCVAL_DEBUG_JSON")
	d.Patch = boolEnv("DOCVAL_DEBUG_PATCH")
	d.Diff = boolEnv("DOCVAL_DEBUG_DIFF")
	d.Blob = boolEnv("DOCVAL_DEBUG_BLOB")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Coerce() bool {
	return d.Coerce
}
func JSON() bool {
	return d.JSON
}
func Patch() bool {
	return d.Patch
}
func Diff() bool {
	return d.Diff
}
func Blob() bool {
	return d.Blob
}

// Enable turns on a switch by name: coerce, json, patch, diff or blob. It
// is meant for program startup, before any switch is read.
func Enable(name string) error {
	switch strings.ToLower(name) {
	case "coerce":
		d.Coerce = true
	case "json":
		d.JSON = true
	case "patch":
		d.Patch = true
	case "diff":
		d.Diff = true
	case "blob":
		d.Blob = true
	default:
		return fmt.Errorf("unknown debug switch %q", name)
	}
	return nil
}

func LogAny(v any) {
	d, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", v)
		return
	}
	os.Stderr.Write(d)
}
