// Package runtime ships the JavaScript module registry that compiled output
// can be bundled with.
package runtime

import (
	_ "embed"
	"strings"
)

// Marker is the placeholder in the prelude replaced by compiled output.
const Marker = "<modules>"

//go:embed prelude.js
var prelude string

// Prelude returns the raw runtime template, marker included.
func Prelude() string {
	return prelude
}

// Bundle places compiled at the marker position of the runtime template.
func Bundle(compiled string) string {
	return strings.Replace(prelude, Marker, compiled, 1)
}
