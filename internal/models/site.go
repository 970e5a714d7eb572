package models

import "strconv"

// Site describes what the server serves and where it listens.
// It is resolved once at startup and never mutated afterwards.
type Site struct {
	Root            string // absolute directory served as static content
	DefaultDocument string // file name answered for "/"
	Port            int
}

// Addr returns the listen address on all interfaces, e.g. ":3000".
func (s Site) Addr() string {
	return ":" + strconv.Itoa(s.Port)
}
