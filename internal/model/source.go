// Package model defines the data structures for mock usage scanning.
package model

// Path represents a file system path.
type Path string

// Options holds the user-facing scan configuration.
type Options struct {
	Root         Path
	Suffix       string
	SuitePattern string
	TestPattern  string
	MockPattern  string
}
