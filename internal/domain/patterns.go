// Package domain contains the mock usage scanning workflow and logic.
package domain

import (
	"errors"
	"fmt"
	"regexp"

	m "mockscan.dev/pkg/mockscan/internal/model"
)

// Default line patterns recognise call-style suite("name", ...) and
// test("name", ...) blocks and TypeMoq-style Mock.ofType mocks.
const (
	DefaultRoot         = "."
	DefaultSuffix       = "ts"
	DefaultSuitePattern = `^[ \t]*suite\(['"](.*)['"],`
	DefaultTestPattern  = `^[ \t]*test\(['"](.*)['"],`
	DefaultMockPattern  = `\.Mock\.ofType`
)

// PatternKind names which of the three configured patterns an error refers to.
type PatternKind string

// Available PatternKind values.
const (
	PatternSuite PatternKind = "suite"
	PatternTest  PatternKind = "test"
	PatternMock  PatternKind = "mock"
)

// ErrMissingCaptureGroup is wrapped by InvalidPatternError when a suite or test
// pattern has nothing to extract a name from.
var ErrMissingCaptureGroup = errors.New("pattern must have a capture group for the name")

// InvalidPatternError reports a pattern that could not be used.
type InvalidPatternError struct {
	Kind    PatternKind
	Pattern string
	Err     error
}

func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("Invalid %s pattern %s: %v", e.Kind, e.Pattern, e.Err)
}

func (e *InvalidPatternError) Unwrap() error {
	return e.Err
}

// Patterns holds the compiled line matchers used by the scanner.
type Patterns struct {
	Suite *regexp.Regexp
	Test  *regexp.Regexp
	Mock  *regexp.Regexp
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() m.Options {
	return m.Options{
		Root:         DefaultRoot,
		Suffix:       DefaultSuffix,
		SuitePattern: DefaultSuitePattern,
		TestPattern:  DefaultTestPattern,
		MockPattern:  DefaultMockPattern,
	}
}

// CompilePatterns compiles the suite, test and mock patterns in that order and
// stops at the first failure.
func CompilePatterns(opts m.Options) (Patterns, error) {
	suite, err := compile(PatternSuite, opts.SuitePattern, true)
	if err != nil {
		return Patterns{}, err
	}

	test, err := compile(PatternTest, opts.TestPattern, true)
	if err != nil {
		return Patterns{}, err
	}

	mock, err := compile(PatternMock, opts.MockPattern, false)
	if err != nil {
		return Patterns{}, err
	}

	return Patterns{Suite: suite, Test: test, Mock: mock}, nil
}

func compile(kind PatternKind, pattern string, needsName bool) (*regexp.Regexp, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, &InvalidPatternError{Kind: kind, Pattern: pattern, Err: err}
	}

	if needsName && re.NumSubexp() < 1 {
		return nil, &InvalidPatternError{Kind: kind, Pattern: pattern, Err: ErrMissingCaptureGroup}
	}

	return re, nil
}
