package domain

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"mockscan.dev/pkg/mockscan/internal/adapter"
	m "mockscan.dev/pkg/mockscan/internal/model"
)

// FileReadError reports a file that could not be opened or read to the end.
// Line is the last line processed before the failure.
type FileReadError struct {
	File m.Path
	Line int
	Err  error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("Couldn't process file %s: %v at line %d", e.File, e.Err, e.Line)
}

func (e *FileReadError) Unwrap() error {
	return e.Err
}

// Scanner attributes mock occurrences in a single file to its tests.
type Scanner interface {
	// ScanFile returns the results emitted for path. On a read failure the
	// results emitted before the failing line are returned together with a
	// *FileReadError.
	ScanFile(ctx context.Context, path m.Path, patterns Patterns) ([]m.TestResult, error)
}

type scanner struct {
	adapter.SourceFSAdapter
}

// NewScanner creates a Scanner reading files through fsAdapter.
func NewScanner(fsAdapter adapter.SourceFSAdapter) Scanner {
	return &scanner{SourceFSAdapter: fsAdapter}
}

func (s *scanner) ScanFile(ctx context.Context, path m.Path, patterns Patterns) ([]m.TestResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := s.Open(path)
	if err != nil {
		return nil, &FileReadError{File: path, Err: err}
	}

	defer func() {
		if err := file.Close(); err != nil {
			slog.Warn("failed to close file", "path", path, "error", err)
		}
	}()

	return ScanLines(path, file, patterns)
}

// ScanLines runs the attribution state machine over every line of r.
func ScanLines(file m.Path, r io.Reader, patterns Patterns) ([]m.TestResult, error) {
	state := newScanState(file)
	reader := bufio.NewReader(r)

	for {
		line, err := reader.ReadString('\n')
		if len(line) > 0 {
			state.line++
			state.process(patterns, trimEOL(line))
		}

		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			slog.Error("read failed", "path", file, "line", state.line, "error", err)
			return state.results, &FileReadError{File: file, Line: state.line, Err: err}
		}
	}

	state.finalize()

	slog.Debug("scanned file", "path", file, "lines", state.line, "tests", len(state.results))

	return state.results, nil
}

func trimEOL(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}

// scanPhase is where the scanner stands relative to suites and tests.
type scanPhase int

const (
	phaseNoSuite scanPhase = iota
	phaseInSuite
	phaseInTest
)

func (p scanPhase) String() string {
	switch p {
	case phaseNoSuite:
		return "no-suite"
	case phaseInSuite:
		return "in-suite"
	case phaseInTest:
		return "in-test"
	}

	return "unknown"
}

// scanState is the per-file attribution state. A test with an empty name is
// not considered open.
type scanState struct {
	file       m.Path
	inSuite    bool
	suite      string
	test       string
	suiteMocks int
	testMocks  int
	line       int
	results    []m.TestResult
}

func newScanState(file m.Path) *scanState {
	return &scanState{file: file}
}

func (s *scanState) phase() scanPhase {
	switch {
	case s.test != "":
		return phaseInTest
	case s.inSuite:
		return phaseInSuite
	default:
		return phaseNoSuite
	}
}

// process applies the suite, test and mock rules to one line, in that order.
func (s *scanState) process(patterns Patterns, line string) {
	if match := patterns.Suite.FindStringSubmatch(line); match != nil {
		s.openSuite(match[1])
	}

	if match := patterns.Test.FindStringSubmatch(line); match != nil {
		s.openTest(match[1])
	}

	if patterns.Mock.MatchString(line) {
		s.countMock()
	}
}

func (s *scanState) openSuite(name string) {
	slog.Debug("suite opened", "path", s.file, "line", s.line, "suite", name, "from", s.phase())

	s.finalize()
	s.test = ""
	s.inSuite = true
	s.suite = name
	s.suiteMocks = 0
}

func (s *scanState) openTest(name string) {
	slog.Debug("test opened", "path", s.file, "line", s.line, "test", name, "from", s.phase())

	s.finalize()
	s.test = name
	s.testMocks = 0
}

func (s *scanState) countMock() {
	if s.phase() == phaseInTest {
		s.testMocks++
		return
	}

	s.suiteMocks++
}

// finalize emits the open test, if any. Suite mocks are inherited by every
// test of the suite, so suiteMocks is left untouched.
func (s *scanState) finalize() {
	if s.phase() != phaseInTest {
		return
	}

	s.results = append(s.results, m.TestResult{
		File:  s.file,
		Suite: s.suite,
		Test:  s.test,
		Mocks: s.suiteMocks + s.testMocks,
	})
}
