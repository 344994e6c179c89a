package fontdec

import "fmt"

// DecodeError is returned for font binaries which cannot be decoded at all.
type DecodeError struct {
	Format string // container format, as far as it could be determined
	Issue  string // human-readable description
	Err    error  // underlying error, may be nil
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fontdec: cannot decode %s font: %s: %v", e.Format, e.Issue, e.Err)
	}
	return fmt.Sprintf("fontdec: cannot decode %s font: %s", e.Format, e.Issue)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func decodeError(format, issue string, err error) *DecodeError {
	return &DecodeError{Format: format, Issue: issue, Err: err}
}

// Severity represents the severity level of an issue found while decoding.
type Severity int

const (
	// SeverityCritical marks a table as unusable.
	SeverityCritical Severity = iota
	// SeverityMajor marks an issue which makes parts of a table unusable.
	SeverityMajor
	// SeverityMinor indicates a minor issue that can be safely ignored.
	SeverityMinor
)

func (s Severity) String() string {
	switch s {
	case SeverityCritical:
		return "CRITICAL"
	case SeverityMajor:
		return "MAJOR"
	case SeverityMinor:
		return "MINOR"
	default:
		return "UNKNOWN"
	}
}

// Issue is a problem found in a font's tables. Issues are collected during
// decoding; a font with issues may still be usable.
type Issue struct {
	Table    Tag    // the table where the issue occurred
	Section  string // section within the table, e.g. "LookupList"
	Text     string // human-readable description
	Severity Severity
}

func (i Issue) String() string {
	return fmt.Sprintf("[%s] %s/%s: %s", i.Severity, i.Table, i.Section, i.Text)
}

// issueCollector accumulates issues during decoding.
type issueCollector struct {
	issues []Issue
}

func (ic *issueCollector) add(table Tag, section string, sev Severity, format string, args ...any) {
	issue := Issue{
		Table:    table,
		Section:  section,
		Text:     fmt.Sprintf(format, args...),
		Severity: sev,
	}
	tracer().Infof("font issue %s", issue)
	ic.issues = append(ic.issues, issue)
}
