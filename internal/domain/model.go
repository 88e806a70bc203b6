package domain

// DocumentLine is the line value of an issue that belongs to the whole
// document rather than to a specific line. Real lines start at 1.
const DocumentLine = 0

// Severity classifies an issue. Only errors affect report validity.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue represents a single diagnostic produced by a rule.
type Issue struct {
	Line     int      `json:"line"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
	Rule     string   `json:"rule,omitempty"`
}

func NewError(rule string, line int, message string) Issue {
	return Issue{Line: line, Message: message, Severity: SeverityError, Rule: rule}
}

func NewWarning(rule string, line int, message string) Issue {
	return Issue{Line: line, Message: message, Severity: SeverityWarning, Rule: rule}
}

// Known reports whether s is one of the defined severities.
func (s Severity) Known() bool {
	return s == SeverityError || s == SeverityWarning
}

// IsDocumentLevel reports whether the issue has no localizable line.
func (i Issue) IsDocumentLevel() bool { return i.Line == DocumentLine }

// ValidationReport is the outcome of one analysis pass.
type ValidationReport struct {
	Valid    bool    `json:"valid"`
	Errors   []Issue `json:"errors"`
	Warnings []Issue `json:"warnings"`
}

// NewReport splits issues by severity, keeping their relative order, and
// derives validity from the error list. An issue with an unknown severity is
// filed as an error so it can never leave a report valid.
func NewReport(issues []Issue) ValidationReport {
	r := ValidationReport{
		Errors:   []Issue{},
		Warnings: []Issue{},
	}
	for _, issue := range issues {
		switch issue.Severity {
		case SeverityWarning:
			r.Warnings = append(r.Warnings, issue)
		default:
			r.Errors = append(r.Errors, issue)
		}
	}
	r.Valid = len(r.Errors) == 0
	return r
}

// IssueCount returns the number of errors and warnings combined.
func (r ValidationReport) IssueCount() int {
	return len(r.Errors) + len(r.Warnings)
}

// Issues returns errors followed by warnings, in report order.
func (r ValidationReport) Issues() []Issue {
	all := make([]Issue, 0, r.IssueCount())
	all = append(all, r.Errors...)
	all = append(all, r.Warnings...)
	return all
}

// FileReport is the validation result for one source file in a project run.
type FileReport struct {
	File   string            `json:"file"`
	Report *ValidationReport `json:"report,omitempty"`
	Cached bool              `json:"cached,omitempty"`
	Fault  string            `json:"fault,omitempty"`
}

// Run statuses.
const (
	StatusPass = "pass"
	StatusWarn = "warn"
	StatusFail = "fail"
)

// ProjectReport aggregates the file reports of one project run.
type ProjectReport struct {
	ID         string       `json:"id"`
	Status     string       `json:"status"`
	CommitHash string       `json:"commit_hash,omitempty"`
	Files      []FileReport `json:"files"`
	Errors     int          `json:"errors"`
	Warnings   int          `json:"warnings"`
	Faults     int          `json:"faults"`
}

// ComputeStatus derives pass/warn/fail from error and warning counts.
// Internal faults always fail the run.
func ComputeStatus(errors, warnings, faults int, strict bool) string {
	switch {
	case errors > 0 || faults > 0:
		return StatusFail
	case warnings > 0 && strict:
		return StatusFail
	case warnings > 0:
		return StatusWarn
	default:
		return StatusPass
	}
}
