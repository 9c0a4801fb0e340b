package scene

import (
	"fmt"
	"math"
	"sort"
)

// ValidationSeverity indicates whether a validation finding blocks tracing
// or is merely informational.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // blocks tracing
	SeverityWarning                           // informational
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding.
type ValidationError struct {
	ElementID ElementID          // which element has the problem (zero if scene-level)
	Message   string             // human-readable description
	Severity  ValidationSeverity // error or warning
}

func (e ValidationError) Error() string {
	if e.ElementID.IsZero() {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] element %s: %s", e.Severity, e.ElementID.Short(), e.Message)
}

// ValidationWarning describes a non-blocking advisory finding.
type ValidationWarning struct {
	ElementID ElementID
	Message   string
}

// ValidationResult bundles errors (blocking) and warnings (advisory)
// from all validation tiers.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationWarning
}

// OK reports whether no blocking errors were found.
func (r ValidationResult) OK() bool { return len(r.Errors) == 0 }

// Validate runs the Tier 1 structural checks on the description and returns
// the findings. An empty slice means the description is structurally sound.
// It never mutates d.
func Validate(d *Description) []ValidationError {
	var errs []ValidationError
	errs = append(errs, validateElements(d)...)
	errs = append(errs, validateNames(d)...)
	errs = append(errs, validateDefaults(d)...)
	return errs
}

// ValidateAll runs every tier (structural, optical, advisory) and returns a
// ValidationResult with errors and warnings separated.
func ValidateAll(d *Description) ValidationResult {
	// Tier 1: structural.
	tier1 := Validate(d)

	// Tier 2: optical parameters.
	tier2 := validateOptics(d)

	// Tier 3: advisory.
	tier3 := validateLayout(d)

	var result ValidationResult
	for _, e := range append(tier1, tier2...) {
		if e.Severity == SeverityWarning {
			result.Warnings = append(result.Warnings, ValidationWarning{
				ElementID: e.ElementID,
				Message:   e.Message,
			})
		} else {
			result.Errors = append(result.Errors, e)
		}
	}
	result.Warnings = append(result.Warnings, tier3...)
	return result
}

// validateElements checks that every element carries data matching its kind.
func validateElements(d *Description) []ValidationError {
	var errs []ValidationError

	for i, e := range d.Elements {
		if e == nil {
			errs = append(errs, ValidationError{
				Message:  fmt.Sprintf("element %d is nil", i),
				Severity: SeverityError,
			})
			continue
		}
		if e.ID.IsZero() {
			errs = append(errs, ValidationError{
				Message:  fmt.Sprintf("element %d (%s) has no id", i, e.Kind),
				Severity: SeverityError,
			})
		}
		if e.Data == nil {
			errs = append(errs, ValidationError{
				ElementID: e.ID,
				Message:   fmt.Sprintf("%s has no data", e.Kind),
				Severity:  SeverityError,
			})
			continue
		}
		kind, ok := kindOf(e.Data)
		if !ok {
			errs = append(errs, ValidationError{
				ElementID: e.ID,
				Message:   fmt.Sprintf("unknown element data %T", e.Data),
				Severity:  SeverityError,
			})
			continue
		}
		if kind != e.Kind {
			errs = append(errs, ValidationError{
				ElementID: e.ID,
				Message:   fmt.Sprintf("element kind %s does not match %s data", e.Kind, kind),
				Severity:  SeverityError,
			})
		}
	}

	return errs
}

// validateNames checks that no two elements share a name and that every
// NameIndex entry points to an existing element.
func validateNames(d *Description) []ValidationError {
	var errs []ValidationError

	indexed := make([]string, 0, len(d.NameIndex))
	for name := range d.NameIndex {
		indexed = append(indexed, name)
	}
	sort.Strings(indexed)
	for _, name := range indexed {
		id := d.NameIndex[name]
		if d.Get(id) == nil {
			errs = append(errs, ValidationError{
				Message:  fmt.Sprintf("name index entry %q references non-existent element %s", name, id.Short()),
				Severity: SeverityError,
			})
		}
	}

	// Names are reported in first-appearance order.
	seen := make(map[string]int)
	var order []string
	for _, e := range d.Elements {
		if e != nil && e.Name != "" {
			if seen[e.Name] == 0 {
				order = append(order, e.Name)
			}
			seen[e.Name]++
		}
	}
	for _, name := range order {
		if n := seen[name]; n > 1 {
			errs = append(errs, ValidationError{
				Message:  fmt.Sprintf("duplicate name %q assigned to %d elements", name, n),
				Severity: SeverityError,
			})
		}
	}

	return errs
}

func validateDefaults(d *Description) []ValidationError {
	var errs []ValidationError
	if !(d.Defaults.Reach > 0) || math.IsInf(d.Defaults.Reach, 0) {
		errs = append(errs, ValidationError{
			Message:  fmt.Sprintf("reach %.4g must be a positive finite number", d.Defaults.Reach),
			Severity: SeverityError,
		})
	}
	if d.Defaults.MaxDepth < 0 {
		errs = append(errs, ValidationError{
			Message:  fmt.Sprintf("max depth %d must not be negative", d.Defaults.MaxDepth),
			Severity: SeverityError,
		})
	}
	return errs
}
