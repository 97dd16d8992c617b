package domain

import (
	"fmt"
	"regexp"
	"time"
)

var codePattern = regexp.MustCompile(`^[A-Z]{2,6}-[0-9]{4}-[0-9]{4,}$`)

// Project is the record a quote tree hangs off. Exactly one ScopeNode tree
// belongs to each project.
type Project struct {
	ID         string
	Code       string
	Title      string
	CustomerID *string
	Status     ProjectStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ValidateCode checks that Code matches PREFIX-YYYY-NNNN (e.g. PRJ-2026-0007).
func (p *Project) ValidateCode() error {
	if p.Code == "" {
		return fmt.Errorf("project code is required")
	}
	if !codePattern.MatchString(p.Code) {
		return fmt.Errorf("project code %q must look like PRJ-2026-0001", p.Code)
	}
	return nil
}

// DisplayID returns the best short identifier for display.
// It prefers Code; if empty it truncates ID to 8 characters.
func (p *Project) DisplayID() string {
	if p.Code != "" {
		return p.Code
	}
	if len(p.ID) >= 8 {
		return p.ID[:8]
	}
	return p.ID
}

// FormatCode renders a project code from its parts.
func FormatCode(prefix string, year, seq int) string {
	return fmt.Sprintf("%s-%04d-%04d", prefix, year, seq)
}
