// Package domain holds the lead record and its status vocabulary.
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status is the lead's position in the sales process. Any status may be set
// to any other; only conversion checks the current value.
type Status string

const (
	StatusNew       Status = "new"
	StatusContacted Status = "contacted"
	StatusQualified Status = "qualified"
	StatusConverted Status = "converted"
	StatusClosed    Status = "closed"
)

// Statuses lists the vocabulary in pipeline order.
var Statuses = []Status{StatusNew, StatusContacted, StatusQualified, StatusConverted, StatusClosed}

// MatchScore bounds.
const (
	MinMatchScore = 0
	MaxMatchScore = 100
)

// ParseStatus normalizes raw to lowercase and reports whether it is part of
// the vocabulary.
func ParseStatus(raw string) (Status, bool) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range Statuses {
		if s == known {
			return s, true
		}
	}
	return s, false
}

// Lead is a prospective sales opportunity.
type Lead struct {
	ID          uuid.UUID
	Name        string
	Company     string
	Industry    string
	Email       string
	Phone       string
	MatchScore  int
	Status      Status
	CompanySize string
	Location    string
	Feedback    []string
	CreatedAt   time.Time
	LastUpdated time.Time
}
