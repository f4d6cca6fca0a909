//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/nazmul162001/educonnect/internal/errors"
)

// Stable client-facing messages for college operations.
const (
	MsgInvalidCollegeID = "Invalid college ID"
	MsgCollegeNotFound  = "College not found"
)

// CollegeEvent is a dated event listed on a college page.
type CollegeEvent struct {
	Name        string `json:"name"`
	Date        string `json:"date,omitempty"`
	Description string `json:"description,omitempty"`
}

// College is a read-only catalogue entry students apply to.
type College struct {
	ID              string         `json:"id"                        db:"id"`
	Name            string         `json:"name"                      db:"name"`
	Image           string         `json:"image,omitempty"           db:"image"`
	AdmissionStart  *time.Time     `json:"admissionStart,omitempty"  db:"admission_start"`
	AdmissionEnd    *time.Time     `json:"admissionEnd,omitempty"    db:"admission_end"`
	Events          []CollegeEvent `json:"events"                    db:"events"`
	ResearchHistory string         `json:"researchHistory,omitempty" db:"research_history"`
	Sports          []string       `json:"sports"                    db:"sports"`
	Rating          float64        `json:"rating"                    db:"rating"`
	ResearchCount   int            `json:"researchCount"             db:"research_count"`
	CreatedAt       time.Time      `json:"createdAt"                 db:"created_at"`
	UpdatedAt       time.Time      `json:"updatedAt"                 db:"updated_at"`
}

// AdmissionOpen reports whether applications are accepted at now.
// Missing bounds are treated as open-ended.
func (c *College) AdmissionOpen(now time.Time) bool {
	if c.AdmissionStart != nil && now.Before(*c.AdmissionStart) {
		return false
	}
	if c.AdmissionEnd != nil && now.After(*c.AdmissionEnd) {
		return false
	}
	return true
}

// CollegeSummary is the subset of a college embedded in admission listings.
type CollegeSummary struct {
	ID     string  `json:"id"              db:"college_id"`
	Name   string  `json:"name"            db:"college_name"`
	Image  string  `json:"image,omitempty" db:"college_image"`
	Rating float64 `json:"rating"          db:"college_rating"`
}

// CollegeListOptions controls listing colleges.
// Search matches name via ILIKE substring.
type CollegeListOptions struct {
	Search string
	Limit  int
	Offset int
}

// Normalize trims the search term and clamps paging.
func (o *CollegeListOptions) Normalize() {
	o.Search = strings.TrimSpace(o.Search)
	if o.Limit <= 0 || o.Limit > 100 {
		o.Limit = 100
	}
	if o.Offset < 0 {
		o.Offset = 0
	}
}

// UpsertCollegeRequest creates or replaces a college (admin CLI seeding).
type UpsertCollegeRequest struct {
	ID              string         `json:"id,omitempty"`
	Name            string         `json:"name"`
	Image           string         `json:"image,omitempty"`
	AdmissionStart  *time.Time     `json:"admissionStart,omitempty"`
	AdmissionEnd    *time.Time     `json:"admissionEnd,omitempty"`
	Events          []CollegeEvent `json:"events,omitempty"`
	ResearchHistory string         `json:"researchHistory,omitempty"`
	Sports          []string       `json:"sports,omitempty"`
	Rating          float64        `json:"rating,omitempty"`
	ResearchCount   int            `json:"researchCount,omitempty"`
}

// Validate checks the seed entry.
func (r *UpsertCollegeRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return apperrors.ValidationField("name", "College name is required")
	}
	if r.ID != "" {
		if _, err := ParseID(r.ID); err != nil {
			return apperrors.ValidationField("id", MsgInvalidCollegeID)
		}
	}
	if r.Rating < 0 || r.Rating > 5 {
		return apperrors.ValidationField("rating", "Rating must be between 0 and 5")
	}
	if r.AdmissionStart != nil && r.AdmissionEnd != nil && r.AdmissionEnd.Before(*r.AdmissionStart) {
		return apperrors.ValidationField("admissionEnd", "Admission end must be after admission start")
	}
	return nil
}

// ParseID validates a record id and returns its canonical string form.
func ParseID(raw string) (string, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
