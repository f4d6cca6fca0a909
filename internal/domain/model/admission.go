//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"strings"
	"time"

	apperrors "github.com/nazmul162001/educonnect/internal/errors"
)

// AdmissionStatus is the review state of an application.
type AdmissionStatus string

const (
	AdmissionStatusPending    AdmissionStatus = "PENDING"
	AdmissionStatusApproved   AdmissionStatus = "APPROVED"
	AdmissionStatusRejected   AdmissionStatus = "REJECTED"
	AdmissionStatusWaitlisted AdmissionStatus = "WAITLISTED"
)

// Valid reports whether the status is supported.
func (s AdmissionStatus) Valid() bool {
	switch s {
	case AdmissionStatusPending, AdmissionStatusApproved, AdmissionStatusRejected, AdmissionStatusWaitlisted:
		return true
	default:
		return false
	}
}

// ParseAdmissionStatus normalizes a status string and reports whether it is supported.
func ParseAdmissionStatus(v string) (AdmissionStatus, bool) {
	s := AdmissionStatus(strings.ToUpper(strings.TrimSpace(v)))
	return s, s.Valid()
}

// Stable client-facing messages for admission operations.
const (
	MsgAdmissionFieldsRequired = "Missing required fields"
	MsgAdmissionNotFound       = "Admission not found"
	MsgAdmissionDuplicate      = "You have already applied to this college"
	MsgAdmissionClosed         = "Admissions are closed for this college"
	MsgInvalidStatus           = "Invalid status"
	MsgAdmissionIDRequired     = "Admission ID is required"
)

// Admission is a student's application to a college.
type Admission struct {
	ID          string          `json:"id"                    db:"id"`
	UserID      string          `json:"userId"                db:"user_id"`
	CollegeID   string          `json:"collegeId"             db:"college_id"`
	StudentName string          `json:"studentName"           db:"student_name"`
	Course      string          `json:"course"                db:"course"`
	Email       string          `json:"email"                 db:"email"`
	Phone       string          `json:"phone"                 db:"phone"`
	Address     string          `json:"address,omitempty"     db:"address"`
	DateOfBirth string          `json:"dateOfBirth,omitempty" db:"date_of_birth"`
	Image       string          `json:"image,omitempty"       db:"image"`
	Status      AdmissionStatus `json:"status"                db:"status"`
	CreatedAt   time.Time       `json:"createdAt"             db:"created_at"`
	UpdatedAt   time.Time       `json:"updatedAt"             db:"updated_at"`
}

// AdmissionWithCollege is an admission populated with its college.
type AdmissionWithCollege struct {
	Admission
	College CollegeSummary `json:"college"`
}

// CreateAdmissionRequest is the body of POST /admissions.
// The owning user is never taken from the body.
type CreateAdmissionRequest struct {
	CollegeID   string `json:"collegeId"`
	StudentName string `json:"studentName"`
	Course      string `json:"course"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address,omitempty"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	Image       string `json:"image,omitempty"`
}

// Validate trims and checks required fields and formats.
func (r *CreateAdmissionRequest) Validate() error {
	r.CollegeID = strings.TrimSpace(r.CollegeID)
	r.StudentName = strings.TrimSpace(r.StudentName)
	r.Course = strings.TrimSpace(r.Course)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Address = strings.TrimSpace(r.Address)
	r.DateOfBirth = strings.TrimSpace(r.DateOfBirth)

	if r.CollegeID == "" || r.StudentName == "" || r.Course == "" || r.Email == "" || r.Phone == "" {
		return apperrors.Validation(MsgAdmissionFieldsRequired)
	}
	if !ValidEmail(r.Email) {
		return apperrors.ValidationField("email", MsgInvalidEmail)
	}
	id, err := ParseID(r.CollegeID)
	if err != nil {
		return apperrors.ValidationField("collegeId", MsgInvalidCollegeID)
	}
	r.CollegeID = id
	return validateDateOfBirth(r.DateOfBirth)
}

// UpdateAdmissionRequest is the body of PUT /admissions.
// Nil fields are left unchanged; status and ownership are not editable here.
type UpdateAdmissionRequest struct {
	AdmissionID string  `json:"admissionId"`
	StudentName *string `json:"studentName,omitempty"`
	Course      *string `json:"course,omitempty"`
	Email       *string `json:"email,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Address     *string `json:"address,omitempty"`
	DateOfBirth *string `json:"dateOfBirth,omitempty"`
	Image       *string `json:"image,omitempty"`
}

// Validate checks the id and any supplied fields.
func (r *UpdateAdmissionRequest) Validate() error {
	if strings.TrimSpace(r.AdmissionID) == "" {
		return apperrors.Validation(MsgAdmissionIDRequired)
	}
	for _, p := range []*string{r.StudentName, r.Course, r.Phone} {
		if p != nil && strings.TrimSpace(*p) == "" {
			return apperrors.Validation(MsgAdmissionFieldsRequired)
		}
	}
	if r.Email != nil && !ValidEmail(strings.TrimSpace(*r.Email)) {
		return apperrors.ValidationField("email", MsgInvalidEmail)
	}
	if r.DateOfBirth != nil {
		return validateDateOfBirth(strings.TrimSpace(*r.DateOfBirth))
	}
	return nil
}

// HasChanges reports whether any editable field was supplied.
func (r *UpdateAdmissionRequest) HasChanges() bool {
	return r.StudentName != nil || r.Course != nil || r.Email != nil || r.Phone != nil ||
		r.Address != nil || r.DateOfBirth != nil || r.Image != nil
}

// UpdateAdmissionStatusRequest is the body of PATCH /admissions/{id}/status.
type UpdateAdmissionStatusRequest struct {
	Status string `json:"status"`
}

const dateOfBirthLayout = "2006-01-02"

func validateDateOfBirth(v string) error {
	if v == "" {
		return nil
	}
	if _, err := time.Parse(dateOfBirthLayout, v); err != nil {
		return apperrors.ValidationField("dateOfBirth", "Date of birth must be formatted as YYYY-MM-DD")
	}
	return nil
}
