// Package testutil provides testing utilities and helpers for the EduConnect stores.
package testutil

import (
	"time"

	"github.com/nazmul162001/educonnect/internal/domain/model"
)

// AdmissionRequestBuilder provides a fluent interface for building CreateAdmissionRequest objects for testing.
type AdmissionRequestBuilder struct {
	req *model.CreateAdmissionRequest
}

// NewAdmissionRequest creates a builder whose request passes validation once a college id is set.
func NewAdmissionRequest(collegeID string) *AdmissionRequestBuilder {
	return &AdmissionRequestBuilder{
		req: &model.CreateAdmissionRequest{
			CollegeID:   collegeID,
			StudentName: "Test Student",
			Course:      "Computer Science",
			Email:       "student@example.com",
			Phone:       "+8801700000000",
		},
	}
}

// WithStudentName sets the applicant name.
func (b *AdmissionRequestBuilder) WithStudentName(name string) *AdmissionRequestBuilder {
	b.req.StudentName = name
	return b
}

// WithCourse sets the course.
func (b *AdmissionRequestBuilder) WithCourse(course string) *AdmissionRequestBuilder {
	b.req.Course = course
	return b
}

// WithEmail sets the contact email.
func (b *AdmissionRequestBuilder) WithEmail(email string) *AdmissionRequestBuilder {
	b.req.Email = email
	return b
}

// WithDateOfBirth sets the date of birth (YYYY-MM-DD).
func (b *AdmissionRequestBuilder) WithDateOfBirth(dob string) *AdmissionRequestBuilder {
	b.req.DateOfBirth = dob
	return b
}

// Build returns a copy of the request.
func (b *AdmissionRequestBuilder) Build() *model.CreateAdmissionRequest {
	out := *b.req
	return &out
}

// CollegeRequestBuilder builds UpsertCollegeRequest values.
type CollegeRequestBuilder struct {
	req *model.UpsertCollegeRequest
}

// NewCollegeRequest creates a builder for a college with an open admission window.
func NewCollegeRequest(name string) *CollegeRequestBuilder {
	return &CollegeRequestBuilder{
		req: &model.UpsertCollegeRequest{
			Name:          name,
			Rating:        4.5,
			ResearchCount: 10,
			Sports:        []string{"Football"},
			Events:        []model.CollegeEvent{{Name: "Open Day", Date: "2025-03-01"}},
		},
	}
}

// WithID pins the college id so upserts are idempotent.
func (b *CollegeRequestBuilder) WithID(id string) *CollegeRequestBuilder {
	b.req.ID = id
	return b
}

// WithRating sets the rating.
func (b *CollegeRequestBuilder) WithRating(rating float64) *CollegeRequestBuilder {
	b.req.Rating = rating
	return b
}

// WithAdmissionWindow sets the admission window bounds.
func (b *CollegeRequestBuilder) WithAdmissionWindow(start, end time.Time) *CollegeRequestBuilder {
	b.req.AdmissionStart = &start
	b.req.AdmissionEnd = &end
	return b
}

// Build returns a copy of the request.
func (b *CollegeRequestBuilder) Build() *model.UpsertCollegeRequest {
	out := *b.req
	return &out
}
