package model

import (
	"testing"
	"time"

	apperrors "github.com/nazmul162001/educonnect/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCollegeID = "5b0f8a34-6a8f-4f43-9a55-0a3b1f2d9c11"

func validCreateAdmission() CreateAdmissionRequest {
	return CreateAdmissionRequest{
		CollegeID:   testCollegeID,
		StudentName: "Ana",
		Course:      "Physics",
		Email:       "ana@x.com",
		Phone:       "+8801000000000",
	}
}

func TestCreateAdmissionRequest_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*CreateAdmissionRequest)
		wantMsg   string
		wantField string
	}{
		{name: "valid", mutate: func(*CreateAdmissionRequest) {}},
		{name: "missing phone", mutate: func(r *CreateAdmissionRequest) { r.Phone = " " }, wantMsg: MsgAdmissionFieldsRequired},
		{name: "bad email", mutate: func(r *CreateAdmissionRequest) { r.Email = "x" }, wantMsg: MsgInvalidEmail, wantField: "email"},
		{name: "bad college id", mutate: func(r *CreateAdmissionRequest) { r.CollegeID = "123" }, wantMsg: MsgInvalidCollegeID, wantField: "collegeId"},
		{name: "bad dob", mutate: func(r *CreateAdmissionRequest) { r.DateOfBirth = "01/02/2000" }, wantField: "dateOfBirth"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateAdmission()
			tt.mutate(&req)
			err := req.Validate()
			if tt.wantMsg == "" && tt.wantField == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, apperrors.IsValidation(err))
			if tt.wantField != "" {
				assert.Equal(t, tt.wantField, apperrors.GetField(err))
			}
			if tt.wantMsg != "" {
				var appErr *apperrors.AppError
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, tt.wantMsg, appErr.Message)
			}
		})
	}
}

func TestCreateAdmissionRequest_CanonicalizesCollegeID(t *testing.T) {
	req := validCreateAdmission()
	req.CollegeID = "5B0F8A34-6A8F-4F43-9A55-0A3B1F2D9C11"
	require.NoError(t, req.Validate())
	assert.Equal(t, testCollegeID, req.CollegeID)
}

func TestUpdateAdmissionRequest_Validate(t *testing.T) {
	assert.True(t, apperrors.IsValidation((&UpdateAdmissionRequest{}).Validate()))

	blank := ""
	req := UpdateAdmissionRequest{AdmissionID: "a", Course: &blank}
	assert.True(t, apperrors.IsValidation(req.Validate()))

	course := "Chemistry"
	ok := UpdateAdmissionRequest{AdmissionID: "a", Course: &course}
	require.NoError(t, ok.Validate())
	assert.True(t, ok.HasChanges())
}

func TestParseAdmissionStatus(t *testing.T) {
	s, ok := ParseAdmissionStatus("waitlisted")
	assert.True(t, ok)
	assert.Equal(t, AdmissionStatusWaitlisted, s)

	_, ok = ParseAdmissionStatus("done")
	assert.False(t, ok)
}

func TestCollege_AdmissionOpen(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	start := now.Add(-24 * time.Hour)
	end := now.Add(24 * time.Hour)

	assert.True(t, (&College{}).AdmissionOpen(now))
	assert.True(t, (&College{AdmissionStart: &start, AdmissionEnd: &end}).AdmissionOpen(now))
	assert.False(t, (&College{AdmissionEnd: &start}).AdmissionOpen(now))
	assert.False(t, (&College{AdmissionStart: &end}).AdmissionOpen(now))
}
