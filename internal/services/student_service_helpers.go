package services

import (
	"fmt"

	"github.com/campus-suite/student-service/internal/models"
	"github.com/campus-suite/student-service/internal/validator"
)

// buildStudentRecord converts a validated request into the stored
// rows. Dates passed validation already, so a parse failure here is a
// programming error, not user input.
func buildStudentRecord(req *CreateStudentRequest) (*models.User, *models.StudentProfile, error) {
	user := &models.User{
		Name:  *req.Name,
		Email: *req.Email,
	}

	profile := &models.StudentProfile{
		Phone:              req.Phone,
		CurrentAddress:     req.CurrentAddress,
		PermanentAddress:   req.PermanentAddress,
		FatherName:         req.FatherName,
		FatherPhone:        req.FatherPhone,
		MotherName:         req.MotherName,
		MotherPhone:        req.MotherPhone,
		GuardianName:       req.GuardianName,
		GuardianPhone:      req.GuardianPhone,
		RelationOfGuardian: req.RelationOfGuardian,
		Class:              req.Class,
		Section:            req.Section,
		Roll:               req.Roll.Val,
		SystemAccess:       req.SystemAccess.Val,
	}

	if req.Gender != nil {
		g := models.Gender(*req.Gender)
		profile.Gender = &g
	}

	if req.Dob != nil {
		dob, err := validator.ParseDate(*req.Dob)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid dob %q: %w", *req.Dob, err)
		}
		profile.Dob = &dob
	}

	if req.AdmissionDate != nil {
		ad, err := validator.ParseDate(*req.AdmissionDate)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid admission date %q: %w", *req.AdmissionDate, err)
		}
		profile.AdmissionDate = &ad
	}

	return user, profile, nil
}

// mergeIDErrors combines identity-coercion errors with shape errors,
// dropping the redundant required-identity violation the shape check
// raises when coercion already failed.
func mergeIDErrors(idErrs, shapeErrs validator.ValidationErrors) validator.ValidationErrors {
	if len(idErrs) == 0 {
		return shapeErrs
	}

	merged := make(validator.ValidationErrors, 0, len(idErrs)+len(shapeErrs))
	merged = append(merged, idErrs...)
	for _, e := range shapeErrs {
		if e.Field == "UserID" {
			continue
		}
		merged = append(merged, e)
	}
	return merged
}
