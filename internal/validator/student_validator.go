package validator

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const dateLayout = "2006-01-02"

// ValidationError represents a single field violation
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	Rule    string      `json:"rule,omitempty"`
}

type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	if len(ve) == 1 {
		return fmt.Sprintf("validation failed: %s", ve[0].Message)
	}
	return fmt.Sprintf("validation failed: %d field errors", len(ve))
}

// Messages returns the ordered human-readable messages, one per violation.
func (ve ValidationErrors) Messages() []string {
	msgs := make([]string, 0, len(ve))
	for _, e := range ve {
		msgs = append(msgs, e.Message)
	}
	return msgs
}

// Validator validates student payloads against the declarative field
// rules and produces either a normalized record or the complete list of
// violations. It never stops at the first failure.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	validate := validator.New()

	v := &Validator{validate: validate}
	v.registerRules()

	return v
}

// ValidateStudentCreate normalizes and validates the create-shape.
func (v *Validator) ValidateStudentCreate(req *StudentCreateRequest) ValidationErrors {
	req.normalize()
	return append(v.check(req), req.coercionErrors()...)
}

// ValidateStudentUpdate normalizes and validates the update-shape.
// The identity is coerced by CoerceID before this runs; here it only
// needs to be present.
func (v *Validator) ValidateStudentUpdate(req *StudentUpdateRequest) ValidationErrors {
	req.normalize()
	return append(v.check(req), req.coercionErrors()...)
}

// ValidateStudentStatus validates the status-change shape.
func (v *Validator) ValidateStudentStatus(req *StudentStatusRequest) ValidationErrors {
	errs := v.check(req)
	if req.Status.Invalid {
		errs = append(errs, ValidationError{
			Field:   "Status",
			Message: "Status must be true or false",
			Rule:    "boolean",
		})
	} else if req.Status.Val == nil {
		errs = append(errs, ValidationError{
			Field:   "Status",
			Message: "Status is required",
			Rule:    "required",
		})
	}
	return errs
}

// CoerceID converts a raw path identity into a number. Non-numeric
// input is a validation error, reported before any storage work.
func CoerceID(raw string) (int64, ValidationErrors) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, ValidationErrors{{
			Field:   "userId",
			Message: "User ID must be a valid number",
			Value:   raw,
			Rule:    "numeric",
		}}
	}
	return id, nil
}

// ParseDate parses an already-validated YYYY-MM-DD date string.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

func (v *Validator) check(s interface{}) ValidationErrors {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var errs ValidationErrors
	for _, fe := range err.(validator.ValidationErrors) {
		errs = append(errs, ValidationError{
			Field:   fe.Field(),
			Message: messageFor(fe),
			Value:   fe.Value(),
			Rule:    fe.Tag(),
		})
	}
	return errs
}

func (v *Validator) registerRules() {
	// Strict calendar date: 4 digits - 2 digits - 2 digits, and the
	// digits must form a real date. Never coerced from other formats.
	v.validate.RegisterValidation("date_string", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if len(s) != len(dateLayout) {
			return false
		}
		for i, r := range s {
			if i == 4 || i == 7 {
				if r != '-' {
					return false
				}
				continue
			}
			if r < '0' || r > '9' {
				return false
			}
		}
		_, err := time.Parse(dateLayout, s)
		return err == nil
	})
}

// fieldMessages is the per-field, per-rule message table. Anything not
// listed falls back to a generic message naming the field and rule.
var fieldMessages = map[string]map[string]string{
	"Name": {
		"required": "Name is required",
		"min":      "Name cannot be empty",
	},
	"Email": {
		"required": "Email is required",
		"email":    "Invalid email address",
	},
	"Gender": {
		"oneof": "Gender must be male, female",
	},
	"Phone": {
		"max": "Phone number cannot exceed 20 characters",
	},
	"Dob": {
		"date_string": "Date of birth must be in format YYYY-MM-DD (e.g. 2025-09-19)",
	},
	"CurrentAddress": {
		"max": "Current address cannot exceed 50 characters",
	},
	"PermanentAddress": {
		"max": "Permanent address cannot exceed 50 characters",
	},
	"FatherName": {
		"max": "Father's name cannot exceed 50 characters",
	},
	"FatherPhone": {
		"max": "Father's phone cannot exceed 20 characters",
	},
	"MotherName": {
		"max": "Mother's name cannot exceed 50 characters",
	},
	"MotherPhone": {
		"max": "Mother's phone cannot exceed 20 characters",
	},
	"GuardianName": {
		"max": "Guardian's name cannot exceed 50 characters",
	},
	"GuardianPhone": {
		"max": "Guardian's phone cannot exceed 20 characters",
	},
	"RelationOfGuardian": {
		"max": "Relation of guardian cannot exceed 30 characters",
	},
	"Class": {
		"max": "Class cannot exceed 50 characters",
	},
	"Section": {
		"max": "Section cannot exceed 50 characters",
	},
	"AdmissionDate": {
		"date_string": "Admission date must be in format YYYY-MM-DD (e.g. 2025-09-19)",
	},
	"UserID": {
		"required": "User ID is required",
	},
	"ReviewerID": {
		"required": "Reviewer ID is required",
	},
}

func messageFor(fe validator.FieldError) string {
	if rules, ok := fieldMessages[fe.Field()]; ok {
		if msg, ok := rules[fe.Tag()]; ok {
			return msg
		}
	}
	return fmt.Sprintf("%s failed validation on rule %s", fe.Field(), fe.Tag())
}

// normalize converts empty-string input on optional text fields into
// absence-of-value. It runs before any rule, so an empty string never
// trips a length check and never reaches storage.
func (r *StudentCreateRequest) normalize() {
	for _, f := range []**string{
		&r.Gender,
		&r.Phone,
		&r.Dob,
		&r.AdmissionDate,
		&r.CurrentAddress,
		&r.PermanentAddress,
		&r.FatherName,
		&r.FatherPhone,
		&r.MotherName,
		&r.MotherPhone,
		&r.GuardianName,
		&r.GuardianPhone,
		&r.RelationOfGuardian,
		&r.Class,
		&r.Section,
	} {
		*f = emptyToNil(*f)
	}
}

func emptyToNil(s *string) *string {
	if s != nil && strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}

// coercionErrors reports the fields whose payload value could not
// coerce to the declared type. Decoding tolerated them so the rest of
// the payload could still be validated in the same pass.
func (r *StudentCreateRequest) coercionErrors() ValidationErrors {
	var errs ValidationErrors
	if r.Roll.Invalid {
		errs = append(errs, ValidationError{
			Field:   "Roll",
			Message: "Roll must be a number",
			Rule:    "numeric",
		})
	}
	if r.SystemAccess.Invalid {
		errs = append(errs, ValidationError{
			Field:   "SystemAccess",
			Message: "System access must be true or false",
			Rule:    "boolean",
		})
	}
	return errs
}
