package validator

// StudentCreateRequest is the raw payload of the add-student operation.
// Every field is a pointer so that "absent" and "zero value" stay
// distinguishable until normalization has run.
type StudentCreateRequest struct {
	Name               *string `json:"name" validate:"required,min=1"`
	Email              *string `json:"email" validate:"required,email"`
	Gender             *string `json:"gender" validate:"omitempty,oneof=Male Female"`
	Phone              *string `json:"phone" validate:"omitempty,max=20"`
	Dob                *string `json:"dob" validate:"omitempty,date_string"`
	CurrentAddress     *string `json:"currentAddress" validate:"omitempty,max=50"`
	PermanentAddress   *string `json:"permanentAddress" validate:"omitempty,max=50"`
	FatherName         *string `json:"fatherName" validate:"omitempty,max=50"`
	FatherPhone        *string `json:"fatherPhone" validate:"omitempty,max=20"`
	MotherName         *string `json:"motherName" validate:"omitempty,max=50"`
	MotherPhone        *string `json:"motherPhone" validate:"omitempty,max=20"`
	GuardianName       *string `json:"guardianName" validate:"omitempty,max=50"`
	GuardianPhone      *string `json:"guardianPhone" validate:"omitempty,max=20"`
	RelationOfGuardian *string `json:"relationOfGuardian" validate:"omitempty,max=30"`
	Class              *string `json:"class" validate:"omitempty,max=50"`
	Section            *string `json:"section" validate:"omitempty,max=50"`
	AdmissionDate      *string `json:"admissionDate" validate:"omitempty,date_string"`
	Roll               Number  `json:"roll"`
	SystemAccess       Flag    `json:"systemAccess"`
}

// StudentUpdateRequest is the update-shape: the full payload is
// revalidated and the target identity must coerce to a number.
type StudentUpdateRequest struct {
	StudentCreateRequest
	UserID int64 `json:"userId" validate:"required"`
}

// StudentStatusRequest is the narrow status-change shape. Status is
// checked by ValidateStudentStatus rather than a struct tag so that a
// non-boolean value reports its own message instead of "required".
type StudentStatusRequest struct {
	UserID     int64 `json:"userId" validate:"required"`
	ReviewerID int64 `json:"reviewerId" validate:"required"`
	Status     Flag  `json:"status"`
}
