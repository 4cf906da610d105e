package models

import (
	"strings"
	"time"
)

// CAVForm is one Certification, Authentication, and Verification record.
// Date fields hold the ISO "2006-01-02" strings the date pickers submit;
// they are formatted for display only when the document is rendered.
type CAVForm struct {
	ID                  string    `gorm:"type:uuid;primaryKey" json:"id"`
	FullLegalName       string    `gorm:"not null" json:"full_legal_name"`
	DateIssued          string    `json:"date_issued"`
	SchoolName          string    `json:"school_name"`
	SchoolAddress       string    `json:"school_address"`
	SchoolYearCompleted string    `json:"school_year_completed"`
	SchoolYearGraduated string    `json:"school_year_graduated"`
	DateOfApplication   string    `json:"date_of_application"`
	DateOfTransmission  string    `json:"date_of_transmission"`
	ControlNo           string    `json:"control_no"`
	PreparedBy          string    `json:"prepared_by,omitempty"`
	SubmittedBy         string    `json:"submitted_by,omitempty"`
	IsArchived          bool      `gorm:"index;not null;default:false" json:"is_archived"`
	CreatedBy           string    `json:"created_by"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

func (CAVForm) TableName() string { return "cav_forms" }

// FormInput is the submitted field set, validated at the service boundary
// before anything downstream sees it.
type FormInput struct {
	FullLegalName       string `json:"full_legal_name"`
	DateIssued          string `json:"date_issued"`
	SchoolName          string `json:"school_name"`
	SchoolAddress       string `json:"school_address"`
	SchoolYearCompleted string `json:"school_year_completed"`
	SchoolYearGraduated string `json:"school_year_graduated"`
	DateOfApplication   string `json:"date_of_application"`
	DateOfTransmission  string `json:"date_of_transmission"`
	ControlNo           string `json:"control_no"`
	PreparedBy          string `json:"prepared_by"`
	SubmittedBy         string `json:"submitted_by"`
}

// FieldLabels maps column names to the labels shown on the form, used when
// reporting missing fields back to the user.
var FieldLabels = map[string]string{
	"full_legal_name":       "Complete Name",
	"date_issued":           "Date Issued",
	"school_name":           "Name of School",
	"school_address":        "School Address",
	"school_year_completed": "School Year Completed",
	"school_year_graduated": "School Year Graduated",
	"date_of_application":   "Date of Application",
	"date_of_transmission":  "Date of Transmission",
	"control_no":            "Control No.",
}

// RequiredFields lists the mandatory columns in form display order so
// validation messages come out stable.
var RequiredFields = []string{
	"full_legal_name",
	"date_issued",
	"school_name",
	"school_year_completed",
	"school_address",
	"date_of_transmission",
	"date_of_application",
	"school_year_graduated",
	"control_no",
}

// Fields returns the input keyed by column name, the unit the diff and audit
// snapshots operate on.
func (in FormInput) Fields() map[string]string {
	return map[string]string{
		"full_legal_name":       in.FullLegalName,
		"date_issued":           in.DateIssued,
		"school_name":           in.SchoolName,
		"school_address":        in.SchoolAddress,
		"school_year_completed": in.SchoolYearCompleted,
		"school_year_graduated": in.SchoolYearGraduated,
		"date_of_application":   in.DateOfApplication,
		"date_of_transmission":  in.DateOfTransmission,
		"control_no":            in.ControlNo,
		"prepared_by":           in.PreparedBy,
		"submitted_by":          in.SubmittedBy,
	}
}

// MissingRequired returns the labels of required fields that are empty after
// trimming, in display order.
func (in FormInput) MissingRequired() []string {
	fields := in.Fields()
	var missing []string
	for _, key := range RequiredFields {
		if strings.TrimSpace(fields[key]) == "" {
			missing = append(missing, FieldLabels[key])
		}
	}
	return missing
}

// Apply copies the input onto an existing record, leaving identity, lifecycle
// flags, and timestamps alone.
func (in FormInput) Apply(f *CAVForm) {
	f.FullLegalName = in.FullLegalName
	f.DateIssued = in.DateIssued
	f.SchoolName = in.SchoolName
	f.SchoolAddress = in.SchoolAddress
	f.SchoolYearCompleted = in.SchoolYearCompleted
	f.SchoolYearGraduated = in.SchoolYearGraduated
	f.DateOfApplication = in.DateOfApplication
	f.DateOfTransmission = in.DateOfTransmission
	f.ControlNo = in.ControlNo
	f.PreparedBy = in.PreparedBy
	f.SubmittedBy = in.SubmittedBy
}

// Snapshot returns the record's editable fields in the same keying as
// FormInput.Fields, so pre- and post-edit states diff cleanly.
func (f *CAVForm) Snapshot() map[string]string {
	return FormInput{
		FullLegalName:       f.FullLegalName,
		DateIssued:          f.DateIssued,
		SchoolName:          f.SchoolName,
		SchoolAddress:       f.SchoolAddress,
		SchoolYearCompleted: f.SchoolYearCompleted,
		SchoolYearGraduated: f.SchoolYearGraduated,
		DateOfApplication:   f.DateOfApplication,
		DateOfTransmission:  f.DateOfTransmission,
		ControlNo:           f.ControlNo,
		PreparedBy:          f.PreparedBy,
		SubmittedBy:         f.SubmittedBy,
	}.Fields()
}
