package pdf

// Logical field keys resolved against the derived text map at draw time.
const (
	fieldName                = "full_legal_name"
	fieldDaySentence         = "day_sentence"
	fieldDateOfApplication   = "date_of_application"
	fieldDateOfTransmission  = "date_of_transmission"
	fieldControlNo           = "control_no"
	fieldSchoolName          = "school_name"
	fieldSchoolAddress       = "school_address"
	fieldSchoolYearCompleted = "school_year_completed"
	fieldSchoolYearGraduated = "school_year_graduated"
	fieldPreparedName        = "prepared_name"
	fieldPreparedPosition    = "prepared_position"
	fieldSubmittedName       = "submitted_name"
	fieldSubmittedPosition   = "submitted_position"
)

// placement stamps one field at a fixed spot on the template. Coordinates are
// in the template's text space: points, origin at the bottom-left of the
// page. A size of 0 draws at the fitted name size.
type placement struct {
	field string
	page  int
	x, y  float64
	size  float64
	bold  bool
}

// placements is the layout for the 4-page CAV template. Page 1 is the
// certificate proper with the signatory blocks, page 2 the authentication
// sheet, page 3 the transmittal line, page 4 the verification sheet.
var placements = []placement{
	{fieldName, 1, 340, 645, 0, true},
	{fieldName, 1, 120, 493, 0, true},
	{fieldDaySentence, 1, 291, 505, 10, true},
	{fieldPreparedName, 1, 120, 450, 0, true},
	{fieldPreparedPosition, 1, 120, 435, 10, true},
	{fieldSubmittedName, 1, 350, 450, 0, true},
	{fieldSubmittedPosition, 1, 350, 435, 10, true},

	{fieldName, 2, 137, 689, 0, true},
	{fieldDateOfApplication, 2, 257, 758, 12, true},

	{fieldControlNo, 3, 100, 697, 10, false},
	{fieldName, 3, 180, 697, 0, true},
	{fieldDateOfApplication, 3, 325, 697, 12, false},
	{fieldDateOfTransmission, 3, 450, 697, 12, false},

	{fieldName, 4, 285, 675, 0, true},
	{fieldSchoolName, 4, 270, 605, 0, true},
	{fieldSchoolAddress, 4, 270, 590, 0, true},
	{fieldSchoolYearCompleted, 4, 270, 570, 12, true},
	{fieldSchoolYearGraduated, 4, 270, 555, 12, true},
	{fieldDaySentence, 4, 291, 450, 10, true},
}

// maxPage is the highest page the layout draws on; the template must have at
// least this many pages.
func maxPage() int {
	max := 0
	for _, p := range placements {
		if p.page > max {
			max = p.page
		}
	}
	return max
}
