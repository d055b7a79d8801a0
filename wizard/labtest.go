package wizard

// Lab-test wizard field names.
const (
	FieldName            = "name"
	FieldLabAge          = "age"
	FieldBloodGroup      = "bloodGroup"
	FieldSex             = "sex"
	FieldMobile          = "mobile"
	FieldAddress         = "address"
	FieldLandmark        = "landmark"
	FieldSelectedTests   = "selectedTests"
	FieldDate            = "date"
	FieldTime            = "time"
	FieldAlternativeTime = "alternativeTime"
	FieldHealthIssues    = "healthIssues"
	FieldMedications     = "medications"
	FieldAllergies       = "allergies"
)

// BloodGroups is the accepted set for the personal-info step.
var BloodGroups = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

// LabTestCatalog groups the bookable tests by category.
var LabTestCatalog = map[string][]string{
	"Blood Tests": {
		"Complete Blood Count (CBC)",
		"Lipid Profile",
		"Blood Sugar (Glucose)",
		"Thyroid Function",
		"Liver Function",
		"Kidney Function",
	},
	"Diabetes Tests": {"HbA1c", "Fasting Blood Sugar", "Post Prandial Blood Sugar", "Glucose Tolerance Test"},
	"Urine Tests":    {"Routine Urine Analysis", "Microalbumin", "Culture and Sensitivity"},
	"Cardiac Tests":  {"ECG", "Cardiac Markers", "Cholesterol Profile"},
	"Imaging Tests":  {"X-Ray", "Ultrasound", "CT Scan", "MRI"},
}

// LabIntake is the completed lab-booking field set.
type LabIntake struct {
	Name       string `json:"name"`
	Age        string `json:"age"`
	BloodGroup string `json:"blood_group"`
	Sex        string `json:"sex"`
	Mobile     string `json:"mobile"`
	Address    string `json:"address"`
	Landmark   string `json:"landmark"`

	SelectedTests   []string `json:"selected_tests"`
	Date            string   `json:"date"`
	Time            string   `json:"time"`
	AlternativeTime string   `json:"alternative_time"`

	HealthIssues string `json:"health_issues"`
	Medications  string `json:"medications"`
	Allergies    string `json:"allergies"`
}

// LabConfirmation is the payload produced when a lab booking is submitted.
type LabConfirmation struct {
	Name            string   `json:"name"`
	Mobile          string   `json:"mobile"`
	Tests           []string `json:"tests"`
	Date            string   `json:"date"`
	Time            string   `json:"time"`
	AlternativeTime string   `json:"alternative_time"`
}

// LabFlow is the lab-test booking wizard: personal info, test selection and
// scheduling, then an optional health-history step that submits.
type LabFlow struct{}

func (LabFlow) Name() string { return "labtest" }

func (LabFlow) StepCount() int { return 3 }

func (LabFlow) ResultsOnlyFinal() bool { return false }

func (LabFlow) StepValid(step int, fields *FieldStore) bool {
	switch step {
	case 1:
		return fields.String(FieldName) != "" &&
			fields.String(FieldLabAge) != "" &&
			fields.String(FieldBloodGroup) != "" &&
			fields.String(FieldSex) != "" &&
			fields.String(FieldMobile) != "" &&
			fields.String(FieldAddress) != ""
	case 2:
		return len(fields.List(FieldSelectedTests)) > 0 &&
			fields.String(FieldDate) != "" &&
			fields.String(FieldTime) != "" &&
			fields.String(FieldAlternativeTime) != ""
	case 3:
		// Health-history fields are optional; submission is allowed
		// unconditionally once this step is reached.
		return true
	default:
		return false
	}
}

func (LabFlow) Derive(fields *FieldStore) (interface{}, error) {
	return LabConfirmation{
		Name:            fields.String(FieldName),
		Mobile:          fields.String(FieldMobile),
		Tests:           fields.List(FieldSelectedTests),
		Date:            fields.String(FieldDate),
		Time:            fields.String(FieldTime),
		AlternativeTime: fields.String(FieldAlternativeTime),
	}, nil
}

// LabFieldStore populates a field store from an intake struct.
func LabFieldStore(intake LabIntake) *FieldStore {
	fields := NewFieldStore()
	fields.SetString(FieldName, intake.Name)
	fields.SetString(FieldLabAge, intake.Age)
	fields.SetString(FieldBloodGroup, intake.BloodGroup)
	fields.SetString(FieldSex, intake.Sex)
	fields.SetString(FieldMobile, intake.Mobile)
	fields.SetString(FieldAddress, intake.Address)
	fields.SetString(FieldLandmark, intake.Landmark)
	fields.SetList(FieldSelectedTests, intake.SelectedTests)
	fields.SetString(FieldDate, intake.Date)
	fields.SetString(FieldTime, intake.Time)
	fields.SetString(FieldAlternativeTime, intake.AlternativeTime)
	fields.SetString(FieldHealthIssues, intake.HealthIssues)
	fields.SetString(FieldMedications, intake.Medications)
	fields.SetString(FieldAllergies, intake.Allergies)
	return fields
}
