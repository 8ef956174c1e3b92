package exam

// Column names of the medical examination dataset
const (
	ColID          = "id"
	ColAge         = "age"
	ColSex         = "sex"
	ColHeight      = "height"
	ColWeight      = "weight"
	ColSystolic    = "ap_hi"
	ColDiastolic   = "ap_lo"
	ColCholesterol = "cholesterol"
	ColGlucose     = "gluc"
	ColSmoke       = "smoke"
	ColAlcohol     = "alco"
	ColActive      = "active"
	ColCardio      = "cardio"

	// Derived
	ColBMI        = "BMI"
	ColOverweight = "overweight"
)

// Long-form column names
const (
	ColVariable = "variable"
	ColValue    = "value"
)

// OverweightThreshold is the BMI above which a patient is flagged overweight
const OverweightThreshold = 25.0

// Indicators are the binary health indicators reshaped into long form
var Indicators = []string{
	ColCholesterol,
	ColGlucose,
	ColSmoke,
	ColAlcohol,
	ColActive,
	ColOverweight,
}

// RequiredColumns must be present in the raw input
var RequiredColumns = []string{
	ColHeight,
	ColWeight,
	ColSystolic,
	ColDiastolic,
	ColCholesterol,
	ColGlucose,
	ColSmoke,
	ColAlcohol,
	ColActive,
	ColCardio,
}
