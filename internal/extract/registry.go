package extract

// Category identifies one of the four top-level record groupings.
type Category string

const (
	CategoryHealth   Category = "health"
	CategorySleep    Category = "sleep"
	CategoryActivity Category = "activity"
	CategoryWorkout  Category = "workout"
)

// Categories lists the groupings in their fixed processing order.
var Categories = []Category{CategoryHealth, CategorySleep, CategoryActivity, CategoryWorkout}

// AggKind selects the aggregation applied when collapsing a metric's raw
// samples into one value per day.
type AggKind string

const (
	AggMean AggKind = "mean"
	AggSum  AggKind = "sum"
)

// MetricSpec describes one extractable metric: which category it belongs to,
// the source type code it matches in the export, the human label it is
// emitted under, and its per-day aggregation. New metrics are new table rows,
// not new types.
type MetricSpec struct {
	Category Category
	TypeCode string
	Label    string
	Agg      AggKind
}

const (
	sleepAnalysisCode = "HKCategoryTypeIdentifierSleepAnalysis"

	// Labels reused across packages.
	LabelSleepAnalysis = "Sleep Analysis"
	LabelWorkout       = "Workout"
)

// sleepStageCodes is the closed set of recognized sleep stage values.
// Anything else on a sleep-analysis record (e.g. InBed) is discarded.
var sleepStageCodes = map[string]bool{
	"HKCategoryValueSleepAnalysisAsleepCore":        true,
	"HKCategoryValueSleepAnalysisAsleepDeep":        true,
	"HKCategoryValueSleepAnalysisAsleepREM":         true,
	"HKCategoryValueSleepAnalysisAsleepUnspecified": true,
	"HKCategoryValueSleepAnalysisAwake":             true,
}

// registry is the fixed dispatch table of extractors, grouped by category.
// Health metrics are point-in-time rates and levels, so they aggregate by
// mean; activity counts, durations and energy aggregate by sum, except
// Physical Effort which is a level.
var registry = map[Category][]MetricSpec{
	CategoryHealth: {
		{CategoryHealth, "HKQuantityTypeIdentifierRestingHeartRate", "Resting Heartrate", AggMean},
		{CategoryHealth, "HKQuantityTypeIdentifierVO2Max", "VO2 Max", AggMean},
		{CategoryHealth, "HKQuantityTypeIdentifierHeartRateRecoveryOneMinute", "Heartrate Recovery", AggMean},
		{CategoryHealth, "HKQuantityTypeIdentifierWalkingStepLength", "Walking Step Length", AggMean},
		{CategoryHealth, "HKQuantityTypeIdentifierRespiratoryRate", "Respiratory Rate", AggMean},
		{CategoryHealth, "HKQuantityTypeIdentifierWalkingSpeed", "Walking Speed", AggMean},
		{CategoryHealth, "HKQuantityTypeIdentifierStairAscentSpeed", "Stair Ascent Speed", AggMean},
		{CategoryHealth, "HKQuantityTypeIdentifierWalkingHeartRateAverage", "Walking Heartrate", AggMean},
		{CategoryHealth, "HKQuantityTypeIdentifierRunningStrideLength", "Running Stride Length", AggMean},
		{CategoryHealth, "HKQuantityTypeIdentifierRunningGroundContactTime", "Running Ground Contact Time", AggMean},
		{CategoryHealth, "HKQuantityTypeIdentifierRunningVerticalOscillation", "Running Vertical Oscillation", AggMean},
		{CategoryHealth, "HKQuantityTypeIdentifierRunningSpeed", "Running Speed", AggMean},
		{CategoryHealth, "HKQuantityTypeIdentifierRunningPower", "Running Power", AggMean},
	},
	CategorySleep: {
		{CategorySleep, sleepAnalysisCode, LabelSleepAnalysis, AggSum},
	},
	CategoryActivity: {
		{CategoryActivity, "HKQuantityTypeIdentifierActiveEnergyBurned", "Energy Burned", AggSum},
		{CategoryActivity, "HKQuantityTypeIdentifierAppleExerciseTime", "Exercise Time", AggSum},
		{CategoryActivity, "HKQuantityTypeIdentifierPhysicalEffort", "Physical Effort", AggMean},
		{CategoryActivity, "HKQuantityTypeIdentifierStepCount", "Step Count", AggSum},
		{CategoryActivity, "HKQuantityTypeIdentifierFlightsClimbed", "Flights Climbed", AggSum},
	},
	CategoryWorkout: {
		{CategoryWorkout, "", LabelWorkout, AggSum},
	},
}

// Specs returns the extractor table for one category.
func Specs(category Category) []MetricSpec {
	return registry[category]
}

// Aggregations returns the label -> aggregation mapping for one category.
// Cleaners receive this explicitly rather than reaching into the registry.
func Aggregations(category Category) map[string]AggKind {
	m := make(map[string]AggKind, len(registry[category]))
	for _, spec := range registry[category] {
		m[spec.Label] = spec.Agg
	}
	return m
}

// RecognizedSleepStage reports whether a raw stage code belongs to the
// closed stage set.
func RecognizedSleepStage(code string) bool {
	return sleepStageCodes[code]
}
