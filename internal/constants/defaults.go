package constants

const (
	DefaultMotto       = "Keep going, a little every day!"
	DefaultWindowStart = "08:00"
	DefaultWindowEnd   = "22:00"

	// DefaultTemplateTitle is used for template items created without a title
	DefaultTemplateTitle = "New task"

	CategoryStudy   = "Study"
	CategoryFitness = "Fitness"
	CategoryLife    = "Life"
	CategoryOther   = "Other"

	// MakeUpLookbackDays is how many days (today included) the make-up picker offers
	MakeUpLookbackDays = 7
)

// Categories lists the task categories offered by the forms.
var Categories = []string{CategoryStudy, CategoryFitness, CategoryLife, CategoryOther}

// DefaultRequiredWeekdays is the required-weekday mask of a fresh account, Sunday first.
var DefaultRequiredWeekdays = [7]bool{true, true, true, true, true, false, false}

// DefaultStatsWindows are the trailing windows shown on the statistics views.
var DefaultStatsWindows = []int{7, 30, 90}

// DefaultTemplateHorizons are the quick "apply template" horizons.
var DefaultTemplateHorizons = []int{7, 30}
