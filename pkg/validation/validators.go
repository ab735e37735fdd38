package validation

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	jobTypes = map[string]bool{
		"":           true, // unset
		"fulltime":   true,
		"parttime":   true,
		"contract":   true,
		"internship": true,
	}

	fileTypes = map[string]bool{
		"resume":       true,
		"cover_letter": true,
	}

	searchSites = map[string]bool{
		"indeed":        true,
		"linkedin":      true,
		"zip_recruiter": true,
		"glassdoor":     true,
		"google":        true,
	}
)

// New returns a validator with the custom tags registered.
func New() *validator.Validate {
	v := validator.New()
	RegisterValidators(v)
	return v
}

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("job_type", JobType)
	_ = v.RegisterValidation("file_type", FileType)
	_ = v.RegisterValidation("search_site", SearchSite)
	_ = v.RegisterValidation("notblank", NotBlank)
}

// JobType accepts the employment types and the empty (unset) value.
func JobType(fl validator.FieldLevel) bool {
	return jobTypes[fl.Field().String()]
}

func FileType(fl validator.FieldLevel) bool {
	return fileTypes[fl.Field().String()]
}

func SearchSite(fl validator.FieldLevel) bool {
	return searchSites[fl.Field().String()]
}

// NotBlank rejects strings made only of whitespace.
func NotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
