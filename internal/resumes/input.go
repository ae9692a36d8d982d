package resumes

import (
	"fmt"
	"strings"

	"resume-builder/resume/model"
)

// FormInput is what the user submits, either as a form post or as JSON.
type FormInput struct {
	FullName        string `form:"full_name" json:"fullName"`
	Email           string `form:"email" json:"email"`
	Phone           string `form:"phone" json:"phone"`
	Education       string `form:"education" json:"education"`
	Experience      string `form:"experience" json:"experience"`
	Skills          string `form:"skills" json:"skills"`
	GenerateSummary bool   `form:"generate_summary" json:"generateSummary"`
}

// fieldLabels lists the required fields in form order.
var fieldLabels = []struct {
	label string
	value func(FormInput) string
}{
	{"Full Name", func(in FormInput) string { return in.FullName }},
	{"Email", func(in FormInput) string { return in.Email }},
	{"Phone Number", func(in FormInput) string { return in.Phone }},
	{"Education", func(in FormInput) string { return in.Education }},
	{"Work Experience", func(in FormInput) string { return in.Experience }},
	{"Skills", func(in FormInput) string { return in.Skills }},
}

// Missing returns the labels of required fields that are empty or whitespace.
func (in FormInput) Missing() []string {
	var missing []string
	for _, f := range fieldLabels {
		if strings.TrimSpace(f.value(in)) == "" {
			missing = append(missing, f.label)
		}
	}
	return missing
}

// Validate reports ErrMissingFields, naming every empty field.
func (in FormInput) Validate() error {
	missing := in.Missing()
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("%w: missing %s", ErrMissingFields, strings.Join(missing, ", "))
}

func (in FormInput) resume(experience, summary string) model.Resume {
	return model.Resume{
		FullName:   strings.TrimSpace(in.FullName),
		Email:      strings.TrimSpace(in.Email),
		Phone:      strings.TrimSpace(in.Phone),
		Education:  strings.TrimSpace(in.Education),
		Summary:    summary,
		Experience: experience,
		Skills:     strings.TrimSpace(in.Skills),
	}
}
