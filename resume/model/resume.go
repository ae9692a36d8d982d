package model

import (
	"errors"
	"strings"
)

// Resume is the content placed into the generated document.
type Resume struct {
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Education  string `json:"education"`
	Summary    string `json:"summary,omitempty"`
	Experience string `json:"experience"`
	Skills     string `json:"skills"`
}

// Validate checks the fields the renderer cannot do without.
func (r Resume) Validate() error {
	if strings.TrimSpace(r.FullName) == "" {
		return errors.New("fullName is required")
	}
	if strings.TrimSpace(r.Experience) == "" {
		return errors.New("experience is required")
	}
	return nil
}

// SkillLines splits the free-form skills text into one entry per non-empty line.
func (r Resume) SkillLines() []string {
	var out []string
	for _, line := range strings.Split(strings.ReplaceAll(r.Skills, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}
