package render

import (
	"strings"
	"text/template"

	"resume-builder/resume/model"
)

var textTemplate = template.Must(template.New("resume").Parse(`
Name: {{.FullName}}
Email: {{.Email}}
Phone: {{.Phone}}
Education: {{.Education}}
{{- if .Summary}}

Professional Summary:
{{.Summary}}
{{- end}}

Experience:
{{.Experience}}

Skills:
{{.Skills}}
`))

// RenderText renders the plain-text preview shown next to the download link.
func RenderText(resume model.Resume) string {
	resume.Summary = strings.TrimSpace(resume.Summary)
	resume.Skills = strings.TrimSpace(resume.Skills)
	var b strings.Builder
	if err := textTemplate.Execute(&b, resume); err != nil {
		return ""
	}
	return b.String()
}
