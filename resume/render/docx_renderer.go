package render

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"time"

	"resume-builder/resume/model"
)

const (
	// MimeType is the content type of the rendered document.
	MimeType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	// FileName is the download name offered for the rendered document.
	FileName = "resume.docx"
)

const (
	xmlHeader    = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"
	wmlNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
)

const contentTypesXML = xmlHeader +
	`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
	`<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>` +
	`</Types>`

const packageRelsXML = xmlHeader +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`</Relationships>`

const documentRelsXML = xmlHeader +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>` +
	`</Relationships>`

// RenderResume renders a Resume into a DOCX byte slice.
func RenderResume(resume model.Resume) ([]byte, error) {
	if err := resume.Validate(); err != nil {
		return nil, err
	}

	documentXML := renderDocumentXML(resume)
	if err := validateDocumentXML(documentXML); err != nil {
		return nil, err
	}

	parts := []struct {
		name    string
		content []byte
	}{
		{"[Content_Types].xml", []byte(contentTypesXML)},
		{"_rels/.rels", []byte(packageRelsXML)},
		{"word/document.xml", documentXML},
		{"word/styles.xml", stylesXML()},
		{"word/_rels/document.xml.rels", []byte(documentRelsXML)},
	}

	var output bytes.Buffer
	writer := zip.NewWriter(&output)
	for _, part := range parts {
		if err := writeZipFile(writer, part.name, part.content); err != nil {
			return nil, fmt.Errorf("write %s: %w", part.name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}
	return output.Bytes(), nil
}

func renderDocumentXML(resume model.Resume) []byte {
	var b bytes.Buffer
	b.WriteString(xmlHeader)
	b.WriteString(`<w:document xmlns:w="` + wmlNamespace + `"><w:body>`)

	writeParagraph(&b, styleTitle, true, resume.FullName)
	writeParagraph(&b, "", true, fmt.Sprintf("Email: %s\nPhone: %s", resume.Email, resume.Phone))

	if summary := strings.TrimSpace(resume.Summary); summary != "" {
		writeParagraph(&b, styleHeading1, false, "Professional Summary")
		writeParagraph(&b, "", false, summary)
	}

	writeParagraph(&b, styleHeading1, false, "Education")
	writeParagraph(&b, "", false, resume.Education)

	writeParagraph(&b, styleHeading1, false, "Experience")
	writeParagraph(&b, "", false, resume.Experience)

	writeParagraph(&b, styleHeading1, false, "Skills")
	for _, line := range resume.SkillLines() {
		writeParagraph(&b, "", false, "- "+line)
	}

	b.WriteString(`<w:sectPr><w:pgSz w:w="12240" w:h="15840"/>` +
		`<w:pgMar w:top="1440" w:right="1440" w:bottom="1440" w:left="1440" w:header="720" w:footer="720" w:gutter="0"/></w:sectPr>`)
	b.WriteString(`</w:body></w:document>`)
	return b.Bytes()
}

// writeParagraph emits one w:p. Newlines in text become w:br elements within a single run.
func writeParagraph(b *bytes.Buffer, style string, centered bool, text string) {
	b.WriteString("<w:p>")
	if style != "" || centered {
		b.WriteString("<w:pPr>")
		if style != "" {
			fmt.Fprintf(b, `<w:pStyle w:val="%s"/>`, style)
		}
		if centered {
			b.WriteString(`<w:jc w:val="center"/>`)
		}
		b.WriteString("</w:pPr>")
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	b.WriteString("<w:r>")
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			b.WriteString("<w:br/>")
		}
		b.WriteString(`<w:t xml:space="preserve">`)
		_ = xml.EscapeText(b, []byte(line))
		b.WriteString("</w:t>")
	}
	b.WriteString("</w:r></w:p>")
}

func writeZipFile(writer *zip.Writer, name string, content []byte) error {
	header := &zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	dst, err := writer.CreateHeader(header)
	if err != nil {
		return err
	}
	_, err = dst.Write(content)
	return err
}

func validateDocumentXML(content []byte) error {
	decoder := xml.NewDecoder(bytes.NewReader(content))
	for {
		_, err := decoder.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("document.xml parse failed: %w", err)
		}
	}
}
