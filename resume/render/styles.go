package render

import (
	"fmt"
	"strings"
)

// RunStyle captures the run formatting applied by a paragraph style.
type RunStyle struct {
	Bold   bool
	Italic bool
	Size   int
	Color  string
}

const (
	HeadingColor = "1F2937"
	NameColor    = "111111"
	HeadingSize  = 28
	NameSize     = 48
	BodySize     = 22
)

const (
	styleTitle    = "Title"
	styleHeading1 = "Heading1"
)

// StyleMap centralizes the formatting for key resume elements.
var StyleMap = map[string]RunStyle{
	"name": {
		Bold:  true,
		Size:  NameSize,
		Color: NameColor,
	},
	"sectionHeading": {
		Bold:  true,
		Size:  HeadingSize,
		Color: HeadingColor,
	},
	"body": {
		Size: BodySize,
	},
}

func (s RunStyle) runProperties() string {
	var b strings.Builder
	b.WriteString("<w:rPr>")
	if s.Bold {
		b.WriteString("<w:b/>")
	}
	if s.Italic {
		b.WriteString("<w:i/>")
	}
	if s.Color != "" {
		fmt.Fprintf(&b, `<w:color w:val="%s"/>`, s.Color)
	}
	if s.Size > 0 {
		fmt.Fprintf(&b, `<w:sz w:val="%d"/>`, s.Size)
	}
	b.WriteString("</w:rPr>")
	return b.String()
}

func stylesXML() []byte {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<w:styles xmlns:w="` + wmlNamespace + `">`)
	b.WriteString(`<w:docDefaults><w:rPrDefault>` + StyleMap["body"].runProperties() + `</w:rPrDefault></w:docDefaults>`)
	b.WriteString(`<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/><w:qFormat/>` +
		`<w:pPr><w:spacing w:after="120"/></w:pPr></w:style>`)
	fmt.Fprintf(&b, `<w:style w:type="paragraph" w:styleId="%s"><w:name w:val="Title"/><w:basedOn w:val="Normal"/>`+
		`<w:next w:val="Normal"/><w:qFormat/><w:pPr><w:spacing w:after="240"/></w:pPr>%s</w:style>`,
		styleTitle, StyleMap["name"].runProperties())
	fmt.Fprintf(&b, `<w:style w:type="paragraph" w:styleId="%s"><w:name w:val="heading 1"/><w:basedOn w:val="Normal"/>`+
		`<w:next w:val="Normal"/><w:qFormat/><w:pPr><w:keepNext/><w:spacing w:before="240" w:after="80"/><w:outlineLvl w:val="0"/></w:pPr>%s</w:style>`,
		styleHeading1, StyleMap["sectionHeading"].runProperties())
	b.WriteString(`</w:styles>`)
	return []byte(b.String())
}
