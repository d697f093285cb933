package render

import (
	"archive/zip"
	"bytes"
	"strconv"
	"strings"

	"cvgen-backend/cv/model"
	"cvgen-backend/cv/registry"
	"cvgen-backend/cv/style"
)

const wmlNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// Docx renders the selected sections into a Word document: the same section
// plan as the other targets, expressed as WordprocessingML paragraphs and
// tables and packaged as an OOXML zip.
func Docx(m *model.AggregateModel, sel model.Selection, cfg style.StyleConfig) ([]byte, error) {
	body := wEl("body")
	for _, ps := range plan(m, sel) {
		switch ps.def.Layout {
		case registry.LayoutProfile:
			body.Children = append(body.Children, docxProfile(ps.def, m.Subject, cfg)...)
		case registry.LayoutTable:
			body.Children = append(body.Children, docxTable(ps.def, ps.records, cfg)...)
		case registry.LayoutList:
			body.Children = append(body.Children, docxList(ps.def, ps.records, cfg)...)
		}
	}
	body.Children = append(body.Children, wEl("sectPr"))

	if err := validateBodyStructure(body); err != nil {
		return nil, err
	}

	fragment, err := encodeXMLFragment([]*xmlNode{body})
	if err != nil {
		return nil, err
	}

	var documentXML strings.Builder
	documentXML.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	documentXML.WriteString(`<w:document xmlns:w="` + wmlNamespace + `">`)
	documentXML.WriteString(fragment)
	documentXML.WriteString(`</w:document>`)

	return packageDocx(documentXML.String())
}

func docxProfile(def registry.Section, subject model.Subject, cfg style.StyleConfig) []*xmlNode {
	out := []*xmlNode{
		docxSectionTitle(def.Title, cfg),
		paragraph("center", run(cfg.For(style.RoleName), subject.Name)),
	}
	if subject.Designation != "" {
		out = append(out, paragraph("center", run(cfg.For(style.RoleDesignation), subject.Designation)))
	}
	if line := affiliationLine(subject); line != "" {
		out = append(out, paragraph("center", run(cfg.For(style.RoleDesignation), line)))
	}
	if line := contactLine(subject); line != "" {
		out = append(out, paragraph("center", run(cfg.For(style.RoleContact), line)))
	}
	return out
}

func docxSectionTitle(title string, cfg style.StyleConfig) *xmlNode {
	rs := cfg.For(style.RoleSectionTitle)
	return paragraph("", run(rs, strings.ToUpper(title)))
}

func docxTable(def registry.Section, records []model.DisplayRecord, cfg style.StyleConfig) []*xmlNode {
	out := []*xmlNode{docxSectionTitle(def.Title, cfg)}

	table := wEl("tbl", tableProps())

	headerStyle := cfg.For(style.RoleTableHeader)
	head := wEl("tr", tableCell(headerStyle, "Sr. No."))
	for _, attr := range def.Attributes {
		head.Children = append(head.Children, tableCell(headerStyle, attr.Label))
	}
	table.Children = append(table.Children, head)

	cellStyle := cfg.For(style.RoleTableCell)
	for i, rec := range records {
		row := wEl("tr", tableCell(cellStyle, strconv.Itoa(i+1)))
		for _, attr := range def.Attributes {
			row.Children = append(row.Children, tableCell(cellStyle, rec[attr.Attr]))
		}
		table.Children = append(table.Children, row)
	}

	// Word requires a trailing paragraph after a table at body level.
	return append(out, table, wEl("p"))
}

func docxList(def registry.Section, records []model.DisplayRecord, cfg style.StyleConfig) []*xmlNode {
	out := []*xmlNode{docxSectionTitle(def.Title, cfg)}

	for i, rec := range records {
		title := rec[def.TitleAttr]
		if def.Numbered {
			title = strconv.Itoa(i+1) + ". " + title
		}
		entry := paragraph("", run(cfg.For(style.RoleItemTitle), title))
		if def.BadgeAttr != "" {
			if badge := rec[def.BadgeAttr]; badge != "" {
				entry.Children = append(entry.Children, run(cfg.For(style.RoleBadge), "  ["+badge+"]"))
			}
		}
		out = append(out, entry)

		if meta := metaLine(def, rec); meta != "" {
			out = append(out, paragraph("", run(cfg.For(style.RoleMeta), meta)))
		}
	}
	return out
}

func paragraph(align string, runs ...*xmlNode) *xmlNode {
	p := wEl("p")
	if align != "" {
		p.Children = append(p.Children, wEl("pPr", wVal("jc", align)))
	}
	p.Children = append(p.Children, runs...)
	return p
}

// run builds a w:r carrying the properties the standalone descriptor maps
// onto WordprocessingML: weight, style, size, and color.
func run(rs style.RoleStyle, text string) *xmlNode {
	r := wEl("r")
	if props := runProps(rs.Standalone); props != nil {
		r.Children = append(r.Children, props)
	}
	r.Children = append(r.Children, textEl(text))
	return r
}

func runProps(props style.Props) *xmlNode {
	rPr := wEl("rPr")
	if props["font-weight"] == "bold" {
		rPr.Children = append(rPr.Children, wEl("b"))
	}
	if props["font-style"] == "italic" {
		rPr.Children = append(rPr.Children, wEl("i"))
	}
	if sz := halfPoints(props["font-size"]); sz > 0 {
		rPr.Children = append(rPr.Children, wVal("sz", strconv.Itoa(sz)))
	}
	if color := hexColor(props["color"]); color != "" {
		rPr.Children = append(rPr.Children, wVal("color", color))
	}
	if len(rPr.Children) == 0 {
		return nil
	}
	return rPr
}

// halfPoints converts a pixel size to Word half-points (1px = 0.75pt).
func halfPoints(fontSize string) int {
	px := strings.TrimSuffix(strings.TrimSpace(fontSize), "px")
	if px == "" || px == fontSize {
		return 0
	}
	value, err := strconv.Atoi(px)
	if err != nil || value <= 0 {
		return 0
	}
	return value * 3 / 2
}

func hexColor(color string) string {
	if !strings.HasPrefix(color, "#") || len(color) != 7 {
		return ""
	}
	return strings.ToUpper(color[1:])
}

func tableProps() *xmlNode {
	borders := wEl("tblBorders")
	for _, side := range []string{"top", "left", "bottom", "right", "insideH", "insideV"} {
		borders.Children = append(borders.Children, wElAttr(side, map[string]string{
			"w:val": "single",
			"w:sz":  "4",
		}))
	}
	return wEl("tblPr",
		wElAttr("tblW", map[string]string{"w:w": "5000", "w:type": "pct"}),
		borders,
	)
}

func tableCell(rs style.RoleStyle, text string) *xmlNode {
	return wEl("tc",
		wEl("tcPr", wElAttr("tcW", map[string]string{"w:w": "0", "w:type": "auto"})),
		paragraph("", run(rs, text)),
	)
}

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
  <Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>
</Types>`

const rootRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

const documentRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>
</Relationships>`

const stylesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:docDefaults>
    <w:rPrDefault>
      <w:rPr>
        <w:rFonts w:ascii="Calibri" w:hAnsi="Calibri"/>
        <w:sz w:val="22"/>
      </w:rPr>
    </w:rPrDefault>
  </w:docDefaults>
</w:styles>`

func packageDocx(documentXML string) ([]byte, error) {
	var output bytes.Buffer
	writer := zip.NewWriter(&output)

	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", rootRelsXML},
		{"word/_rels/document.xml.rels", documentRelsXML},
		{"word/styles.xml", stylesXML},
		{"word/document.xml", documentXML},
	}
	for _, part := range parts {
		dst, err := writer.Create(part.name)
		if err != nil {
			return nil, err
		}
		if _, err := dst.Write([]byte(part.content)); err != nil {
			return nil, err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}
	return output.Bytes(), nil
}
