package render

import (
	"html"
	"strconv"
	"strings"

	"cvgen-backend/cv/model"
	"cvgen-backend/cv/registry"
	"cvgen-backend/cv/style"
)

// Print renders the selected sections as one standalone HTML document.
// Every style is inlined from the standalone descriptor and every
// interpolated value is escaped, so the string is safe to hand to a print
// surface or a headless browser as-is.
func Print(m *model.AggregateModel, sel model.Selection, cfg style.StyleConfig) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>")
	if m != nil {
		b.WriteString(html.EscapeString("CV - " + m.Subject.Name))
	}
	b.WriteString("</title>\n</head>\n<body style=\"margin: 24px;\">\n")

	for _, ps := range plan(m, sel) {
		switch ps.def.Layout {
		case registry.LayoutProfile:
			printProfile(&b, m.Subject, cfg)
		case registry.LayoutTable:
			printTable(&b, ps.def, ps.records, cfg)
		case registry.LayoutList:
			printList(&b, ps.def, ps.records, cfg)
		}
	}

	b.WriteString("</body>\n</html>\n")
	return b.String()
}

func openTag(b *strings.Builder, tag string, rs style.RoleStyle) {
	b.WriteString("<")
	b.WriteString(tag)
	if css := rs.InlineCSS(); css != "" {
		b.WriteString(" style=\"")
		b.WriteString(html.EscapeString(css))
		b.WriteString("\"")
	}
	b.WriteString(">")
}

func styledText(b *strings.Builder, tag string, rs style.RoleStyle, text string) {
	openTag(b, tag, rs)
	b.WriteString(html.EscapeString(text))
	b.WriteString("</")
	b.WriteString(tag)
	b.WriteString(">\n")
}

func printProfile(b *strings.Builder, subject model.Subject, cfg style.StyleConfig) {
	openTag(b, "div", cfg.For(style.RoleHeader))
	b.WriteString("\n")
	styledText(b, "div", cfg.For(style.RoleName), subject.Name)
	if subject.Designation != "" {
		styledText(b, "div", cfg.For(style.RoleDesignation), subject.Designation)
	}
	if line := affiliationLine(subject); line != "" {
		styledText(b, "div", cfg.For(style.RoleDesignation), line)
	}
	if line := contactLine(subject); line != "" {
		styledText(b, "div", cfg.For(style.RoleContact), line)
	}
	b.WriteString("</div>\n")
}

func printTable(b *strings.Builder, def registry.Section, records []model.DisplayRecord, cfg style.StyleConfig) {
	styledText(b, "h2", cfg.For(style.RoleSectionTitle), def.Title)

	openTag(b, "table", cfg.For(style.RoleTable))
	b.WriteString("\n<tr>")
	headerStyle := cfg.For(style.RoleTableHeader)
	openTag(b, "th", headerStyle)
	b.WriteString("Sr. No.</th>")
	for _, attr := range def.Attributes {
		openTag(b, "th", headerStyle)
		b.WriteString(html.EscapeString(attr.Label))
		b.WriteString("</th>")
	}
	b.WriteString("</tr>\n")

	cellStyle := cfg.For(style.RoleTableCell)
	for i, rec := range records {
		b.WriteString("<tr>")
		openTag(b, "td", cellStyle)
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString("</td>")
		for _, attr := range def.Attributes {
			openTag(b, "td", cellStyle)
			b.WriteString(html.EscapeString(rec[attr.Attr]))
			b.WriteString("</td>")
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("</table>\n")
}

func printList(b *strings.Builder, def registry.Section, records []model.DisplayRecord, cfg style.StyleConfig) {
	styledText(b, "h2", cfg.For(style.RoleSectionTitle), def.Title)

	for i, rec := range records {
		openTag(b, "div", cfg.For(style.RoleItem))
		b.WriteString("\n")

		title := rec[def.TitleAttr]
		if def.Numbered {
			title = strconv.Itoa(i+1) + ". " + title
		}
		styledText(b, "span", cfg.For(style.RoleItemTitle), title)

		if def.BadgeAttr != "" {
			if badge := rec[def.BadgeAttr]; badge != "" {
				b.WriteString(" ")
				styledText(b, "span", cfg.For(style.RoleBadge), badge)
			}
		}

		if meta := metaLine(def, rec); meta != "" {
			styledText(b, "div", cfg.For(style.RoleMeta), meta)
		}
		b.WriteString("</div>\n")
	}
}
