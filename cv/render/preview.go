package render

import (
	"strconv"

	"cvgen-backend/cv/model"
	"cvgen-backend/cv/registry"
	"cvgen-backend/cv/style"
)

// PreviewNode is one element of the interactive preview tree. The client
// mounts it directly; Style carries the interactive descriptor for the
// node's role so the tree needs no further lookups.
type PreviewNode struct {
	Tag      string         `json:"tag"`
	Role     style.Role     `json:"role,omitempty"`
	Style    style.Props    `json:"style,omitempty"`
	Text     string         `json:"text,omitempty"`
	Children []*PreviewNode `json:"children,omitempty"`
}

// Preview renders the selected sections as a preview node tree. Empty
// sections other than personal emit nothing.
func Preview(m *model.AggregateModel, sel model.Selection, cfg style.StyleConfig) []*PreviewNode {
	sections := plan(m, sel)
	out := make([]*PreviewNode, 0, len(sections))
	for _, ps := range sections {
		switch ps.def.Layout {
		case registry.LayoutProfile:
			out = append(out, previewProfile(m.Subject, cfg))
		case registry.LayoutTable:
			out = append(out, previewTable(ps.def, ps.records, cfg))
		case registry.LayoutList:
			out = append(out, previewList(ps.def, ps.records, cfg))
		}
	}
	return out
}

func node(tag string, role style.Role, cfg style.StyleConfig, text string) *PreviewNode {
	return &PreviewNode{Tag: tag, Role: role, Style: cfg.For(role).Interactive, Text: text}
}

func previewProfile(subject model.Subject, cfg style.StyleConfig) *PreviewNode {
	header := node("div", style.RoleHeader, cfg, "")
	header.Children = append(header.Children, node("div", style.RoleName, cfg, subject.Name))
	if subject.Designation != "" {
		header.Children = append(header.Children, node("div", style.RoleDesignation, cfg, subject.Designation))
	}
	if line := affiliationLine(subject); line != "" {
		header.Children = append(header.Children, node("div", style.RoleDesignation, cfg, line))
	}
	if line := contactLine(subject); line != "" {
		header.Children = append(header.Children, node("div", style.RoleContact, cfg, line))
	}
	return header
}

func previewTable(def registry.Section, records []model.DisplayRecord, cfg style.StyleConfig) *PreviewNode {
	section := &PreviewNode{Tag: "section"}
	section.Children = append(section.Children, node("h2", style.RoleSectionTitle, cfg, def.Title))

	table := node("table", style.RoleTable, cfg, "")

	head := &PreviewNode{Tag: "tr"}
	head.Children = append(head.Children, node("th", style.RoleTableHeader, cfg, "Sr. No."))
	for _, attr := range def.Attributes {
		head.Children = append(head.Children, node("th", style.RoleTableHeader, cfg, attr.Label))
	}
	table.Children = append(table.Children, head)

	for i, rec := range records {
		row := &PreviewNode{Tag: "tr"}
		row.Children = append(row.Children, node("td", style.RoleTableCell, cfg, strconv.Itoa(i+1)))
		for _, attr := range def.Attributes {
			row.Children = append(row.Children, node("td", style.RoleTableCell, cfg, rec[attr.Attr]))
		}
		table.Children = append(table.Children, row)
	}

	section.Children = append(section.Children, table)
	return section
}

func previewList(def registry.Section, records []model.DisplayRecord, cfg style.StyleConfig) *PreviewNode {
	section := &PreviewNode{Tag: "section"}
	section.Children = append(section.Children, node("h2", style.RoleSectionTitle, cfg, def.Title))

	for i, rec := range records {
		item := node("div", style.RoleItem, cfg, "")

		title := rec[def.TitleAttr]
		if def.Numbered {
			title = strconv.Itoa(i+1) + ". " + title
		}
		item.Children = append(item.Children, node("span", style.RoleItemTitle, cfg, title))

		if def.BadgeAttr != "" {
			if badge := rec[def.BadgeAttr]; badge != "" {
				item.Children = append(item.Children, node("span", style.RoleBadge, cfg, badge))
			}
		}

		if meta := metaLine(def, rec); meta != "" {
			item.Children = append(item.Children, node("div", style.RoleMeta, cfg, meta))
		}
		section.Children = append(section.Children, item)
	}
	return section
}

// metaLine lists every remaining attribute as "Label: value" pairs in schema
// order, skipping the title and badge attributes that already rendered.
func metaLine(def registry.Section, rec model.DisplayRecord) string {
	parts := make([]string, 0, len(def.Attributes))
	for _, attr := range def.Attributes {
		if attr.Attr == def.TitleAttr || attr.Attr == def.BadgeAttr {
			continue
		}
		parts = append(parts, attr.Label+": "+rec[attr.Attr])
	}
	return joinParts(parts, "  |  ")
}
