// Package render turns one aggregate CV model into the three output
// targets: an interactive preview node tree, a standalone print HTML
// string, and a Word document. All three walk the same section plan, so a
// record carries the same fields in the same order everywhere; only the
// layout primitives differ per target.
package render

import (
	"cvgen-backend/cv/model"
	"cvgen-backend/cv/registry"
)

// plannedSection pairs a section definition with the records it will render.
type plannedSection struct {
	def     registry.Section
	records []model.DisplayRecord
}

// plan walks categories in fixed document order and keeps only the ones
// that are selected and non-empty. The personal section is exempt from the
// empty check: it renders whenever the subject is present, since it anchors
// the document.
func plan(m *model.AggregateModel, sel model.Selection) []plannedSection {
	if m == nil {
		return nil
	}
	out := make([]plannedSection, 0, len(sel))
	for _, def := range registry.Sections() {
		if !sel.Has(def.Category) {
			continue
		}
		records := m.RecordsFor(def.Category)
		if def.Layout == registry.LayoutProfile {
			if m.Subject.Name == "" {
				continue
			}
			out = append(out, plannedSection{def: def, records: records})
			continue
		}
		if len(records) == 0 {
			continue
		}
		out = append(out, plannedSection{def: def, records: records})
	}
	return out
}

// contactLine flattens the subject's contact fields into one separator-joined
// line, skipping empties.
func contactLine(s model.Subject) string {
	parts := make([]string, 0, 4)
	for _, p := range []string{s.Email, s.Phone, s.Address, orcidLabel(s.ORCID)} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return joinParts(parts, "  |  ")
}

func orcidLabel(orcid string) string {
	if orcid == "" {
		return ""
	}
	return "ORCID: " + orcid
}

func joinParts(parts []string, sep string) string {
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	}
	out := parts[0]
	for _, p := range parts[1:] {
		out += sep + p
	}
	return out
}

// affiliationLine combines department and institution for the header block.
func affiliationLine(s model.Subject) string {
	parts := make([]string, 0, 2)
	if s.Department != "" {
		parts = append(parts, s.Department)
	}
	if s.Institution != "" {
		parts = append(parts, s.Institution)
	}
	return joinParts(parts, ", ")
}
