package style

import (
	"fmt"
	"sort"
	"strings"
)

// Template is one of the fixed visual styles a CV can be exported with.
type Template string

const (
	TemplateClassic  Template = "classic"
	TemplateModern   Template = "modern"
	TemplateAcademic Template = "academic"
	TemplateElegant  Template = "elegant"
)

// AllTemplates lists every registered template.
var AllTemplates = []Template{TemplateClassic, TemplateModern, TemplateAcademic, TemplateElegant}

// Role identifies a visual role a renderer asks styling for. The same role
// keys index both descriptor flavors, so renderers are written once against
// "style for role X".
type Role string

const (
	RoleHeader       Role = "header"
	RoleName         Role = "name"
	RoleDesignation  Role = "designation"
	RoleContact      Role = "contact"
	RoleSectionTitle Role = "sectionTitle"
	RoleItem         Role = "item"
	RoleItemTitle    Role = "itemTitle"
	RoleMeta         Role = "meta"
	RoleTable        Role = "table"
	RoleTableHeader  Role = "tableHeader"
	RoleTableCell    Role = "tableCell"
	RoleBadge        Role = "badge"
)

var allRoles = []Role{
	RoleHeader, RoleName, RoleDesignation, RoleContact, RoleSectionTitle,
	RoleItem, RoleItemTitle, RoleMeta, RoleTable, RoleTableHeader,
	RoleTableCell, RoleBadge,
}

// Props is a flat CSS-like property map. The interactive descriptor hands it
// to the preview client verbatim; the standalone descriptor flattens it into
// an inline style string with no external dependency.
type Props map[string]string

// RoleStyle carries the two parallel descriptors for one visual role.
type RoleStyle struct {
	Interactive Props `json:"interactive"`
	Standalone  Props `json:"standalone"`
}

// InlineCSS renders the standalone descriptor as a deterministic inline
// style string (keys sorted, so output is reproducible byte-for-byte).
func (rs RoleStyle) InlineCSS() string {
	if len(rs.Standalone) == 0 {
		return ""
	}
	keys := make([]string, 0, len(rs.Standalone))
	for k := range rs.Standalone {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(rs.Standalone[k])
		b.WriteByte(';')
	}
	return b.String()
}

// StyleConfig maps every visual role to its RoleStyle for one template.
type StyleConfig struct {
	Template Template           `json:"template"`
	Roles    map[Role]RoleStyle `json:"roles"`
}

// For returns the style for a role. Unknown roles are a programming error;
// registration-time validation guarantees every role is present, so the
// zero value is only reachable from unvalidated hand-built configs.
func (c StyleConfig) For(role Role) RoleStyle {
	return c.Roles[role]
}

// Resolve maps a template id to its style configuration. Unknown ids are an
// error so handlers can reject bad input before any render starts.
func Resolve(t Template) (StyleConfig, error) {
	cfg, ok := registry[t]
	if !ok {
		return StyleConfig{}, fmt.Errorf("unknown template %q", t)
	}
	return cfg, nil
}

// Validate asserts every template defines both descriptors for every role.
// Called once at startup; a gap is a build defect, not a rendering-time
// fallback.
func Validate() error {
	for _, t := range AllTemplates {
		cfg, ok := registry[t]
		if !ok {
			return fmt.Errorf("template %q not registered", t)
		}
		for _, role := range allRoles {
			rs, ok := cfg.Roles[role]
			if !ok {
				return fmt.Errorf("template %q missing role %q", t, role)
			}
			if len(rs.Interactive) == 0 {
				return fmt.Errorf("template %q role %q has no interactive descriptor", t, role)
			}
			if len(rs.Standalone) == 0 {
				return fmt.Errorf("template %q role %q has no standalone descriptor", t, role)
			}
		}
	}
	return nil
}

// palette carries the handful of knobs that distinguish the four templates.
type palette struct {
	accent     string
	text       string
	muted      string
	background string
	headerFont string
	bodyFont   string
	rule       string
}

var palettes = map[Template]palette{
	TemplateClassic: {
		accent:     "#1a1a1a",
		text:       "#222222",
		muted:      "#555555",
		background: "#ffffff",
		headerFont: "Georgia, 'Times New Roman', serif",
		bodyFont:   "Georgia, 'Times New Roman', serif",
		rule:       "1px solid #1a1a1a",
	},
	TemplateModern: {
		accent:     "#0f6abf",
		text:       "#212529",
		muted:      "#6c757d",
		background: "#f8f9fa",
		headerFont: "'Segoe UI', Helvetica, Arial, sans-serif",
		bodyFont:   "'Segoe UI', Helvetica, Arial, sans-serif",
		rule:       "2px solid #0f6abf",
	},
	TemplateAcademic: {
		accent:     "#14532d",
		text:       "#1f2937",
		muted:      "#4b5563",
		background: "#ffffff",
		headerFont: "'Book Antiqua', Palatino, serif",
		bodyFont:   "'Book Antiqua', Palatino, serif",
		rule:       "1px solid #14532d",
	},
	TemplateElegant: {
		accent:     "#7c2d52",
		text:       "#2b2b2b",
		muted:      "#6d6d6d",
		background: "#fdfbf7",
		headerFont: "'Garamond', 'Palatino Linotype', serif",
		bodyFont:   "'Garamond', 'Palatino Linotype', serif",
		rule:       "1px solid #7c2d52",
	},
}

var registry = buildRegistry()

func buildRegistry() map[Template]StyleConfig {
	out := make(map[Template]StyleConfig, len(palettes))
	for t, p := range palettes {
		out[t] = StyleConfig{Template: t, Roles: rolesFor(p)}
	}
	return out
}

// rolesFor derives the full role table from a palette. Interactive and
// standalone descriptors share property values; only their delivery differs.
func rolesFor(p palette) map[Role]RoleStyle {
	both := func(props Props) RoleStyle {
		interactive := make(Props, len(props))
		standalone := make(Props, len(props))
		for k, v := range props {
			interactive[k] = v
			standalone[k] = v
		}
		return RoleStyle{Interactive: interactive, Standalone: standalone}
	}

	return map[Role]RoleStyle{
		RoleHeader: both(Props{
			"background":    p.background,
			"border-bottom": p.rule,
			"padding":       "16px 0",
			"text-align":    "center",
			"font-family":   p.headerFont,
		}),
		RoleName: both(Props{
			"color":       p.accent,
			"font-family": p.headerFont,
			"font-size":   "26px",
			"font-weight": "bold",
		}),
		RoleDesignation: both(Props{
			"color":       p.text,
			"font-family": p.headerFont,
			"font-size":   "15px",
			"font-style":  "italic",
		}),
		RoleContact: both(Props{
			"color":       p.muted,
			"font-family": p.bodyFont,
			"font-size":   "12px",
		}),
		RoleSectionTitle: both(Props{
			"border-bottom":  p.rule,
			"color":          p.accent,
			"font-family":    p.headerFont,
			"font-size":      "16px",
			"font-weight":    "bold",
			"margin":         "18px 0 8px 0",
			"text-transform": "uppercase",
		}),
		RoleItem: both(Props{
			"color":       p.text,
			"font-family": p.bodyFont,
			"font-size":   "13px",
			"margin":      "0 0 6px 0",
		}),
		RoleItemTitle: both(Props{
			"color":       p.text,
			"font-family": p.bodyFont,
			"font-size":   "13px",
			"font-weight": "bold",
		}),
		RoleMeta: both(Props{
			"color":       p.muted,
			"font-family": p.bodyFont,
			"font-size":   "12px",
		}),
		RoleTable: both(Props{
			"border":          "1px solid " + p.muted,
			"border-collapse": "collapse",
			"font-family":     p.bodyFont,
			"width":           "100%",
		}),
		RoleTableHeader: both(Props{
			"background":  p.accent,
			"border":      "1px solid " + p.muted,
			"color":       "#ffffff",
			"font-family": p.bodyFont,
			"font-size":   "12px",
			"font-weight": "bold",
			"padding":     "6px 8px",
			"text-align":  "left",
		}),
		RoleTableCell: both(Props{
			"border":      "1px solid " + p.muted,
			"color":       p.text,
			"font-family": p.bodyFont,
			"font-size":   "12px",
			"padding":     "6px 8px",
			"vertical-align": "top",
		}),
		RoleBadge: both(Props{
			"background":    p.accent,
			"border-radius": "3px",
			"color":         "#ffffff",
			"font-family":   p.bodyFont,
			"font-size":     "11px",
			"font-weight":   "bold",
			"padding":       "2px 6px",
		}),
	}
}
