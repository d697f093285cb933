package style

import (
	"strings"
	"testing"
)

func TestValidateAllTemplatesComplete(t *testing.T) {
	if err := Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestResolveKnownTemplates(t *testing.T) {
	for _, tmpl := range AllTemplates {
		cfg, err := Resolve(tmpl)
		if err != nil {
			t.Fatalf("Resolve(%s): %v", tmpl, err)
		}
		if cfg.Template != tmpl {
			t.Fatalf("Resolve(%s) returned template %s", tmpl, cfg.Template)
		}
		for _, role := range allRoles {
			rs := cfg.For(role)
			if len(rs.Interactive) == 0 || len(rs.Standalone) == 0 {
				t.Fatalf("template %s role %s incomplete", tmpl, role)
			}
		}
	}
}

func TestResolveUnknownTemplateFails(t *testing.T) {
	if _, err := Resolve(Template("corporate")); err == nil {
		t.Fatal("expected error for unknown template")
	}
}

func TestInlineCSSDeterministic(t *testing.T) {
	rs := RoleStyle{Standalone: Props{
		"font-weight": "bold",
		"color":       "#14532d",
		"border":      "1px solid #ccc",
	}}
	want := "border: 1px solid #ccc; color: #14532d; font-weight: bold;"
	for i := 0; i < 10; i++ {
		if got := rs.InlineCSS(); got != want {
			t.Fatalf("InlineCSS = %q, want %q", got, want)
		}
	}
}

func TestTemplatesDifferInAccent(t *testing.T) {
	seen := map[string]Template{}
	for _, tmpl := range AllTemplates {
		cfg, err := Resolve(tmpl)
		if err != nil {
			t.Fatalf("Resolve(%s): %v", tmpl, err)
		}
		accent := cfg.For(RoleName).Standalone["color"]
		if accent == "" || !strings.HasPrefix(accent, "#") {
			t.Fatalf("template %s has no accent color", tmpl)
		}
		if prev, dup := seen[accent]; dup {
			t.Fatalf("templates %s and %s share accent %s", prev, tmpl, accent)
		}
		seen[accent] = tmpl
	}
}
