package render

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"

	"cvgen-backend/cv/model"
	"cvgen-backend/cv/style"
)

func academicConfig(t *testing.T) style.StyleConfig {
	t.Helper()
	cfg, err := style.Resolve(style.TemplateAcademic)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	return cfg
}

func sampleModel() *model.AggregateModel {
	return &model.AggregateModel{
		Subject: model.Subject{
			ID:          "subj-1",
			Name:        "Dr. A B",
			Designation: "Professor",
			Department:  "Electrical Engineering",
			Institution: "IIT Example",
			Email:       "ab@example.edu",
		},
		Records: map[model.Category][]model.DisplayRecord{
			model.CategoryPatents: {
				{
					"title":    "X",
					"level":    "National",
					"status":   "Granted",
					"earnings": "₹ 50,000",
					"date":     "15/01/2023",
				},
			},
			model.CategoryEducation: {
				{"degree": "B.Tech", "specialization": "ECE", "institution": "NIT One", "year": "2001", "division": "First"},
				{"degree": "M.Tech", "specialization": "VLSI", "institution": "IIT Two", "year": "2003", "division": "First"},
				{"degree": "Ph.D.", "specialization": "Antennas", "institution": "IIT Two", "year": "2008", "division": "N/A"},
			},
		},
	}
}

func documentXMLFrom(t *testing.T, docxBytes []byte) string {
	t.Helper()
	reader, err := zip.NewReader(bytes.NewReader(docxBytes), int64(len(docxBytes)))
	if err != nil {
		t.Fatalf("open docx zip: %v", err)
	}
	for _, file := range reader.File {
		if file.Name != "word/document.xml" {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			t.Fatalf("open document.xml: %v", err)
		}
		defer rc.Close()
		content, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("read document.xml: %v", err)
		}
		return string(content)
	}
	t.Fatal("docx has no word/document.xml")
	return ""
}

func TestEmptySectionsSuppressedAcrossTargets(t *testing.T) {
	cfg := academicConfig(t)
	m := sampleModel()
	sel := model.NewSelection([]model.Category{model.CategoryPersonal, model.CategoryAwards})

	nodes := Preview(m, sel, cfg)
	if len(nodes) != 1 {
		t.Fatalf("preview rendered %d sections, want personal only", len(nodes))
	}

	html := Print(m, sel, cfg)
	if strings.Contains(html, "Awards") {
		t.Fatal("print output contains empty Awards section")
	}

	docxBytes, err := Docx(m, sel, cfg)
	if err != nil {
		t.Fatalf("Docx: %v", err)
	}
	if doc := documentXMLFrom(t, docxBytes); strings.Contains(doc, "AWARDS") {
		t.Fatal("docx output contains empty Awards section")
	}
}

func TestPersonalRendersEvenWithoutRecords(t *testing.T) {
	cfg := academicConfig(t)
	m := sampleModel()
	sel := model.NewSelection([]model.Category{model.CategoryPersonal})

	nodes := Preview(m, sel, cfg)
	if len(nodes) != 1 {
		t.Fatalf("preview rendered %d sections, want 1", len(nodes))
	}
	if nodes[0].Children[0].Text != "Dr. A B" {
		t.Fatalf("header name = %q", nodes[0].Children[0].Text)
	}

	if html := Print(m, sel, cfg); !strings.Contains(html, "Dr. A B") {
		t.Fatal("print output missing subject name")
	}
}

func TestUnselectedCategoriesNeverRender(t *testing.T) {
	cfg := academicConfig(t)
	m := sampleModel()
	sel := model.NewSelection([]model.Category{model.CategoryPersonal, model.CategoryPatents})

	html := Print(m, sel, cfg)
	if strings.Contains(html, "Education") {
		t.Fatal("print output contains unselected Education section")
	}
}

func TestOrderingAndNumberingPreserved(t *testing.T) {
	cfg := academicConfig(t)
	m := sampleModel()
	m.Records[model.CategoryPublications] = []model.DisplayRecord{
		{"title": "First Paper", "journal": "J1", "volume": "1", "year": "2019", "impactFactor": "2.1", "doi": "10.1/a"},
		{"title": "Second Paper", "journal": "J2", "volume": "2", "year": "2021", "impactFactor": "3.4", "doi": "10.1/b"},
		{"title": "Third Paper", "journal": "J3", "volume": "3", "year": "2024", "impactFactor": "1.9", "doi": "10.1/c"},
	}
	sel := model.NewSelection([]model.Category{model.CategoryPublications})

	html := Print(m, sel, cfg)
	first := strings.Index(html, "1. First Paper")
	second := strings.Index(html, "2. Second Paper")
	third := strings.Index(html, "3. Third Paper")
	if first == -1 || second == -1 || third == -1 {
		t.Fatalf("print output missing numbered entries:\n%s", html)
	}
	if !(first < second && second < third) {
		t.Fatal("print output lost fetch order")
	}

	nodes := Preview(m, sel, cfg)
	if len(nodes) != 1 {
		t.Fatalf("preview sections = %d", len(nodes))
	}
	items := nodes[0].Children[1:]
	for i, wantPrefix := range []string{"1. First Paper", "2. Second Paper", "3. Third Paper"} {
		title := items[i].Children[0].Text
		if title != wantPrefix {
			t.Fatalf("preview item %d title = %q, want %q", i, title, wantPrefix)
		}
	}
}

func TestTableRowsFollowFetchOrder(t *testing.T) {
	cfg := academicConfig(t)
	m := sampleModel()
	sel := model.NewSelection([]model.Category{model.CategoryEducation})

	nodes := Preview(m, sel, cfg)
	table := nodes[0].Children[1]
	rows := table.Children[1:] // skip header row
	wantDegrees := []string{"B.Tech", "M.Tech", "Ph.D."}
	for i, row := range rows {
		if got := row.Children[0].Text; got != []string{"1", "2", "3"}[i] {
			t.Fatalf("row %d serial = %q", i, got)
		}
		if got := row.Children[1].Text; got != wantDegrees[i] {
			t.Fatalf("row %d degree = %q, want %q", i, got, wantDegrees[i])
		}
	}
}

func TestPrintEscapesMarkupSignificantValues(t *testing.T) {
	cfg := academicConfig(t)
	m := sampleModel()
	m.Records[model.CategoryPatents] = []model.DisplayRecord{
		{
			"title":    `<script>alert("x")</script> & more`,
			"level":    "National",
			"status":   "Granted",
			"earnings": "N/A",
			"date":     "N/A",
		},
	}
	sel := model.NewSelection([]model.Category{model.CategoryPatents})

	html := Print(m, sel, cfg)
	if strings.Contains(html, "<script>") {
		t.Fatal("print output allowed structural breakout")
	}
	if !strings.Contains(html, "&lt;script&gt;") {
		t.Fatal("print output did not escape markup characters")
	}
	if !strings.Contains(html, "&amp; more") {
		t.Fatal("print output did not escape ampersand")
	}
}

func TestDocxPatentsScenario(t *testing.T) {
	cfg := academicConfig(t)
	m := sampleModel()
	sel := model.NewSelection([]model.Category{model.CategoryPersonal, model.CategoryPatents})

	docxBytes, err := Docx(m, sel, cfg)
	if err != nil {
		t.Fatalf("Docx: %v", err)
	}
	doc := documentXMLFrom(t, docxBytes)

	for _, want := range []string{
		"PERSONAL INFORMATION",
		"PATENTS",
		"1. X",
		"[Granted]",
		"Level: National",
		"Earnings: ₹ 50,000",
		"Date: 15/01/2023",
		"Dr. A B",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document.xml missing %q", want)
		}
	}
}

func TestDocxZipLayout(t *testing.T) {
	cfg := academicConfig(t)
	m := sampleModel()
	sel := model.NewSelection([]model.Category{model.CategoryPersonal})

	docxBytes, err := Docx(m, sel, cfg)
	if err != nil {
		t.Fatalf("Docx: %v", err)
	}
	reader, err := zip.NewReader(bytes.NewReader(docxBytes), int64(len(docxBytes)))
	if err != nil {
		t.Fatalf("open docx zip: %v", err)
	}
	want := map[string]bool{
		"[Content_Types].xml":          false,
		"_rels/.rels":                  false,
		"word/_rels/document.xml.rels": false,
		"word/styles.xml":              false,
		"word/document.xml":            false,
	}
	for _, file := range reader.File {
		if _, ok := want[file.Name]; ok {
			want[file.Name] = true
		}
	}
	for name, seen := range want {
		if !seen {
			t.Errorf("docx missing part %s", name)
		}
	}
}

func TestCrossTargetParity(t *testing.T) {
	cfg := academicConfig(t)
	m := sampleModel()
	sel := model.NewSelection([]model.Category{model.CategoryPatents})

	html := Print(m, sel, cfg)
	docxBytes, err := Docx(m, sel, cfg)
	if err != nil {
		t.Fatalf("Docx: %v", err)
	}
	doc := documentXMLFrom(t, docxBytes)
	nodes := Preview(m, sel, cfg)
	previewJSON := flattenPreviewText(nodes)

	for _, want := range []string{"1. X", "Level: National", "Earnings: ₹ 50,000", "Date: 15/01/2023"} {
		if !strings.Contains(html, want) {
			t.Errorf("print missing %q", want)
		}
		if !strings.Contains(doc, want) {
			t.Errorf("docx missing %q", want)
		}
		if !strings.Contains(previewJSON, want) {
			t.Errorf("preview missing %q", want)
		}
	}
}

func flattenPreviewText(nodes []*PreviewNode) string {
	var b strings.Builder
	var walk func(*PreviewNode)
	walk = func(n *PreviewNode) {
		if n == nil {
			return
		}
		if n.Text != "" {
			b.WriteString(n.Text)
			b.WriteByte('\n')
		}
		for _, child := range n.Children {
			walk(child)
		}
	}
	for _, n := range nodes {
		walk(n)
	}
	return b.String()
}
