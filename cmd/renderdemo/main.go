package main

// Render a sample CV to every target:
//   go run ./cmd/renderdemo -template academic -out ./out

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cvgen-backend/cv/model"
	"cvgen-backend/cv/render"
	"cvgen-backend/cv/style"
)

func main() {
	templateName := flag.String("template", "academic", "visual template: classic, modern, academic, elegant")
	outDir := flag.String("out", "./out", "output directory")
	flag.Parse()

	cfg, err := style.Resolve(style.Template(*templateName))
	if err != nil {
		fmt.Fprintf(os.Stderr, "resolve template: %v\n", err)
		os.Exit(1)
	}

	m := sampleModel()
	sel := model.NewSelection(model.AllCategories)

	if err := writeOutputs(*outDir, *templateName, m, sel, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "write failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("OK: wrote sample CV targets to %s\n", *outDir)
}

func writeOutputs(outDir, templateName string, m *model.AggregateModel, sel model.Selection, cfg style.StyleConfig) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	docxBytes, err := render.Docx(m, sel, cfg)
	if err != nil {
		return fmt.Errorf("render docx: %w", err)
	}
	docxPath := filepath.Join(outDir, "sample_cv_"+templateName+".docx")
	if err := os.WriteFile(docxPath, docxBytes, 0o644); err != nil {
		return err
	}
	if err := validateRenderedDocx(docxPath, m.Subject.Name); err != nil {
		return fmt.Errorf("docx validation: %w", err)
	}

	html := render.Print(m, sel, cfg)
	if err := os.WriteFile(filepath.Join(outDir, "sample_cv_"+templateName+".html"), []byte(html), 0o644); err != nil {
		return err
	}

	preview := render.Preview(m, sel, cfg)
	payload, err := json.MarshalIndent(preview, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outDir, "sample_cv_preview.json"), payload, 0o644)
}

func sampleModel() *model.AggregateModel {
	return &model.AggregateModel{
		Subject: model.Subject{
			ID:          "subject-demo",
			Name:        "Dr. Asha Verma",
			Designation: "Professor",
			Department:  "Department of Computer Science",
			Institution: "National Institute of Technology",
			Email:       "asha.verma@example.edu",
			Phone:       "+91-98765-43210",
			ORCID:       "0000-0002-1825-0097",
		},
		Records: map[model.Category][]model.DisplayRecord{
			model.CategoryEducation: {
				{"degree": "Ph.D.", "specialization": "Distributed Systems", "institution": "IIT Delhi", "year": "2008", "division": "N/A"},
				{"degree": "M.Tech.", "specialization": "Computer Science", "institution": "IIT Bombay", "year": "2003", "division": "First"},
			},
			model.CategoryPublications: {
				{"title": "Efficient Graph Partitioning at Scale", "journal": "ACM TOCS", "volume": "39", "year": "2021", "impactFactor": "2.4", "doi": "10.1145/0000001"},
				{"title": "Streaming Joins under Memory Pressure", "journal": "PVLDB", "volume": "12", "year": "2019", "impactFactor": "3.1", "doi": "10.14778/0000002"},
			},
			model.CategoryPatents: {
				{"title": "Adaptive Query Scheduler", "level": "National", "status": "Granted", "earnings": "₹ 50,000", "date": "15/01/2023"},
			},
			model.CategoryAwards: {
				{"name": "Best Teacher Award", "awardedBy": "State Council", "date": "12/08/2020"},
			},
		},
	}
}

func validateRenderedDocx(path, subjectName string) error {
	docxBytes, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	reader, err := zip.NewReader(bytes.NewReader(docxBytes), int64(len(docxBytes)))
	if err != nil {
		return err
	}

	for _, file := range reader.File {
		if strings.ReplaceAll(file.Name, "\\", "/") != "word/document.xml" {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return err
		}
		defer rc.Close()

		content, err := io.ReadAll(rc)
		if err != nil {
			return err
		}
		if !strings.Contains(string(content), subjectName) {
			return fmt.Errorf("subject name missing from document.xml")
		}
		return nil
	}

	return fmt.Errorf("document.xml not found in docx")
}
