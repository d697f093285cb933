package registry

import (
	"testing"

	"cvgen-backend/cv/model"
)

func TestEveryCategoryRegistered(t *testing.T) {
	for _, c := range model.AllCategories {
		s, ok := ByCategory(c)
		if !ok {
			t.Fatalf("category %s has no section definition", c)
		}
		if s.Title == "" {
			t.Fatalf("category %s has no title", c)
		}
		if s.Endpoint == "" {
			t.Fatalf("category %s has no endpoint", c)
		}
		if s.PayloadKey == "" {
			t.Fatalf("category %s has no payload key", c)
		}
		if s.Layout != LayoutProfile && len(s.Attributes) == 0 {
			t.Fatalf("category %s has no attributes", c)
		}
	}
	if len(Sections()) != len(model.AllCategories) {
		t.Fatalf("section count %d != category count %d", len(Sections()), len(model.AllCategories))
	}
}

func TestSectionsFollowDocumentOrder(t *testing.T) {
	all := Sections()
	for i, c := range model.AllCategories {
		if all[i].Category != c {
			t.Fatalf("section %d is %s, want %s", i, all[i].Category, c)
		}
	}
}

func TestListSectionsNameTheirTitleAttr(t *testing.T) {
	for _, s := range Sections() {
		if s.Layout != LayoutList {
			continue
		}
		if s.TitleAttr == "" {
			t.Fatalf("list section %s has no title attr", s.Category)
		}
		found := false
		for _, a := range s.Attributes {
			if a.Attr == s.TitleAttr {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("list section %s title attr %q not in schema", s.Category, s.TitleAttr)
		}
	}
}

func TestNormalizePatentRecord(t *testing.T) {
	s, _ := ByCategory(model.CategoryPatents)
	rec := s.Normalize(map[string]any{
		"Patent_Title":     "X",
		"Patent_Level":     "National",
		"Status":           "Granted",
		"Earnings_Generate": "50000",
		"Date_of_Grant":    "2023-01-15",
	}, "")

	want := map[string]string{
		"title":    "X",
		"level":    "National",
		"status":   "Granted",
		"earnings": "₹ 50,000",
		"date":     "15/01/2023",
	}
	for attr, val := range want {
		if rec[attr] != val {
			t.Errorf("%s = %q, want %q", attr, rec[attr], val)
		}
	}
}
