package model

// Category identifies one kind of CV entry. The set is fixed; every category
// has its own backend endpoint and its own display schema.
type Category string

const (
	CategoryPersonal            Category = "personal"
	CategoryEducation           Category = "education"
	CategoryExperience          Category = "experience"
	CategoryPatents             Category = "patents"
	CategoryPublications        Category = "publications"
	CategoryConferences         Category = "conferences"
	CategoryBooks               Category = "books"
	CategoryBookChapters        Category = "bookChapters"
	CategoryProjects            Category = "projects"
	CategoryCommittees          Category = "committees"
	CategoryAwards              Category = "awards"
	CategoryInvitedTalks        Category = "invitedTalks"
	CategoryPhdSupervision      Category = "phdSupervision"
	CategoryWorkshopsAttended   Category = "workshopsAttended"
	CategoryWorkshopsOrganized  Category = "workshopsOrganized"
	CategoryMemberships         Category = "memberships"
	CategoryConsultancy         Category = "consultancy"
	CategoryCollaborations      Category = "collaborations"
	CategoryExtensionActivities Category = "extensionActivities"
	CategoryAdministrativeRoles Category = "administrativeRoles"
)

// AllCategories lists every category in the fixed document order used by
// exports. Personal always leads because it anchors the document.
var AllCategories = []Category{
	CategoryPersonal,
	CategoryEducation,
	CategoryExperience,
	CategoryPatents,
	CategoryPublications,
	CategoryConferences,
	CategoryBooks,
	CategoryBookChapters,
	CategoryProjects,
	CategoryCommittees,
	CategoryAwards,
	CategoryInvitedTalks,
	CategoryPhdSupervision,
	CategoryWorkshopsAttended,
	CategoryWorkshopsOrganized,
	CategoryMemberships,
	CategoryConsultancy,
	CategoryCollaborations,
	CategoryExtensionActivities,
	CategoryAdministrativeRoles,
}

// IsValid reports whether c is a known category.
func (c Category) IsValid() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Subject is the academic whose CV is being assembled. Built once per
// aggregation from the profile endpoint and never mutated afterwards.
type Subject struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Designation string `json:"designation"`
	Department  string `json:"department"`
	Institution string `json:"institution"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	ORCID       string `json:"orcid"`
}

// DisplayRecord maps display-schema attribute names to display-safe values.
// Values have already been through the normalizer; renderers never see raw
// backend fields.
type DisplayRecord map[string]string

// AggregateModel is the full normalized CV data set for one subject.
// Record order within a category follows the source fetch order and is the
// row order ("Sr. No.") in every output target.
type AggregateModel struct {
	Subject  Subject                      `json:"subject"`
	Records  map[Category][]DisplayRecord `json:"records"`
	Warnings []string                     `json:"warnings,omitempty"`
}

// RecordsFor returns the normalized records for a category, which may be nil.
func (m *AggregateModel) RecordsFor(c Category) []DisplayRecord {
	if m == nil || m.Records == nil {
		return nil
	}
	return m.Records[c]
}

// Selection is the set of categories chosen for an export. Rendering only
// ever touches categories present here.
type Selection map[Category]bool

// NewSelection builds a selection from a list of category ids, dropping
// unknown entries.
func NewSelection(categories []Category) Selection {
	sel := make(Selection, len(categories))
	for _, c := range categories {
		if c.IsValid() {
			sel[c] = true
		}
	}
	return sel
}

// Has reports whether a category is selected.
func (s Selection) Has(c Category) bool {
	return s[c]
}
