package registry

import (
	"cvgen-backend/cv/model"
	"cvgen-backend/cv/normalize"
)

// Layout selects how a section's records are arranged in every target.
// Each target maps the layout onto its own primitives (table row, styled
// node, paragraph run); the information content is identical.
type Layout int

const (
	// LayoutProfile is the subject header block. It renders whenever the
	// subject is present, even with no records, because it anchors the
	// document.
	LayoutProfile Layout = iota
	// LayoutTable renders records as a grid with one labeled column per
	// attribute.
	LayoutTable
	// LayoutList renders records as titled entries with a metadata line.
	LayoutList
)

// Attribute is one column of a category's display schema: the label shown
// to readers, plus the normalizer contract for resolving it.
type Attribute struct {
	Label      string
	Attr       string
	Candidates []string
	Kind       normalize.Kind
}

// Section is the full definition of one record category: where its records
// come from, how they normalize, and how each target lays them out.
// Registered once in the table below; renderers dispatch on it instead of
// branching per category.
type Section struct {
	Category   model.Category
	Title      string
	Endpoint   string // path segment under the record API base
	PayloadKey string // canonical envelope payload key
	Layout     Layout
	Numbered   bool   // entries carry a 1-based position
	TitleAttr  string // list layout: leading emphasized attribute
	BadgeAttr  string // list layout: attribute rendered as a badge
	Attributes []Attribute
}

// Fields converts the section's attributes into normalizer field specs.
func (s Section) Fields() []normalize.Field {
	out := make([]normalize.Field, 0, len(s.Attributes))
	for _, a := range s.Attributes {
		out = append(out, normalize.Field{Attr: a.Attr, Candidates: a.Candidates, Kind: a.Kind})
	}
	return out
}

// Normalize resolves one raw record against the section's display schema.
func (s Section) Normalize(raw map[string]any, fallback string) model.DisplayRecord {
	return normalize.Record(s.Fields(), raw, fallback)
}

var sections = buildSections()
var byCategory = indexSections(sections)

// Sections returns every section in fixed document order.
func Sections() []Section {
	return sections
}

// ByCategory looks up the section definition for a category.
func ByCategory(c model.Category) (Section, bool) {
	s, ok := byCategory[c]
	return s, ok
}

func indexSections(all []Section) map[model.Category]Section {
	out := make(map[model.Category]Section, len(all))
	for _, s := range all {
		out[s.Category] = s
	}
	return out
}

func buildSections() []Section {
	return []Section{
		{
			Category:   model.CategoryPersonal,
			Title:      "Personal Information",
			Endpoint:   "personal",
			PayloadKey: "data",
			Layout:     LayoutProfile,
		},
		{
			Category:   model.CategoryEducation,
			Title:      "Education",
			Endpoint:   "education",
			PayloadKey: "data",
			Layout:     LayoutTable,
			Attributes: []Attribute{
				{Label: "Degree", Attr: "degree", Candidates: []string{"Degree", "degree", "qualification"}},
				{Label: "Specialization", Attr: "specialization", Candidates: []string{"Specialization", "specialization", "branch"}},
				{Label: "Institution", Attr: "institution", Candidates: []string{"Institute_Name", "institution", "university"}},
				{Label: "Year", Attr: "year", Candidates: []string{"Year_of_Passing", "yearOfPassing", "year"}},
				{Label: "Division", Attr: "division", Candidates: []string{"Division", "division", "grade"}},
			},
		},
		{
			Category:   model.CategoryExperience,
			Title:      "Professional Experience",
			Endpoint:   "experience",
			PayloadKey: "data",
			Layout:     LayoutList,
			TitleAttr:  "designation",
			Attributes: []Attribute{
				{Label: "Designation", Attr: "designation", Candidates: []string{"Designation", "designation", "position"}},
				{Label: "Organization", Attr: "organization", Candidates: []string{"Organization", "organization", "employer"}},
				{Label: "From", Attr: "from", Candidates: []string{"From_Date", "fromDate", "startDate"}, Kind: normalize.KindDate},
				{Label: "To", Attr: "to", Candidates: []string{"To_Date", "toDate", "endDate"}, Kind: normalize.KindDate},
				{Label: "Nature of Work", Attr: "nature", Candidates: []string{"Nature_of_Work", "natureOfWork", "responsibilities"}},
			},
		},
		{
			Category:   model.CategoryPatents,
			Title:      "Patents",
			Endpoint:   "patents",
			PayloadKey: "data",
			Layout:     LayoutList,
			Numbered:   true,
			TitleAttr:  "title",
			BadgeAttr:  "status",
			Attributes: []Attribute{
				{Label: "Title", Attr: "title", Candidates: []string{"Patent_Title", "patentTitle", "title"}},
				{Label: "Level", Attr: "level", Candidates: []string{"Patent_Level", "patentLevel", "level"}},
				{Label: "Status", Attr: "status", Candidates: []string{"Status", "patent_status", "status"}},
				{Label: "Earnings", Attr: "earnings", Candidates: []string{"Earnings_Generate", "earningsGenerated", "earnings"}, Kind: normalize.KindCurrency},
				{Label: "Date", Attr: "date", Candidates: []string{"Date_of_Grant", "grantDate", "date"}, Kind: normalize.KindDate},
			},
		},
		{
			Category:   model.CategoryPublications,
			Title:      "Journal Publications",
			Endpoint:   "publications",
			PayloadKey: "data",
			Layout:     LayoutList,
			Numbered:   true,
			TitleAttr:  "title",
			Attributes: []Attribute{
				{Label: "Title", Attr: "title", Candidates: []string{"Paper_Title", "paperTitle", "title"}},
				{Label: "Journal", Attr: "journal", Candidates: []string{"Journal_Name", "journalName", "journal"}},
				{Label: "Volume", Attr: "volume", Candidates: []string{"Volume", "volume", "vol"}},
				{Label: "Year", Attr: "year", Candidates: []string{"Year_of_Publication", "publicationYear", "year"}},
				{Label: "Impact Factor", Attr: "impactFactor", Candidates: []string{"Impact_Factor", "impactFactor", "if"}},
				{Label: "DOI", Attr: "doi", Candidates: []string{"DOI", "doi"}},
			},
		},
		{
			Category:   model.CategoryConferences,
			Title:      "Conference Papers",
			Endpoint:   "conferences",
			PayloadKey: "data",
			Layout:     LayoutList,
			Numbered:   true,
			TitleAttr:  "title",
			Attributes: []Attribute{
				{Label: "Title", Attr: "title", Candidates: []string{"Paper_Title", "paperTitle", "title"}},
				{Label: "Conference", Attr: "conference", Candidates: []string{"Conference_Name", "conferenceName", "conference"}},
				{Label: "Venue", Attr: "venue", Candidates: []string{"Venue", "venue", "location"}},
				{Label: "Date", Attr: "date", Candidates: []string{"Conference_Date", "conferenceDate", "date"}, Kind: normalize.KindDate},
			},
		},
		{
			Category:   model.CategoryBooks,
			Title:      "Books Published",
			Endpoint:   "books",
			PayloadKey: "data",
			Layout:     LayoutList,
			Numbered:   true,
			TitleAttr:  "title",
			Attributes: []Attribute{
				{Label: "Title", Attr: "title", Candidates: []string{"Book_Title", "bookTitle", "title"}},
				{Label: "Publisher", Attr: "publisher", Candidates: []string{"Publisher", "publisher"}},
				{Label: "ISBN", Attr: "isbn", Candidates: []string{"ISBN", "isbn"}},
				{Label: "Year", Attr: "year", Candidates: []string{"Year_of_Publication", "publicationYear", "year"}},
			},
		},
		{
			Category:   model.CategoryBookChapters,
			Title:      "Book Chapters",
			Endpoint:   "book-chapters",
			PayloadKey: "data",
			Layout:     LayoutList,
			Numbered:   true,
			TitleAttr:  "chapter",
			Attributes: []Attribute{
				{Label: "Chapter", Attr: "chapter", Candidates: []string{"Chapter_Title", "chapterTitle", "chapter"}},
				{Label: "Book", Attr: "book", Candidates: []string{"Book_Title", "bookTitle", "book"}},
				{Label: "Publisher", Attr: "publisher", Candidates: []string{"Publisher", "publisher"}},
				{Label: "Year", Attr: "year", Candidates: []string{"Year_of_Publication", "publicationYear", "year"}},
			},
		},
		{
			Category:   model.CategoryProjects,
			Title:      "Sponsored Projects & Grants",
			Endpoint:   "projects",
			PayloadKey: "data",
			Layout:     LayoutTable,
			Attributes: []Attribute{
				{Label: "Project Title", Attr: "title", Candidates: []string{"Project_Title", "projectTitle", "title"}},
				{Label: "Funding Agency", Attr: "agency", Candidates: []string{"Funding_Agency", "fundingAgency", "agency"}},
				{Label: "Amount", Attr: "amount", Candidates: []string{"Sanctioned_Amount", "sanctionedAmount", "amount"}, Kind: normalize.KindCurrency},
				{Label: "Duration", Attr: "duration", Candidates: []string{"Duration", "duration"}},
				{Label: "Status", Attr: "status", Candidates: []string{"Status", "status"}},
			},
		},
		{
			Category:   model.CategoryCommittees,
			Title:      "Committee Memberships",
			Endpoint:   "committees",
			PayloadKey: "data",
			Layout:     LayoutTable,
			Attributes: []Attribute{
				{Label: "Committee", Attr: "committee", Candidates: []string{"Committee_Name", "committeeName", "committee"}},
				{Label: "Role", Attr: "role", Candidates: []string{"Role", "role", "position"}},
				{Label: "Level", Attr: "level", Candidates: []string{"Level", "level"}},
				{Label: "Period", Attr: "period", Candidates: []string{"Period", "period", "duration"}},
			},
		},
		{
			Category:   model.CategoryAwards,
			Title:      "Awards & Honours",
			Endpoint:   "awards",
			PayloadKey: "data",
			Layout:     LayoutList,
			TitleAttr:  "name",
			Attributes: []Attribute{
				{Label: "Award", Attr: "name", Candidates: []string{"Award_Name", "awardName", "name"}},
				{Label: "Awarded By", Attr: "awardedBy", Candidates: []string{"Awarded_By", "awardedBy", "organization"}},
				{Label: "Date", Attr: "date", Candidates: []string{"Award_Date", "awardDate", "date"}, Kind: normalize.KindDate},
			},
		},
		{
			Category:   model.CategoryInvitedTalks,
			Title:      "Invited Talks",
			Endpoint:   "invited-talks",
			PayloadKey: "data",
			Layout:     LayoutList,
			TitleAttr:  "topic",
			Attributes: []Attribute{
				{Label: "Topic", Attr: "topic", Candidates: []string{"Talk_Title", "talkTitle", "topic"}},
				{Label: "Event", Attr: "event", Candidates: []string{"Event_Name", "eventName", "event"}},
				{Label: "Venue", Attr: "venue", Candidates: []string{"Venue", "venue"}},
				{Label: "Date", Attr: "date", Candidates: []string{"Talk_Date", "talkDate", "date"}, Kind: normalize.KindDate},
			},
		},
		{
			Category:   model.CategoryPhdSupervision,
			Title:      "Ph.D. Supervision",
			Endpoint:   "phd-supervision",
			PayloadKey: "data",
			Layout:     LayoutTable,
			Attributes: []Attribute{
				{Label: "Scholar", Attr: "scholar", Candidates: []string{"Scholar_Name", "scholarName", "scholar"}},
				{Label: "Topic", Attr: "topic", Candidates: []string{"Thesis_Topic", "thesisTopic", "topic"}},
				{Label: "Status", Attr: "status", Candidates: []string{"Status", "status"}},
				{Label: "Year", Attr: "year", Candidates: []string{"Year_of_Award", "awardYear", "year"}},
			},
		},
		{
			Category:   model.CategoryWorkshopsAttended,
			Title:      "Workshops & FDPs Attended",
			Endpoint:   "workshops-attended",
			PayloadKey: "data",
			Layout:     LayoutTable,
			Attributes: []Attribute{
				{Label: "Title", Attr: "title", Candidates: []string{"Workshop_Name", "workshopName", "title"}},
				{Label: "Organized By", Attr: "organizedBy", Candidates: []string{"Organized_By", "organizedBy", "organizer"}},
				{Label: "Duration", Attr: "duration", Candidates: []string{"Duration", "duration"}},
				{Label: "Date", Attr: "date", Candidates: []string{"Start_Date", "startDate", "date"}, Kind: normalize.KindDate},
			},
		},
		{
			Category:   model.CategoryWorkshopsOrganized,
			Title:      "Workshops & Seminars Organized",
			Endpoint:   "workshops-organized",
			PayloadKey: "data",
			Layout:     LayoutTable,
			Attributes: []Attribute{
				{Label: "Title", Attr: "title", Candidates: []string{"Event_Name", "eventName", "title"}},
				{Label: "Role", Attr: "role", Candidates: []string{"Role", "role"}},
				{Label: "Sponsored By", Attr: "sponsoredBy", Candidates: []string{"Sponsored_By", "sponsoredBy", "sponsor"}},
				{Label: "Date", Attr: "date", Candidates: []string{"Start_Date", "startDate", "date"}, Kind: normalize.KindDate},
			},
		},
		{
			Category:   model.CategoryMemberships,
			Title:      "Professional Memberships",
			Endpoint:   "memberships",
			PayloadKey: "data",
			Layout:     LayoutTable,
			Attributes: []Attribute{
				{Label: "Body", Attr: "body", Candidates: []string{"Professional_Body", "professionalBody", "body"}},
				{Label: "Membership No.", Attr: "membershipNo", Candidates: []string{"Membership_No", "membershipNumber", "membershipNo"}},
				{Label: "Grade", Attr: "grade", Candidates: []string{"Membership_Grade", "membershipGrade", "grade"}},
			},
		},
		{
			Category:   model.CategoryConsultancy,
			Title:      "Consultancy",
			Endpoint:   "consultancy",
			PayloadKey: "data",
			Layout:     LayoutTable,
			Attributes: []Attribute{
				{Label: "Project", Attr: "project", Candidates: []string{"Consultancy_Title", "consultancyTitle", "project"}},
				{Label: "Client", Attr: "client", Candidates: []string{"Client_Organization", "clientOrganization", "client"}},
				{Label: "Amount", Attr: "amount", Candidates: []string{"Consultancy_Amount", "consultancyAmount", "amount"}, Kind: normalize.KindCurrency},
				{Label: "Period", Attr: "period", Candidates: []string{"Period", "period", "duration"}},
			},
		},
		{
			Category:   model.CategoryCollaborations,
			Title:      "Collaborations & MoUs",
			Endpoint:   "collaborations",
			PayloadKey: "data",
			Layout:     LayoutTable,
			Attributes: []Attribute{
				{Label: "Partner", Attr: "partner", Candidates: []string{"Partner_Institution", "partnerInstitution", "partner"}},
				{Label: "Nature", Attr: "nature", Candidates: []string{"Nature_of_Collaboration", "natureOfCollaboration", "nature"}},
				{Label: "Since", Attr: "since", Candidates: []string{"Start_Date", "startDate", "since"}, Kind: normalize.KindDate},
			},
		},
		{
			Category:   model.CategoryExtensionActivities,
			Title:      "Extension Activities",
			Endpoint:   "extension-activities",
			PayloadKey: "data",
			Layout:     LayoutList,
			TitleAttr:  "activity",
			Attributes: []Attribute{
				{Label: "Activity", Attr: "activity", Candidates: []string{"Activity_Name", "activityName", "activity"}},
				{Label: "Beneficiary", Attr: "beneficiary", Candidates: []string{"Beneficiary", "beneficiary"}},
				{Label: "Date", Attr: "date", Candidates: []string{"Activity_Date", "activityDate", "date"}, Kind: normalize.KindDate},
			},
		},
		{
			Category:   model.CategoryAdministrativeRoles,
			Title:      "Administrative Responsibilities",
			Endpoint:   "administrative-roles",
			PayloadKey: "data",
			Layout:     LayoutTable,
			Attributes: []Attribute{
				{Label: "Role", Attr: "role", Candidates: []string{"Responsibility", "responsibility", "role"}},
				{Label: "From", Attr: "from", Candidates: []string{"From_Date", "fromDate", "from"}, Kind: normalize.KindDate},
				{Label: "To", Attr: "to", Candidates: []string{"To_Date", "toDate", "to"}},
			},
		},
	}
}
