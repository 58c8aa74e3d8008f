package domain

type SectionType string

const (
	SectionHeader  SectionType = "header"
	SectionText    SectionType = "text"
	SectionButton  SectionType = "button"
	SectionImage   SectionType = "image"
	SectionDivider SectionType = "divider"
	SectionSpacer  SectionType = "spacer"
	SectionNavbar  SectionType = "navbar"
	SectionFooter  SectionType = "footer"
	SectionColumns SectionType = "columns"
)

// Section is one placed content block in a page's layout sequence.
// Children is only populated for column containers.
type Section struct {
	ID       string         `json:"id"`
	Type     SectionType    `json:"type"`
	Props    map[string]any `json:"props"`
	Children []Section      `json:"children,omitempty"`
}

// GlobalElement is a navbar or footer shared across all pages of a document.
// At most one instance of each kind exists per document.
type GlobalElement struct {
	ID    string         `json:"id"`
	Type  SectionType    `json:"type"`
	Props map[string]any `json:"props"`
}
