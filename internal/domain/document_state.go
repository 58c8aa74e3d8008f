package domain

// DocumentState is the complete state of an editing session for rendering.
// Returned to the frontend to draw the builder canvas.
type DocumentState struct {
	Project      Project        `json:"project"`
	Pages        []Page         `json:"pages"`
	ActivePageID string         `json:"activePageId"`
	GlobalNavbar *GlobalElement `json:"globalNavbar"`
	GlobalFooter *GlobalElement `json:"globalFooter"`
	Comments     []Comment      `json:"comments"`
}
