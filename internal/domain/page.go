package domain

// PageStatus represents the publication state of a page.
type PageStatus string

const (
	PageStatusDraft     PageStatus = "draft"     // Default for new and unknown pages
	PageStatusPublished PageStatus = "published" // Live
	PageStatusArchived  PageStatus = "archived"  // Hidden but kept
)

// IsKnown returns true if the status is one of the predefined values.
// Unknown statuses are still carried through the mapper unchanged.
func (s PageStatus) IsKnown() bool {
	switch s {
	case PageStatusDraft, PageStatusPublished, PageStatusArchived:
		return true
	default:
		return false
	}
}

// Display returns a human-readable representation of the status.
func (s PageStatus) Display() string {
	switch s {
	case PageStatusDraft:
		return "Draft"
	case PageStatusPublished:
		return "Published"
	case PageStatusArchived:
		return "Archived"
	default:
		return string(s)
	}
}

// Fallbacks for the denormalized identity columns.
const (
	DefaultCompanyName = "Default Company"
	DefaultPersonName  = "Default User"
	DefaultPageTitle   = "Untitled Page"
)

// Row keys of a persisted page record.
const (
	RowSlug        = "slug"
	RowData        = "data"
	RowCreatedAt   = "created_at"
	RowUpdatedAt   = "updated_at"
	RowCompanyName = "company_name"
	RowPersonName  = "person_name"
	RowTitle       = "title"
	RowStatus      = "status"
	RowTags        = "tags"
	RowThumbnail   = "thumbnail"
	RowWordCount   = "word_count"
	RowPrompt      = "prompt"
)

// Body keys inside the document stored under RowData.
const (
	BodyTitle     = "title"
	BodySlug      = "slug"
	BodyStatus    = "status"
	BodyTags      = "tags"
	BodyThumbnail = "thumbnail"
	BodyWordCount = "wordCount"
	BodyPrompt    = "prompt"
	BodyHero      = "hero"
)

// Page is the typed projection of a persisted document.
// OriginalData is authoritative; the typed fields exist for display and editing
// and are folded back on top of it when the page is saved.
// Fields are ordered to minimize memory padding.
type Page struct {
	OriginalData Document   `json:"originalData"`
	Tags         []string   `json:"tags"`
	Slug         string     `json:"slug"`
	Title        string     `json:"title"`
	Content      string     `json:"content"`
	Status       PageStatus `json:"status"`
	Thumbnail    string     `json:"thumbnail"`
	Prompt       string     `json:"prompt"`
	CreatedAt    string     `json:"createdAt,omitempty"`
	UpdatedAt    string     `json:"updatedAt,omitempty"`
	CompanyName  string     `json:"companyName"`
	PersonName   string     `json:"personName"`
	ID           int64      `json:"id"`
	WordCount    int        `json:"wordCount"`
}
