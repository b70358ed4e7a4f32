package domain

import (
	"reflect"
	"strconv"
	"sync/atomic"
	"time"
)

// isoMillis matches the ISO-8601 format used for created_at timestamps.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// Mapper converts between persisted page rows and typed Pages.
// It holds no per-call state and never mutates its inputs, so one Mapper may be
// shared by concurrent callers.
type Mapper struct {
	clock     Clock
	lastStamp atomic.Int64
}

// NewMapper creates a Mapper that reads the current instant from clock.
func NewMapper(clock Clock) *Mapper {
	if clock == nil {
		clock = RealClock{}
	}
	return &Mapper{clock: clock}
}

// ToPage projects a persisted row into a Page. It accepts any object-like
// input: missing, null or wrong-typed fields fall back to defaults.
//
// When the row has no created_at the id is hashed with the current instant
// and therefore differs between calls.
func (m *Mapper) ToPage(row Document) *Page {
	if row == nil {
		row = Document{}
	}
	body, _ := row.Map(RowData)
	if body == nil {
		body = Document{}
	}

	content := BuildContent(body)
	page := &Page{
		OriginalData: body.Clone(),
		Title:        ResolveTitle(body),
		Content:      content,
		Slug:         firstString(row, RowSlug, body, BodySlug),
		Thumbnail:    firstString(row, RowThumbnail, body, BodyThumbnail),
		Prompt:       firstString(row, RowPrompt, body, BodyPrompt),
		CompanyName:  DefaultCompanyName,
		PersonName:   DefaultPersonName,
		Status:       PageStatusDraft,
		Tags:         []string{},
	}

	if s, ok := row.NonEmptyString(RowStatus); ok {
		page.Status = PageStatus(s)
	} else if s, ok := body.NonEmptyString(BodyStatus); ok {
		page.Status = PageStatus(s)
	}

	if tags, ok := row.Strings(RowTags); ok {
		page.Tags = tags
	} else if tags, ok := body.Strings(BodyTags); ok {
		page.Tags = tags
	}

	if n, ok := row.Int(RowWordCount); ok {
		page.WordCount = n
	} else if n, ok := body.Int(BodyWordCount); ok {
		page.WordCount = n
	} else {
		page.WordCount = CountWords(content)
	}

	// Empty identity columns read as absent, matching ToRow.
	if s, ok := row.NonEmptyString(RowCompanyName); ok {
		page.CompanyName = s
	}
	if s, ok := row.NonEmptyString(RowPersonName); ok {
		page.PersonName = s
	}

	page.CreatedAt, _ = row.String(RowCreatedAt)
	page.UpdatedAt, _ = row.String(RowUpdatedAt)

	stamp := page.CreatedAt
	if stamp == "" {
		stamp = FormatTimestamp(m.clock.Now())
	}
	page.ID = HashID(page.Slug + stamp)

	return page
}

// ToRow folds a Page back into the persisted row shape. It starts from a copy
// of OriginalData and overlays the typed fields, so keys the application does
// not model survive unchanged.
func (m *Mapper) ToRow(page *Page) Document {
	if page == nil {
		page = &Page{}
	}
	body := page.OriginalData.Clone()
	if body == nil {
		body = Document{}
	}
	orig := page.OriginalData
	if orig == nil {
		orig = Document{}
	}

	title := page.Title
	if title == "" {
		title, _ = orig.String(BodyTitle)
	}
	overlay(body, BodyTitle, title)

	status := string(page.Status)
	if status == "" {
		status, _ = orig.NonEmptyString(BodyStatus)
	}
	if status == "" {
		status = string(PageStatusDraft)
	}
	overlay(body, BodyStatus, status)

	tags := page.Tags
	if tags == nil {
		tags, _ = orig.Strings(BodyTags)
	}
	if tags == nil {
		tags = []string{}
	}
	if cur, ok := orig.Strings(BodyTags); !ok || !allStrings(orig[BodyTags]) || !reflect.DeepEqual(cur, tags) {
		body[BodyTags] = tags
	}

	wordCount := page.WordCount
	if wordCount == 0 {
		wordCount, _ = orig.Int(BodyWordCount)
	}
	if cur, ok := orig.Int(BodyWordCount); !ok || !isNumber(orig[BodyWordCount]) || cur != wordCount {
		body[BodyWordCount] = wordCount
	}

	thumbnail := page.Thumbnail
	if thumbnail == "" {
		thumbnail, _ = orig.String(BodyThumbnail)
	}
	overlay(body, BodyThumbnail, thumbnail)

	prompt := page.Prompt
	if prompt == "" {
		prompt, _ = orig.String(BodyPrompt)
	}
	overlay(body, BodyPrompt, prompt)

	slug := page.Slug
	if slug == "" {
		source := page.Title
		if source == "" {
			source, _ = orig.String(BodyTitle)
		}
		slug = m.DeriveSlug(source)
	}

	company := page.CompanyName
	if company == "" {
		company = DefaultCompanyName
	}
	person := page.PersonName
	if person == "" {
		person = DefaultPersonName
	}

	return Document{
		RowSlug:        slug,
		RowData:        body,
		RowCompanyName: company,
		RowPersonName:  person,
	}
}

// DeriveSlug builds a slug from title and appends a millisecond timestamp.
// Every call yields a new slug, even for the same title.
func (m *Mapper) DeriveSlug(title string) string {
	base := Slugify(title)
	if base == "" {
		base = "page"
	}
	return base + "-" + strconv.FormatInt(m.nextStamp(), 10)
}

// nextStamp returns the current millisecond epoch, bumped past the previous
// value so that stamps from one Mapper are strictly increasing.
func (m *Mapper) nextStamp() int64 {
	for {
		now := m.clock.Now().UnixMilli()
		last := m.lastStamp.Load()
		if now <= last {
			now = last + 1
		}
		if m.lastStamp.CompareAndSwap(last, now) {
			return now
		}
	}
}

// ResolveTitle picks the display title of a document body: explicit title,
// then hero tagline, then "<client> - Business Page", then DefaultPageTitle.
func ResolveTitle(body Document) string {
	if t, ok := body.NonEmptyString(BodyTitle); ok {
		return t
	}
	hero, _ := body.Map(BodyHero)
	if t, ok := hero.NonEmptyString("tagline"); ok {
		return t
	}
	if c, ok := hero.NonEmptyString("clientName"); ok {
		return c + " - Business Page"
	}
	return DefaultPageTitle
}

// overlay sets key to value unless the body already holds that exact string.
func overlay(body Document, key, value string) {
	if cur, ok := body[key].(string); ok && cur == value {
		return
	}
	body[key] = value
}

func firstString(primary Document, pkey string, fallback Document, fkey string) string {
	if s, ok := primary.NonEmptyString(pkey); ok {
		return s
	}
	if s, ok := fallback.String(fkey); ok {
		return s
	}
	return ""
}

func allStrings(v any) bool {
	switch items := v.(type) {
	case []string:
		return true
	case []any:
		for _, item := range items {
			if _, ok := item.(string); !ok {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func isNumber(v any) bool {
	switch v.(type) {
	case float64, float32, int, int64, int32:
		return true
	default:
		return false
	}
}

// FormatTimestamp renders t in the ISO-8601 millisecond format used for
// created_at and updated_at.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(isoMillis)
}
