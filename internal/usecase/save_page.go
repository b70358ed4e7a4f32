package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/salesdeck/salesdeck/internal/domain"
)

// SavePageInput contains the edits to apply to a stored page.
// Nil fields are left as they are.
// Fields are ordered to minimize memory padding.
type SavePageInput struct {
	Title       *string
	Status      *domain.PageStatus
	Thumbnail   *string
	Prompt      *string
	CompanyName *string
	PersonName  *string
	WordCount   *int
	Tags        []string // nil = unchanged, empty = clear
	Slug        string   // Page to edit (required)
}

// SavePageOutput contains the page as stored.
type SavePageOutput struct {
	Page *domain.Page
}

// SavePage applies edits to a page and writes it back. Fields of the stored
// document that the edits do not touch are preserved exactly.
type SavePage struct {
	store  domain.DocumentStore
	mapper *domain.Mapper
	logger domain.Logger
}

// NewSavePage creates a new SavePage use case.
func NewSavePage(store domain.DocumentStore, mapper *domain.Mapper, logger domain.Logger) *SavePage {
	return &SavePage{store: store, mapper: mapper, logger: logger}
}

// Execute loads, edits and stores the page.
func (uc *SavePage) Execute(ctx context.Context, in SavePageInput) (*SavePageOutput, error) {
	row, err := getRow(ctx, uc.store, in.Slug)
	if err != nil {
		return nil, err
	}

	page := uc.mapper.ToPage(row)
	if in.Title != nil {
		page.Title = *in.Title
	}
	if in.Status != nil {
		if !in.Status.IsKnown() {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, *in.Status)
		}
		page.Status = *in.Status
	}
	if in.Tags != nil {
		page.Tags = in.Tags
	}
	if in.Thumbnail != nil {
		page.Thumbnail = *in.Thumbnail
	}
	if in.Prompt != nil {
		page.Prompt = *in.Prompt
	}
	if in.WordCount != nil {
		page.WordCount = *in.WordCount
	}
	if in.CompanyName != nil {
		page.CompanyName = *in.CompanyName
	}
	if in.PersonName != nil {
		page.PersonName = *in.PersonName
	}

	stored, err := putPage(ctx, uc.store, uc.mapper, page)
	if err != nil {
		return nil, err
	}

	if uc.logger != nil {
		uc.logger.Info("page", fmt.Sprintf("saved page %s", in.Slug))
	}
	return &SavePageOutput{Page: stored}, nil
}

// ImportDocumentInput contains a JSON document to import.
// Data is either a full row ({"slug": ..., "data": {...}}) or a bare page body.
type ImportDocumentInput struct {
	Data []byte
	Slug string // Overrides any slug in the document (optional)
}

// ImportDocumentOutput contains the imported page.
type ImportDocumentOutput struct {
	Page *domain.Page
}

// ImportDocument stores a page from an external JSON document.
type ImportDocument struct {
	store  domain.DocumentStore
	mapper *domain.Mapper
	logger domain.Logger
}

// NewImportDocument creates a new ImportDocument use case.
func NewImportDocument(store domain.DocumentStore, mapper *domain.Mapper, logger domain.Logger) *ImportDocument {
	return &ImportDocument{store: store, mapper: mapper, logger: logger}
}

// Execute parses and stores the document. A slug is derived from the title
// when neither the document nor the input provides one.
func (uc *ImportDocument) Execute(ctx context.Context, in ImportDocumentInput) (*ImportDocumentOutput, error) {
	var obj map[string]any
	if err := json.Unmarshal(in.Data, &obj); err != nil || obj == nil {
		return nil, domain.ErrInvalidDocument
	}

	row := domain.Document(obj)
	if _, ok := row.Map(domain.RowData); !ok {
		row = domain.Document{domain.RowData: obj}
	}
	if in.Slug != "" {
		row[domain.RowSlug] = in.Slug
	}

	page := uc.mapper.ToPage(row)
	stored, err := putPage(ctx, uc.store, uc.mapper, page)
	if err != nil {
		return nil, err
	}

	if uc.logger != nil {
		uc.logger.Info("page", fmt.Sprintf("imported page %s", stored.Slug))
	}
	return &ImportDocumentOutput{Page: stored}, nil
}

// putPage folds page back into a row, stores it and returns the stored page.
func putPage(ctx context.Context, store domain.DocumentStore, mapper *domain.Mapper, page *domain.Page) (*domain.Page, error) {
	row := mapper.ToRow(page)
	if err := store.Put(ctx, row); err != nil {
		return nil, fmt.Errorf("store page: %w", err)
	}

	slug, _ := row.String(domain.RowSlug)
	stored, err := getRow(ctx, store, slug)
	if err != nil {
		return nil, err
	}
	return mapper.ToPage(stored), nil
}
