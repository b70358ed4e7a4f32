package usecase

import (
	"context"
	"fmt"
	"slices"

	"github.com/salesdeck/salesdeck/internal/domain"
)

// ListPagesInput contains the input for the ListPages use case.
type ListPagesInput struct {
	Status domain.PageStatus // Only pages with this status (optional)
	Tag    string            // Only pages carrying this tag (optional)
}

// ListPagesOutput contains the output of the ListPages use case.
type ListPagesOutput struct {
	Pages []*domain.Page // Most recently updated first
}

// ListPages lists stored pages.
type ListPages struct {
	store  domain.DocumentStore
	mapper *domain.Mapper
}

// NewListPages creates a new ListPages use case.
func NewListPages(store domain.DocumentStore, mapper *domain.Mapper) *ListPages {
	return &ListPages{store: store, mapper: mapper}
}

// Execute returns the pages matching the filter.
func (uc *ListPages) Execute(ctx context.Context, in ListPagesInput) (*ListPagesOutput, error) {
	rows, err := uc.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}

	pages := make([]*domain.Page, 0, len(rows))
	for _, row := range rows {
		page := uc.mapper.ToPage(row)
		if in.Status != "" && page.Status != in.Status {
			continue
		}
		if in.Tag != "" && !slices.Contains(page.Tags, in.Tag) {
			continue
		}
		pages = append(pages, page)
	}

	return &ListPagesOutput{Pages: pages}, nil
}

// ShowPageInput contains the input for the ShowPage use case.
type ShowPageInput struct {
	Slug string
}

// ShowPageOutput contains the output of the ShowPage use case.
type ShowPageOutput struct {
	Page *domain.Page
}

// ShowPage loads a single page.
type ShowPage struct {
	store  domain.DocumentStore
	mapper *domain.Mapper
}

// NewShowPage creates a new ShowPage use case.
func NewShowPage(store domain.DocumentStore, mapper *domain.Mapper) *ShowPage {
	return &ShowPage{store: store, mapper: mapper}
}

// Execute returns the page for the slug.
func (uc *ShowPage) Execute(ctx context.Context, in ShowPageInput) (*ShowPageOutput, error) {
	row, err := getRow(ctx, uc.store, in.Slug)
	if err != nil {
		return nil, err
	}
	return &ShowPageOutput{Page: uc.mapper.ToPage(row)}, nil
}

// ExportPageInput contains the input for the ExportPage use case.
type ExportPageInput struct {
	Slug string
}

// ExportPageOutput contains the output of the ExportPage use case.
type ExportPageOutput struct {
	Row domain.Document // The stored row, unmodified
}

// ExportPage returns the raw stored row of a page.
type ExportPage struct {
	store domain.DocumentStore
}

// NewExportPage creates a new ExportPage use case.
func NewExportPage(store domain.DocumentStore) *ExportPage {
	return &ExportPage{store: store}
}

// Execute returns the stored row.
func (uc *ExportPage) Execute(ctx context.Context, in ExportPageInput) (*ExportPageOutput, error) {
	row, err := getRow(ctx, uc.store, in.Slug)
	if err != nil {
		return nil, err
	}
	return &ExportPageOutput{Row: row}, nil
}

// DeletePageInput contains the input for the DeletePage use case.
type DeletePageInput struct {
	Slug string
}

// DeletePage removes a page.
type DeletePage struct {
	store  domain.DocumentStore
	logger domain.Logger
}

// NewDeletePage creates a new DeletePage use case.
func NewDeletePage(store domain.DocumentStore, logger domain.Logger) *DeletePage {
	return &DeletePage{store: store, logger: logger}
}

// Execute deletes the page.
func (uc *DeletePage) Execute(ctx context.Context, in DeletePageInput) error {
	if in.Slug == "" {
		return domain.ErrEmptySlug
	}
	if err := uc.store.Delete(ctx, in.Slug); err != nil {
		return fmt.Errorf("delete page: %w", err)
	}
	if uc.logger != nil {
		uc.logger.Info("page", fmt.Sprintf("deleted page %s", in.Slug))
	}
	return nil
}

// getRow loads a row and turns a missing row into ErrPageNotFound.
func getRow(ctx context.Context, store domain.DocumentStore, slug string) (domain.Document, error) {
	if slug == "" {
		return nil, domain.ErrEmptySlug
	}
	row, err := store.Get(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("get page: %w", err)
	}
	if row == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrPageNotFound, slug)
	}
	return row, nil
}
