package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesdeck/salesdeck/internal/domain"
	"github.com/salesdeck/salesdeck/internal/testutil"
	"github.com/salesdeck/salesdeck/internal/usecase"
)

func newPageFixture(t *testing.T) (*testutil.MockDocumentStore, *domain.Mapper) {
	t.Helper()
	store := testutil.NewMockDocumentStore()
	ctx := context.Background()
	rows := []domain.Document{
		{
			domain.RowSlug:        "acme",
			domain.RowCompanyName: "Acme",
			domain.RowData: map[string]any{
				"hero":   map[string]any{"tagline": "Grow with Acme"},
				"status": "published",
				"tags":   []any{"b2b", "saas"},
				"theme":  map[string]any{"primary": "#ff0000"},
			},
		},
		{
			domain.RowSlug: "draft-page",
			domain.RowData: map[string]any{"title": "Work in progress", "tags": []any{"b2b"}},
		},
	}
	for _, row := range rows {
		require.NoError(t, store.Put(ctx, row))
	}
	return store, domain.NewMapper(&testutil.MockClock{NowTime: testNow})
}

func TestListPages_Execute(t *testing.T) {
	store, mapper := newPageFixture(t)
	uc := usecase.NewListPages(store, mapper)

	out, err := uc.Execute(context.Background(), usecase.ListPagesInput{})
	require.NoError(t, err)
	require.Len(t, out.Pages, 2)
	assert.Equal(t, "Grow with Acme", out.Pages[0].Title)

	out, err = uc.Execute(context.Background(), usecase.ListPagesInput{Status: domain.PageStatusDraft})
	require.NoError(t, err)
	require.Len(t, out.Pages, 1)
	assert.Equal(t, "draft-page", out.Pages[0].Slug)

	out, err = uc.Execute(context.Background(), usecase.ListPagesInput{Tag: "saas"})
	require.NoError(t, err)
	require.Len(t, out.Pages, 1)
	assert.Equal(t, "acme", out.Pages[0].Slug)

	store.GetErr = errors.New("db down")
	_, err = uc.Execute(context.Background(), usecase.ListPagesInput{})
	assert.Error(t, err)
}

func TestShowPage_Execute(t *testing.T) {
	store, mapper := newPageFixture(t)
	uc := usecase.NewShowPage(store, mapper)

	out, err := uc.Execute(context.Background(), usecase.ShowPageInput{Slug: "acme"})
	require.NoError(t, err)
	assert.Equal(t, "Acme", out.Page.CompanyName)
	assert.Equal(t, domain.DefaultPersonName, out.Page.PersonName)
	assert.Equal(t, domain.HashID("acme"+domain.FormatTimestamp(store.Clock.Now())), out.Page.ID)

	_, err = uc.Execute(context.Background(), usecase.ShowPageInput{Slug: "missing"})
	assert.ErrorIs(t, err, domain.ErrPageNotFound)

	_, err = uc.Execute(context.Background(), usecase.ShowPageInput{})
	assert.ErrorIs(t, err, domain.ErrEmptySlug)
}

func TestExportPage_Execute(t *testing.T) {
	store, _ := newPageFixture(t)

	out, err := usecase.NewExportPage(store).Execute(context.Background(), usecase.ExportPageInput{Slug: "acme"})
	require.NoError(t, err)
	if diff := cmp.Diff(store.Rows["acme"], out.Row); diff != "" {
		t.Errorf("exported row mismatch (-want +got):\n%s", diff)
	}
}

func TestDeletePage_Execute(t *testing.T) {
	store, _ := newPageFixture(t)
	uc := usecase.NewDeletePage(store, nil)

	require.NoError(t, uc.Execute(context.Background(), usecase.DeletePageInput{Slug: "acme"}))
	assert.NotContains(t, store.Rows, "acme")

	assert.ErrorIs(t, uc.Execute(context.Background(), usecase.DeletePageInput{Slug: "acme"}), domain.ErrPageNotFound)
	assert.ErrorIs(t, uc.Execute(context.Background(), usecase.DeletePageInput{}), domain.ErrEmptySlug)
}

func TestSavePage_Execute(t *testing.T) {
	t.Run("edits keep unknown fields", func(t *testing.T) {
		store, mapper := newPageFixture(t)
		logger := &testutil.MockLogger{}
		title := "Grow faster"
		status := domain.PageStatusArchived

		out, err := usecase.NewSavePage(store, mapper, logger).Execute(context.Background(), usecase.SavePageInput{
			Slug:   "acme",
			Title:  &title,
			Status: &status,
			Tags:   []string{},
		})
		require.NoError(t, err)

		assert.Equal(t, "acme", out.Page.Slug)
		assert.Equal(t, "Grow faster", out.Page.Title)
		assert.Equal(t, domain.PageStatusArchived, out.Page.Status)
		assert.Empty(t, out.Page.Tags)
		assert.Equal(t, "Acme", out.Page.CompanyName)

		body, _ := store.Rows["acme"].Map(domain.RowData)
		assert.Equal(t, map[string]any{"primary": "#ff0000"}, body["theme"])
		assert.Equal(t, map[string]any{"tagline": "Grow with Acme"}, body["hero"])
		assert.Len(t, logger.Entries, 1)
	})

	t.Run("no edits is a faithful rewrite", func(t *testing.T) {
		store, mapper := newPageFixture(t)
		before, _ := store.Rows["acme"].Map(domain.RowData)
		before = before.Clone()

		_, err := usecase.NewSavePage(store, mapper, nil).Execute(context.Background(), usecase.SavePageInput{Slug: "acme"})
		require.NoError(t, err)

		after, _ := store.Rows["acme"].Map(domain.RowData)
		for key, want := range before {
			assert.Equal(t, want, after[key], "key %q", key)
		}
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		store, mapper := newPageFixture(t)
		status := domain.PageStatus("deleted")

		_, err := usecase.NewSavePage(store, mapper, nil).Execute(context.Background(), usecase.SavePageInput{Slug: "acme", Status: &status})
		assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	})

	t.Run("missing page", func(t *testing.T) {
		store, mapper := newPageFixture(t)

		_, err := usecase.NewSavePage(store, mapper, nil).Execute(context.Background(), usecase.SavePageInput{Slug: "nope"})
		assert.ErrorIs(t, err, domain.ErrPageNotFound)
	})

	t.Run("store failure", func(t *testing.T) {
		store, mapper := newPageFixture(t)
		store.PutErr = errors.New("read-only")

		_, err := usecase.NewSavePage(store, mapper, nil).Execute(context.Background(), usecase.SavePageInput{Slug: "acme"})
		assert.Error(t, err)
	})
}

func TestImportDocument_Execute(t *testing.T) {
	t.Run("bare body gets a derived slug", func(t *testing.T) {
		store := testutil.NewMockDocumentStore()
		mapper := domain.NewMapper(&testutil.MockClock{NowTime: testNow})

		out, err := usecase.NewImportDocument(store, mapper, nil).Execute(context.Background(), usecase.ImportDocumentInput{
			Data: []byte(`{"hero": {"clientName": "Globex"}, "custom": {"keep": [1, 2]}}`),
		})
		require.NoError(t, err)

		assert.Equal(t, "Globex - Business Page", out.Page.Title)
		assert.True(t, strings.HasPrefix(out.Page.Slug, "globex-business-page-"), out.Page.Slug)
		body, _ := store.Rows[out.Page.Slug].Map(domain.RowData)
		assert.Equal(t, map[string]any{"keep": []any{float64(1), float64(2)}}, body["custom"])
	})

	t.Run("full row keeps its slug and columns", func(t *testing.T) {
		store := testutil.NewMockDocumentStore()
		mapper := domain.NewMapper(&testutil.MockClock{NowTime: testNow})

		out, err := usecase.NewImportDocument(store, mapper, nil).Execute(context.Background(), usecase.ImportDocumentInput{
			Data: []byte(`{"slug": "initech", "company_name": "Initech", "data": {"title": "TPS"}}`),
		})
		require.NoError(t, err)
		assert.Equal(t, "initech", out.Page.Slug)
		assert.Equal(t, "Initech", out.Page.CompanyName)
		assert.Equal(t, "TPS", out.Page.Title)
	})

	t.Run("slug override", func(t *testing.T) {
		store := testutil.NewMockDocumentStore()
		mapper := domain.NewMapper(&testutil.MockClock{NowTime: testNow})

		out, err := usecase.NewImportDocument(store, mapper, nil).Execute(context.Background(), usecase.ImportDocumentInput{
			Data: []byte(`{"slug": "in-body", "title": "T"}`),
			Slug: "chosen",
		})
		require.NoError(t, err)
		assert.Equal(t, "chosen", out.Page.Slug)
		assert.Contains(t, store.Rows, "chosen")
	})

	t.Run("rejects non-objects", func(t *testing.T) {
		store := testutil.NewMockDocumentStore()
		mapper := domain.NewMapper(nil)

		for _, data := range []string{`[]`, `"x"`, `null`, `{`} {
			_, err := usecase.NewImportDocument(store, mapper, nil).Execute(context.Background(), usecase.ImportDocumentInput{Data: []byte(data)})
			assert.ErrorIs(t, err, domain.ErrInvalidDocument, data)
		}
		assert.Empty(t, store.Rows)
	})
}
