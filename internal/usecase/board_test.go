package usecase_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesdeck/salesdeck/internal/domain"
	"github.com/salesdeck/salesdeck/internal/testutil"
	"github.com/salesdeck/salesdeck/internal/usecase"
)

var testNow = time.Date(2025, 4, 1, 9, 30, 0, 0, time.UTC)

func seededRepo(t *testing.T) *testutil.MockBoardRepository {
	t.Helper()
	repo := testutil.NewMockBoardRepository()
	board := repo.Board
	var err error
	for _, c := range []struct{ col, id string }{
		{"new", "a"}, {"new", "b"}, {"new", "c"}, {"contacted", "d"},
	} {
		board, err = board.AddCard(c.col, domain.Card{ID: c.id})
		require.NoError(t, err)
	}
	repo.Board = board
	return repo
}

func cardIDs(t *testing.T, b domain.Board, columnID string) []string {
	t.Helper()
	col, _ := b.Column(columnID)
	require.NotNil(t, col, "column %s", columnID)
	ids := []string{}
	for _, c := range col.Cards {
		ids = append(ids, c.ID)
	}
	return ids
}

func TestInitBoard_Execute(t *testing.T) {
	t.Run("creates data dir and default board", func(t *testing.T) {
		dataDir := filepath.Join(t.TempDir(), ".salesdeck")
		storeInit := &testutil.MockStoreInitializer{}
		logger := &testutil.MockLogger{}

		out, err := usecase.NewInitBoard(storeInit, logger).Execute(context.Background(), usecase.InitBoardInput{DataDir: dataDir})
		require.NoError(t, err)

		assert.False(t, out.AlreadyInitialized)
		assert.Equal(t, dataDir, out.DataDir)
		assert.DirExists(t, filepath.Join(dataDir, "logs"))
		assert.Equal(t, domain.DefaultColumns(), storeInit.Columns)
		require.Len(t, logger.Entries, 1)
	})

	t.Run("uses given columns", func(t *testing.T) {
		storeInit := &testutil.MockStoreInitializer{}
		cols := []domain.Column{{ID: "x", Title: "X"}}

		_, err := usecase.NewInitBoard(storeInit, nil).Execute(context.Background(), usecase.InitBoardInput{Columns: cols})
		require.NoError(t, err)
		assert.Equal(t, cols, storeInit.Columns)
	})

	t.Run("reports existing board", func(t *testing.T) {
		storeInit := &testutil.MockStoreInitializer{Initialized: true}

		out, err := usecase.NewInitBoard(storeInit, nil).Execute(context.Background(), usecase.InitBoardInput{})
		require.NoError(t, err)
		assert.True(t, out.AlreadyInitialized)
		assert.Nil(t, storeInit.Columns)
	})

	t.Run("propagates store error", func(t *testing.T) {
		errBoom := errors.New("boom")
		storeInit := &testutil.MockStoreInitializer{InitErr: errBoom}

		_, err := usecase.NewInitBoard(storeInit, nil).Execute(context.Background(), usecase.InitBoardInput{})
		assert.ErrorIs(t, err, errBoom)
	})
}

func TestShowBoard_Execute(t *testing.T) {
	repo := seededRepo(t)

	out, err := usecase.NewShowBoard(repo).Execute(context.Background(), usecase.ShowBoardInput{})
	require.NoError(t, err)
	assert.Equal(t, repo.Board, out.Board)

	repo.LoadErr = domain.ErrNotInitialized
	_, err = usecase.NewShowBoard(repo).Execute(context.Background(), usecase.ShowBoardInput{})
	assert.ErrorIs(t, err, domain.ErrNotInitialized)
}

func TestAddCard_Execute(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		repo := testutil.NewMockBoardRepository()
		clock := &testutil.MockClock{NowTime: testNow}

		out, err := usecase.NewAddCard(repo, clock, nil).Execute(context.Background(), usecase.AddCardInput{ColumnID: "new"})
		require.NoError(t, err)

		_, parseErr := uuid.Parse(out.Card.ID)
		assert.NoError(t, parseErr, "card id is a uuid")
		assert.Equal(t, "new", out.Card.Status)
		assert.Equal(t, domain.DefaultCardFields(testNow), out.Card.Fields)

		colID, idx, ok := repo.Board.FindCard(out.Card.ID)
		require.True(t, ok)
		assert.Equal(t, "new", colID)
		assert.Equal(t, 0, idx)
	})

	t.Run("explicit fields are appended last", func(t *testing.T) {
		repo := seededRepo(t)
		clock := &testutil.MockClock{NowTime: testNow}
		logger := &testutil.MockLogger{}

		out, err := usecase.NewAddCard(repo, clock, logger).Execute(context.Background(), usecase.AddCardInput{
			ColumnID: "new",
			Name:     "Acme",
			Email:    "buyer@acme.test",
			Notes:    "met at expo",
		})
		require.NoError(t, err)

		assert.Equal(t, "Acme", out.Card.Fields.Name)
		assert.Equal(t, domain.DefaultCardNextAction, out.Card.Fields.NextAction)
		assert.Equal(t, "buyer@acme.test", out.Card.Fields.Email)
		assert.Equal(t, []string{"a", "b", "c", out.Card.ID}, cardIDs(t, repo.Board, "new"))
		require.Len(t, logger.Entries, 1)
		assert.Equal(t, "card", logger.Entries[0].Category)
	})

	t.Run("unknown column", func(t *testing.T) {
		repo := testutil.NewMockBoardRepository()
		clock := &testutil.MockClock{NowTime: testNow}

		_, err := usecase.NewAddCard(repo, clock, nil).Execute(context.Background(), usecase.AddCardInput{ColumnID: "nope"})
		assert.ErrorIs(t, err, domain.ErrColumnNotFound)
		assert.Equal(t, 0, repo.SaveCount)

		_, err = usecase.NewAddCard(repo, clock, nil).Execute(context.Background(), usecase.AddCardInput{})
		assert.ErrorIs(t, err, domain.ErrEmptyColumnID)
	})
}

func TestMoveCard_Execute(t *testing.T) {
	t.Run("cross-column move notifies observers after save", func(t *testing.T) {
		repo := seededRepo(t)
		clock := &testutil.MockClock{NowTime: testNow}
		obs := &testutil.MockMoveObserver{}
		var savesAtNotify int
		order := domain.MoveObserverFunc(func(_ context.Context, _ domain.MoveEvent) error {
			savesAtNotify = repo.SaveCount
			return nil
		})

		uc := usecase.NewMoveCard(repo, clock, nil, obs, order)
		out, err := uc.Execute(context.Background(), usecase.MoveCardInput{
			SourceColumnID: "new", SourceIndex: 1,
			DestColumnID: "contacted", DestIndex: 99,
		})
		require.NoError(t, err)

		assert.Equal(t, []string{"a", "c"}, cardIDs(t, repo.Board, "new"))
		assert.Equal(t, []string{"d", "b"}, cardIDs(t, repo.Board, "contacted"))
		assert.Equal(t, repo.Board, out.Board)

		want := domain.MoveEvent{
			Time:           testNow,
			CardID:         "b",
			SourceColumnID: "new",
			DestColumnID:   "contacted",
			SourceIndex:    1,
			DestIndex:      1,
		}
		assert.Equal(t, want, out.Event)
		assert.Equal(t, []domain.MoveEvent{want}, obs.Events)
		assert.Equal(t, 1, savesAtNotify, "observer runs after the board is stored")
	})

	t.Run("by card id", func(t *testing.T) {
		repo := seededRepo(t)
		clock := &testutil.MockClock{NowTime: testNow}

		out, err := usecase.NewMoveCard(repo, clock, nil).Execute(context.Background(), usecase.MoveCardInput{
			CardID: "c", DestColumnID: "new", DestIndex: 0,
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"c", "a", "b"}, cardIDs(t, repo.Board, "new"))
		assert.Equal(t, 2, out.Event.SourceIndex)

		_, err = usecase.NewMoveCard(repo, clock, nil).Execute(context.Background(), usecase.MoveCardInput{
			CardID: "zzz", DestColumnID: "new",
		})
		assert.ErrorIs(t, err, domain.ErrCardNotFound)
	})

	t.Run("no-op is not reported", func(t *testing.T) {
		repo := seededRepo(t)
		before := repo.Board
		clock := &testutil.MockClock{NowTime: testNow}
		obs := &testutil.MockMoveObserver{}

		out, err := usecase.NewMoveCard(repo, clock, nil, obs).Execute(context.Background(), usecase.MoveCardInput{
			SourceColumnID: "new", SourceIndex: 0, DestColumnID: "new", DestIndex: 0,
		})
		require.NoError(t, err)
		assert.True(t, out.Event.NoOp)
		assert.Empty(t, obs.Events)
		assert.Equal(t, before, repo.Board)
		assert.Equal(t, 0, repo.SaveCount, "no-op is not written")
	})

	t.Run("committed move logs one summary line", func(t *testing.T) {
		repo := seededRepo(t)
		clock := &testutil.MockClock{NowTime: testNow}
		logger := &testutil.MockLogger{}

		_, err := usecase.NewMoveCard(repo, clock, logger).Execute(context.Background(), usecase.MoveCardInput{
			CardID: "a", DestColumnID: "won",
		})
		require.NoError(t, err)
		require.Len(t, logger.Entries, 1)
		assert.Equal(t, "INFO", logger.Entries[0].Level)
		assert.Equal(t, "moved card a from new[0] to won[0]", logger.Entries[0].Msg)
	})

	t.Run("clamped no-op is not written", func(t *testing.T) {
		repo := seededRepo(t)
		clock := &testutil.MockClock{NowTime: testNow}
		col, _ := repo.Board.Column("new")
		require.NotNil(t, col)
		last := col.Cards[len(col.Cards)-1].ID

		out, err := usecase.NewMoveCard(repo, clock, nil).Execute(context.Background(), usecase.MoveCardInput{
			CardID: last, DestColumnID: "new", DestIndex: 99,
		})
		require.NoError(t, err)
		assert.True(t, out.Event.NoOp)
		assert.Equal(t, len(col.Cards)-1, out.Event.DestIndex)
		assert.Equal(t, 0, repo.SaveCount)
	})

	t.Run("observer failure is logged, move stands", func(t *testing.T) {
		repo := seededRepo(t)
		clock := &testutil.MockClock{NowTime: testNow}
		logger := &testutil.MockLogger{}
		failing := &testutil.MockMoveObserver{Err: errors.New("disk full")}
		after := &testutil.MockMoveObserver{}

		_, err := usecase.NewMoveCard(repo, clock, logger, failing, after).Execute(context.Background(), usecase.MoveCardInput{
			SourceColumnID: "contacted", SourceIndex: 0, DestColumnID: "won", DestIndex: 0,
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"d"}, cardIDs(t, repo.Board, "won"))
		assert.Len(t, after.Events, 1, "later observers still run")

		var warned bool
		for _, e := range logger.Entries {
			if e.Level == "WARN" {
				warned = true
				assert.Contains(t, e.Msg, "disk full")
			}
		}
		assert.True(t, warned)
	})

	t.Run("errors leave board untouched", func(t *testing.T) {
		tests := []struct {
			wantErr error
			name    string
			in      usecase.MoveCardInput
		}{
			{domain.ErrColumnNotFound, "unknown source", usecase.MoveCardInput{SourceColumnID: "x", DestColumnID: "new"}},
			{domain.ErrColumnNotFound, "unknown dest", usecase.MoveCardInput{SourceColumnID: "new", DestColumnID: "x"}},
			{domain.ErrIndexOutOfRange, "source index", usecase.MoveCardInput{SourceColumnID: "new", SourceIndex: 3, DestColumnID: "won"}},
			{domain.ErrIndexOutOfRange, "empty column", usecase.MoveCardInput{SourceColumnID: "won", DestColumnID: "new"}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				repo := seededRepo(t)
				before := repo.Board
				obs := &testutil.MockMoveObserver{}
				clock := &testutil.MockClock{NowTime: testNow}

				_, err := usecase.NewMoveCard(repo, clock, nil, obs).Execute(context.Background(), tt.in)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, before, repo.Board)
				assert.Equal(t, 0, repo.SaveCount)
				assert.Empty(t, obs.Events)
			})
		}
	})

	t.Run("save failure skips observers", func(t *testing.T) {
		repo := seededRepo(t)
		repo.SaveErr = errors.New("locked")
		obs := &testutil.MockMoveObserver{}
		clock := &testutil.MockClock{NowTime: testNow}

		_, err := usecase.NewMoveCard(repo, clock, nil, obs).Execute(context.Background(), usecase.MoveCardInput{
			SourceColumnID: "new", DestColumnID: "won",
		})
		assert.Error(t, err)
		assert.Empty(t, obs.Events)
	})
}

func TestAddColumn_Execute(t *testing.T) {
	repo := testutil.NewMockBoardRepository()

	out, err := usecase.NewAddColumn(repo, nil).Execute(context.Background(), usecase.AddColumnInput{ID: "nurture"})
	require.NoError(t, err)
	last := out.Board.Columns[len(out.Board.Columns)-1]
	assert.Equal(t, "nurture", last.ID)
	assert.Equal(t, "nurture", last.Title)
	assert.Equal(t, out.Board, repo.Board)

	_, err = usecase.NewAddColumn(repo, nil).Execute(context.Background(), usecase.AddColumnInput{ID: "nurture"})
	assert.ErrorIs(t, err, domain.ErrColumnExists)
}

func TestRemoveColumn_Execute(t *testing.T) {
	repo := seededRepo(t)
	logger := &testutil.MockLogger{}

	out, err := usecase.NewRemoveColumn(repo, logger).Execute(context.Background(), usecase.RemoveColumnInput{ID: "lost"})
	require.NoError(t, err)
	col, _ := out.Board.Column("lost")
	assert.Nil(t, col)
	assert.Len(t, logger.Entries, 1)

	_, err = usecase.NewRemoveColumn(repo, nil).Execute(context.Background(), usecase.RemoveColumnInput{ID: "new"})
	assert.ErrorIs(t, err, domain.ErrColumnNotEmpty)

	_, err = usecase.NewRemoveColumn(repo, nil).Execute(context.Background(), usecase.RemoveColumnInput{ID: "lost"})
	assert.ErrorIs(t, err, domain.ErrColumnNotFound)
}

func TestListMoves_Execute(t *testing.T) {
	moveLog := &testutil.MockMoveLog{Events: []domain.MoveEvent{
		{CardID: "a", DestColumnID: "contacted"},
		{CardID: "b", DestColumnID: "contacted"},
		{CardID: "a", DestColumnID: "won"},
	}}
	uc := usecase.NewListMoves(moveLog)

	out, err := uc.Execute(context.Background(), usecase.ListMovesInput{})
	require.NoError(t, err)
	assert.Len(t, out.Moves, 3)

	out, err = uc.Execute(context.Background(), usecase.ListMovesInput{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, "b", out.Moves[0].CardID)

	out, err = uc.Execute(context.Background(), usecase.ListMovesInput{CardID: "a", Limit: 1})
	require.NoError(t, err)
	require.Len(t, out.Moves, 1)
	assert.Equal(t, "won", out.Moves[0].DestColumnID)
}

func TestBoardHistory_Execute(t *testing.T) {
	t.Run("returns newest revisions", func(t *testing.T) {
		history := &testutil.MockBoardHistory{Revisions: []domain.BoardRevision{
			{Hash: "c3", Message: "update board", Time: testNow},
			{Hash: "c2", Message: "update board"},
			{Hash: "c1", Message: "initialize board"},
		}}

		out, err := usecase.NewBoardHistory(history).Execute(context.Background(), usecase.BoardHistoryInput{Limit: 2})
		require.NoError(t, err)
		require.Len(t, out.Revisions, 2)
		assert.Equal(t, "c3", out.Revisions[0].Hash)
	})

	t.Run("store without history", func(t *testing.T) {
		_, err := usecase.NewBoardHistory(nil).Execute(context.Background(), usecase.BoardHistoryInput{})
		assert.ErrorIs(t, err, domain.ErrNoHistory)
	})

	t.Run("store error", func(t *testing.T) {
		history := &testutil.MockBoardHistory{Err: domain.ErrNotInitialized}
		_, err := usecase.NewBoardHistory(history).Execute(context.Background(), usecase.BoardHistoryInput{})
		assert.ErrorIs(t, err, domain.ErrNotInitialized)
	})
}
