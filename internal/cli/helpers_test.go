package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/salesdeck/salesdeck/internal/app"
	"github.com/salesdeck/salesdeck/internal/domain"
	"github.com/salesdeck/salesdeck/internal/testutil"
)

var testNow = time.Date(2025, 4, 1, 9, 30, 0, 0, time.UTC)

type testEnv struct {
	c         *app.Container
	boards    *testutil.MockBoardRepository
	documents *testutil.MockDocumentStore
	storeInit *testutil.MockStoreInitializer
	configMgr *testutil.MockConfigManager
	moves     *testutil.MockMoveLog
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	boards := testutil.NewMockBoardRepository()
	documents := testutil.NewMockDocumentStore()
	storeInit := &testutil.MockStoreInitializer{}
	clock := &testutil.MockClock{NowTime: testNow}

	c := app.NewWithDeps(app.Config{DataDir: filepath.Join(t.TempDir(), ".salesdeck")}, boards, storeInit, documents, clock, nil)
	configMgr := testutil.NewMockConfigManager()
	moves := &testutil.MockMoveLog{}
	c.ConfigManager = configMgr
	c.ConfigLoader = testutil.NewMockConfigLoader()
	c.Moves = moves

	return &testEnv{
		c:         c,
		boards:    boards,
		documents: documents,
		storeInit: storeInit,
		configMgr: configMgr,
		moves:     moves,
	}
}

// run executes the root command with args and returns stdout.
func (e *testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand(e.c, "test")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

// seedCard puts a card straight into the board.
func (e *testEnv) seedCard(t *testing.T, columnID, id, name string) {
	t.Helper()
	fields := domain.DefaultCardFields(testNow)
	fields.Name = name
	board, err := e.boards.Board.AddCard(columnID, domain.Card{ID: id, Status: columnID, Fields: fields})
	require.NoError(t, err)
	e.boards.Board = board
}
