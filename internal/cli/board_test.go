package cli

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesdeck/salesdeck/internal/domain"
	"github.com/salesdeck/salesdeck/internal/testutil"
)

func cardIDs(t *testing.T, board domain.Board, columnID string) []string {
	t.Helper()
	col, _ := board.Column(columnID)
	require.NotNil(t, col)
	ids := make([]string, 0, len(col.Cards))
	for _, card := range col.Cards {
		ids = append(ids, card.ID)
	}
	return ids
}

func TestBoardCommand_Table(t *testing.T) {
	env := newTestEnv(t)
	env.seedCard(t, "new", "a", "Acme")

	out, err := env.run(t, "board")

	require.NoError(t, err)
	assert.Contains(t, out, "COLUMN")
	assert.Contains(t, out, "New Lead (1)")
	assert.Contains(t, out, "Acme")
	assert.Contains(t, out, "Won (0)")
}

func TestBoardCommand_JSON(t *testing.T) {
	env := newTestEnv(t)
	env.seedCard(t, "new", "a", "Acme")

	out, err := env.run(t, "board", "--format", "json")
	require.NoError(t, err)

	var board domain.Board
	require.NoError(t, json.Unmarshal([]byte(out), &board))
	assert.Equal(t, []string{"a"}, cardIDs(t, board, "new"))
}

func TestBoardCommand_UnknownFormat(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "board", "--format", "xml")

	assert.ErrorContains(t, err, `unknown format "xml"`)
}

func TestBoardMovesCommand(t *testing.T) {
	env := newTestEnv(t)
	env.moves.Events = []domain.MoveEvent{
		{Time: time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC), CardID: "a", SourceColumnID: "new", DestColumnID: "contacted", DestIndex: 2},
		{Time: time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC), CardID: "b", SourceColumnID: "new", DestColumnID: "lost"},
	}

	out, err := env.run(t, "board", "moves", "--card", "a")

	require.NoError(t, err)
	assert.Contains(t, out, "new[0]")
	assert.Contains(t, out, "contacted[2]")
	assert.NotContains(t, out, "lost")
}

func TestBoardHistoryCommand(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "board", "history")
	assert.ErrorIs(t, err, domain.ErrNoHistory)

	env.c.History = &testutil.MockBoardHistory{Revisions: []domain.BoardRevision{
		{Time: testNow, Hash: "0123456789abcdef", Message: "move card a\n"},
	}}
	out, err := env.run(t, "board", "history")
	require.NoError(t, err)
	assert.Contains(t, out, "01234567")
	assert.NotContains(t, out, "0123456789")
	assert.Contains(t, out, "move card a")
}

func TestCardAddCommand(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "card", "add", "meeting", "--name", "Globex", "--email", "hank@globex.test")
	require.NoError(t, err)
	assert.Contains(t, out, "to meeting")

	col, _ := env.boards.Board.Column("meeting")
	require.NotNil(t, col)
	require.Len(t, col.Cards, 1)
	card := col.Cards[0]
	assert.Contains(t, out, card.ID)
	assert.Equal(t, "Globex", card.Fields.Name)
	assert.Equal(t, "hank@globex.test", card.Fields.Email)
	assert.Equal(t, "meeting", card.Status)
}

func TestCardAddCommand_UnknownColumn(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "card", "add", "nope")

	assert.ErrorIs(t, err, domain.ErrColumnNotFound)
}

func TestCardMoveCommand(t *testing.T) {
	env := newTestEnv(t)
	env.seedCard(t, "new", "a", "Acme")
	env.seedCard(t, "new", "b", "Globex")
	env.seedCard(t, "contacted", "c", "Initech")

	out, err := env.run(t, "card", "move", "a", "--to", "contacted", "--position", "0")
	require.NoError(t, err)
	assert.Equal(t, "Moved card a: new[0] -> contacted[0]\n", out)
	assert.Equal(t, []string{"a", "c"}, cardIDs(t, env.boards.Board, "contacted"))

	out, err = env.run(t, "card", "move", "--from", "new", "--index", "0", "--to", "lost")
	require.NoError(t, err)
	assert.Equal(t, "Moved card b: new[0] -> lost[0]\n", out)
	assert.Empty(t, cardIDs(t, env.boards.Board, "new"))

	out, err = env.run(t, "card", "move", "c", "--to", "contacted")
	require.NoError(t, err)
	assert.Equal(t, "Card c is already at contacted[1]\n", out)
}

func TestCardMoveCommand_Errors(t *testing.T) {
	env := newTestEnv(t)
	env.seedCard(t, "new", "a", "Acme")

	tests := []struct {
		name    string
		wantErr error
		wantMsg string
		args    []string
	}{
		{name: "missing card and source", args: []string{"card", "move", "--to", "won"}, wantMsg: "either a card id or --from is required"},
		{name: "missing destination", args: []string{"card", "move", "a"}, wantMsg: `required flag(s) "to" not set`},
		{name: "unknown card", args: []string{"card", "move", "ghost", "--to", "won"}, wantErr: domain.ErrCardNotFound},
		{name: "source index out of range", args: []string{"card", "move", "--from", "new", "--index", "4", "--to", "won"}, wantErr: domain.ErrIndexOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.run(t, tt.args...)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				assert.ErrorContains(t, err, tt.wantMsg)
			}
		})
	}
}

func TestColumnCommands(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "column", "add", "nurture", "--title", "Nurture")
	require.NoError(t, err)
	assert.Equal(t, "Added column nurture\n", out)
	col, _ := env.boards.Board.Column("nurture")
	require.NotNil(t, col)
	assert.Equal(t, "Nurture", col.Title)

	_, err = env.run(t, "column", "add", "nurture")
	assert.ErrorIs(t, err, domain.ErrColumnExists)

	env.seedCard(t, "won", "a", "Acme")
	_, err = env.run(t, "column", "rm", "won")
	assert.ErrorIs(t, err, domain.ErrColumnNotEmpty)

	out, err = env.run(t, "column", "rm", "nurture")
	require.NoError(t, err)
	assert.Equal(t, "Removed column nurture\n", out)
	col, _ = env.boards.Board.Column("nurture")
	assert.Nil(t, col)
}
