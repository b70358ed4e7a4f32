// Package app provides the dependency injection container for the application.
package app

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/salesdeck/salesdeck/internal/domain"
	"github.com/salesdeck/salesdeck/internal/infra/config"
	"github.com/salesdeck/salesdeck/internal/infra/gitstore"
	"github.com/salesdeck/salesdeck/internal/infra/jsonstore"
	"github.com/salesdeck/salesdeck/internal/infra/logging"
	"github.com/salesdeck/salesdeck/internal/usecase"
)

// Config holds the application paths.
type Config struct {
	Root      string // Project directory the command runs in
	DataDir   string // Path to .salesdeck directory
	StorePath string // Path to board.json (json store only)
	PagesPath string // Path to the pages database
}

// newConfig derives the paths for a project root from the loaded settings.
func newConfig(root string, appConfig *domain.Config) Config {
	dataDir := domain.RepoDataDir(root)
	pagesPath := domain.PagesDBPath(dataDir)
	if db := appConfig.Pages.Database; db != "" {
		if filepath.IsAbs(db) {
			pagesPath = db
		} else {
			pagesPath = filepath.Join(dataDir, db)
		}
	}
	return Config{
		Root:      root,
		DataDir:   dataDir,
		StorePath: domain.BoardStorePath(dataDir),
		PagesPath: pagesPath,
	}
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Boards           domain.BoardRepository
	StoreInitializer domain.StoreInitializer
	History          domain.BoardHistory // nil unless the store keeps revisions
	Documents        domain.DocumentStore
	Clock            domain.Clock
	ConfigLoader     domain.ConfigLoader
	ConfigManager    domain.ConfigManager
	FileLogger       domain.Logger
	Moves            domain.MoveLog

	// Pointer fields
	Logger    *slog.Logger
	Mapper    *domain.Mapper
	AppConfig *domain.Config

	observers []domain.MoveObserver
	closers   []io.Closer

	// Configuration
	Config Config
}

// New creates a new Container for the project rooted at dir.
func New(dir string) (*Container, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	dataDir := domain.RepoDataDir(root)

	configLoader := config.NewLoader(dataDir)
	appConfig, err := configLoader.Load()
	if err != nil {
		return nil, err
	}
	cfg := newConfig(root, appConfig)

	var (
		boards    domain.BoardRepository
		storeInit domain.StoreInitializer
		history   domain.BoardHistory
	)
	switch appConfig.Store.Type {
	case domain.StoreTypeGit:
		gitStore, err := gitstore.New(root, appConfig.Store.Namespace)
		if err != nil {
			return nil, err
		}
		boards, storeInit, history = gitStore, gitStore, gitStore
	default:
		jsonStore := jsonstore.New(cfg.StorePath)
		boards, storeInit = jsonStore, jsonStore
	}

	fileLogger := logging.New(cfg.DataDir, logging.ParseLevel(appConfig.Log.Level))
	moves := logging.NewMoveAudit(cfg.DataDir)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logging.ParseLevel(appConfig.Log.Level),
	}))

	documents := newLazyDocumentStore(cfg.DataDir, cfg.PagesPath)

	return &Container{
		Boards:           boards,
		StoreInitializer: storeInit,
		History:          history,
		Documents:        documents,
		Clock:            domain.RealClock{},
		ConfigLoader:     configLoader,
		ConfigManager:    config.NewManager(dataDir),
		FileLogger:       fileLogger,
		Moves:            moves,
		Logger:           logger,
		Mapper:           domain.NewMapper(nil),
		AppConfig:        appConfig,
		observers:        []domain.MoveObserver{moves},
		closers:          []io.Closer{documents, fileLogger},
		Config:           cfg,
	}, nil
}

// NewWithDeps creates a new Container with custom dependencies for testing.
func NewWithDeps(cfg Config, boards domain.BoardRepository, storeInit domain.StoreInitializer, documents domain.DocumentStore, clock domain.Clock, logger *slog.Logger) *Container {
	return &Container{
		Boards:           boards,
		StoreInitializer: storeInit,
		Documents:        documents,
		Clock:            clock,
		Logger:           logger,
		Mapper:           domain.NewMapper(clock),
		AppConfig:        domain.NewDefaultConfig(),
		Config:           cfg,
	}
}

// AddMoveObserver registers an observer for committed card moves.
func (c *Container) AddMoveObserver(o domain.MoveObserver) {
	c.observers = append(c.observers, o)
}

// Close releases open files and database handles.
func (c *Container) Close() error {
	var errs []error
	for _, closer := range c.closers {
		if err := closer.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// UseCase factory methods

// InitBoardUseCase returns a new InitBoard use case.
func (c *Container) InitBoardUseCase() *usecase.InitBoard {
	return usecase.NewInitBoard(c.StoreInitializer, c.FileLogger)
}

// ShowBoardUseCase returns a new ShowBoard use case.
func (c *Container) ShowBoardUseCase() *usecase.ShowBoard {
	return usecase.NewShowBoard(c.Boards)
}

// BoardHistoryUseCase returns a new BoardHistory use case.
func (c *Container) BoardHistoryUseCase() *usecase.BoardHistory {
	return usecase.NewBoardHistory(c.History)
}

// AddCardUseCase returns a new AddCard use case.
func (c *Container) AddCardUseCase() *usecase.AddCard {
	return usecase.NewAddCard(c.Boards, c.Clock, c.FileLogger)
}

// MoveCardUseCase returns a new MoveCard use case notifying the registered observers.
func (c *Container) MoveCardUseCase() *usecase.MoveCard {
	return usecase.NewMoveCard(c.Boards, c.Clock, c.FileLogger, c.observers...)
}

// AddColumnUseCase returns a new AddColumn use case.
func (c *Container) AddColumnUseCase() *usecase.AddColumn {
	return usecase.NewAddColumn(c.Boards, c.FileLogger)
}

// RemoveColumnUseCase returns a new RemoveColumn use case.
func (c *Container) RemoveColumnUseCase() *usecase.RemoveColumn {
	return usecase.NewRemoveColumn(c.Boards, c.FileLogger)
}

// ListMovesUseCase returns a new ListMoves use case.
func (c *Container) ListMovesUseCase() *usecase.ListMoves {
	return usecase.NewListMoves(c.Moves)
}

// ListPagesUseCase returns a new ListPages use case.
func (c *Container) ListPagesUseCase() *usecase.ListPages {
	return usecase.NewListPages(c.Documents, c.Mapper)
}

// ShowPageUseCase returns a new ShowPage use case.
func (c *Container) ShowPageUseCase() *usecase.ShowPage {
	return usecase.NewShowPage(c.Documents, c.Mapper)
}

// ExportPageUseCase returns a new ExportPage use case.
func (c *Container) ExportPageUseCase() *usecase.ExportPage {
	return usecase.NewExportPage(c.Documents)
}

// SavePageUseCase returns a new SavePage use case.
func (c *Container) SavePageUseCase() *usecase.SavePage {
	return usecase.NewSavePage(c.Documents, c.Mapper, c.FileLogger)
}

// ImportDocumentUseCase returns a new ImportDocument use case.
func (c *Container) ImportDocumentUseCase() *usecase.ImportDocument {
	return usecase.NewImportDocument(c.Documents, c.Mapper, c.FileLogger)
}

// DeletePageUseCase returns a new DeletePage use case.
func (c *Container) DeletePageUseCase() *usecase.DeletePage {
	return usecase.NewDeletePage(c.Documents, c.FileLogger)
}

// ShowConfigUseCase returns a new ShowConfig use case.
func (c *Container) ShowConfigUseCase() *usecase.ShowConfig {
	return usecase.NewShowConfig(c.ConfigManager, c.ConfigLoader)
}

// InitConfigUseCase returns a new InitConfig use case.
func (c *Container) InitConfigUseCase() *usecase.InitConfig {
	return usecase.NewInitConfig(c.ConfigManager)
}

// ShowConfigTemplateUseCase returns a new ShowConfigTemplate use case.
func (c *Container) ShowConfigTemplateUseCase() *usecase.ShowConfigTemplate {
	return usecase.NewShowConfigTemplate()
}
