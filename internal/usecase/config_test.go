package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesdeck/salesdeck/internal/domain"
	"github.com/salesdeck/salesdeck/internal/testutil"
	"github.com/salesdeck/salesdeck/internal/usecase"
)

func TestShowConfig_Execute(t *testing.T) {
	t.Run("returns both config infos and effective config", func(t *testing.T) {
		manager := testutil.NewMockConfigManager()
		manager.RepoConfigInfo = domain.ConfigInfo{
			Path:    "/test/.salesdeck/config.toml",
			Content: "[store]\ntype = \"git\"",
			Exists:  true,
		}
		loader := testutil.NewMockConfigLoader()
		loader.Config.Store.Type = domain.StoreTypeGit

		out, err := usecase.NewShowConfig(manager, loader).Execute(context.Background(), usecase.ShowConfigInput{})
		require.NoError(t, err)

		assert.True(t, out.RepoConfig.Exists)
		assert.Equal(t, "[store]\ntype = \"git\"", out.RepoConfig.Content)
		assert.False(t, out.GlobalConfig.Exists)
		assert.Equal(t, domain.StoreTypeGit, out.EffectiveConfig.Store.Type)
	})

	t.Run("load error", func(t *testing.T) {
		loader := testutil.NewMockConfigLoader()
		loader.LoadErr = domain.ErrInvalidStoreType

		_, err := usecase.NewShowConfig(testutil.NewMockConfigManager(), loader).Execute(context.Background(), usecase.ShowConfigInput{})
		assert.ErrorIs(t, err, domain.ErrInvalidStoreType)
	})
}

func TestInitConfig_Execute(t *testing.T) {
	t.Run("creates repo config", func(t *testing.T) {
		manager := testutil.NewMockConfigManager()

		out, err := usecase.NewInitConfig(manager).Execute(context.Background(), usecase.InitConfigInput{})
		require.NoError(t, err)
		assert.Equal(t, "/test/.salesdeck/config.toml", out.Path)
		assert.True(t, manager.InitRepoCalled)
		assert.False(t, manager.InitGlobalCalled)
		assert.Equal(t, domain.NewDefaultConfig(), manager.InitConfig)
	})

	t.Run("creates global config", func(t *testing.T) {
		manager := testutil.NewMockConfigManager()
		cfg := domain.NewDefaultConfig()

		out, err := usecase.NewInitConfig(manager).Execute(context.Background(), usecase.InitConfigInput{Global: true, Config: cfg})
		require.NoError(t, err)
		assert.Equal(t, "/home/test/.config/salesdeck/config.toml", out.Path)
		assert.True(t, manager.InitGlobalCalled)
		assert.Same(t, cfg, manager.InitConfig)
	})

	t.Run("returns error when config already exists", func(t *testing.T) {
		manager := testutil.NewMockConfigManager()
		manager.InitRepoErr = domain.ErrConfigExists

		_, err := usecase.NewInitConfig(manager).Execute(context.Background(), usecase.InitConfigInput{})
		assert.ErrorIs(t, err, domain.ErrConfigExists)
	})

	t.Run("returns global error", func(t *testing.T) {
		manager := testutil.NewMockConfigManager()
		manager.InitGlobalErr = errors.New("permission denied")

		_, err := usecase.NewInitConfig(manager).Execute(context.Background(), usecase.InitConfigInput{Global: true})
		assert.Error(t, err)
	})
}

func TestShowConfigTemplate_Execute(t *testing.T) {
	out, err := usecase.NewShowConfigTemplate().Execute(context.Background(), usecase.ShowConfigTemplateInput{})
	require.NoError(t, err)
	assert.Equal(t, domain.RenderConfigTemplate(nil), out.Template)
}
