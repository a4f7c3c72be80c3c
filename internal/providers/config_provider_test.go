package providers

import (
	"calltracker/internal/models"
	"calltracker/internal/structures"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShippedConfig_UsesDefaultPageSize(t *testing.T) {
	v := viper.New()
	v.SetConfigFile(filepath.Join("..", "..", "config", "config.yml"))
	require.NoError(t, v.ReadInConfig())
	assert.Equal(t, models.DefaultPageSize, v.GetInt("search.pageSize"))
}

const minimalConfig = `webServer:
  host: 127.0.0.1
  port: 8090
logger:
  level: info
  mode: 420
  dir: /tmp/logs
store:
  driver: memory
  snapshotPath: /tmp/calltracker.dat
search:
  strategy: remote
session:
  guestStore: cache
`

func TestNewConfigProvider_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(minimalConfig), 0o644))

	conf, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path})
	require.NoError(t, err)
	assert.Equal(t, models.DefaultPageSize, conf.Search.PageSize)
	assert.Equal(t, path, conf.Path)
	assert.Equal(t, "cache", conf.Session.GuestStore)
}
