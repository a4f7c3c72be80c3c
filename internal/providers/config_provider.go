package providers

import (
	"calltracker/internal/models"
	"calltracker/internal/structures"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.BindEnv("logger.level", "CT_LOG_LEVEL")
	viper.BindEnv("store.driver", "CT_STORE_DRIVER")
	viper.BindEnv("database.dsn", "CT_DATABASE_DSN")
	viper.BindEnv("search.strategy", "CT_SEARCH_STRATEGY")
	viper.BindEnv("cache.enabled", "CT_CACHE_ENABLED")
	viper.BindEnv("cache.size", "CT_CACHE_SIZE")

	viper.SetDefault("store.driver", "memory")
	viper.SetDefault("store.saveInterval", 30*time.Second)
	viper.SetDefault("search.strategy", "remote")
	viper.SetDefault("search.pageSize", models.DefaultPageSize)
	viper.SetDefault("search.debounce", 300*time.Millisecond)
	viper.SetDefault("session.ttl", 12*time.Hour)
	viper.SetDefault("session.sweepInterval", 10*time.Minute)
	viper.SetDefault("session.guestStore", "cache")
	viper.SetDefault("session.guestCacheSize", 8)
	viper.SetDefault("cache.ttl", 5*time.Second)
	viper.SetDefault("database.maxConns", 10)
	viper.SetDefault("database.minConns", 1)

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "CampaignCallTracker"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
