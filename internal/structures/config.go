package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

// StoreConfig selects the record store backend. The memory driver keeps the
// roster in-process and snapshots call/identity/export rows to SnapshotPath.
type StoreConfig struct {
	Driver       string        `yaml:"driver" validate:"required|in:memory,postgres"`
	RosterPath   string        `yaml:"rosterPath"`
	SnapshotPath string        `yaml:"snapshotPath"`
	SaveInterval time.Duration `yaml:"saveInterval"`
}

type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"`
	MaxConns        int32         `yaml:"maxConns"`
	MinConns        int32         `yaml:"minConns"`
	MaxConnLifetime time.Duration `yaml:"maxConnLifetime"`
	MaxConnIdleTime time.Duration `yaml:"maxConnIdleTime"`
	MigrateOnStart  bool          `yaml:"migrateOnStart"`
}

type SearchConfig struct {
	Strategy               string        `yaml:"strategy" validate:"required|in:client,remote"`
	PageSize               int           `yaml:"pageSize"`
	Debounce               time.Duration `yaml:"debounce"`
	Timeout                time.Duration `yaml:"timeout"`
	AddressMatchesMetadata bool          `yaml:"addressMatchesMetadata"`
}

// SessionConfig controls guest sessions. GuestStore picks where the
// token -> identity mapping lives: an in-process cache or a JSON file.
type SessionConfig struct {
	TTL            time.Duration `yaml:"ttl"`
	SweepInterval  time.Duration `yaml:"sweepInterval"`
	GuestStore     string        `yaml:"guestStore" validate:"required|in:cache,file"`
	GuestFile      string        `yaml:"guestFile"`
	GuestCacheSize int           `yaml:"guestCacheSize"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type SlipConfig struct {
	Candidate    string `yaml:"candidate"`
	Designation  string `yaml:"designation"`
	BallotNumber string `yaml:"ballotNumber"`
	Election     string `yaml:"election"`
	ShareURL     string `yaml:"shareUrl"`
}

type Config struct {
	AppName   string
	Debug     bool
	Path      string
	WebServer Server         `yaml:"webServer"`
	Logger    LoggerConfig   `yaml:"logger"`
	Store     StoreConfig    `yaml:"store"`
	Database  DatabaseConfig `yaml:"database"`
	Search    SearchConfig   `yaml:"search"`
	Session   SessionConfig  `yaml:"session"`
	Cache     CacheConfig    `yaml:"cache"`
	Metrics   MetricsConfig  `yaml:"metrics"`
	Slip      SlipConfig     `yaml:"slip"`
}
