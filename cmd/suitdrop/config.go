package main

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/iov-one/suitdrop"
	"github.com/iov-one/suitdrop/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// Config is the configuration of the run command, read from a TOML file.
type Config struct {
	// Home is the directory that all relative paths are resolved against.
	Home    string `toml:"home"`
	DBDir   string `toml:"db_dir"`
	ChainID string `toml:"chain_id"`
	// LogLevel is one of debug, info, error or none.
	LogLevel string `toml:"log_level"`
	// MetricsAddr if set exposes prometheus metrics over HTTP.
	MetricsAddr string `toml:"metrics_addr"`
	// BlockTime is the time between two consecutive blocks.
	BlockTime duration `toml:"block_time"`
}

// DefaultConfig returns the configuration used for all values that are
// not present in the configuration file.
func DefaultConfig() Config {
	return Config{
		Home:      filepath.Join(os.ExpandEnv("$HOME"), ".suitdrop"),
		DBDir:     "data",
		ChainID:   "suitdrop-local",
		LogLevel:  "info",
		BlockTime: duration{5 * time.Second},
	}
}

// LoadConfig reads the configuration file at given path. A missing path
// results in the default configuration.
func LoadConfig(path string) (Config, error) {
	conf := DefaultConfig()
	if path == "" {
		return conf, conf.Validate()
	}
	if _, err := toml.DecodeFile(path, &conf); err != nil {
		return conf, errors.Wrapf(errors.ErrInput, "config %s: %s", path, err)
	}
	return conf, conf.Validate()
}

func (c Config) Validate() error {
	var errs error
	if c.Home == "" {
		errs = errors.AppendField(errs, "Home", errors.ErrEmpty)
	}
	if c.DBDir == "" {
		errs = errors.AppendField(errs, "DBDir", errors.ErrEmpty)
	}
	if !suitdrop.IsValidChainID(c.ChainID) {
		errs = errors.AppendField(errs, "ChainID", errors.ErrInput)
	}
	if _, err := log.AllowLevel(c.LogLevel); err != nil {
		errs = errors.AppendField(errs, "LogLevel", errors.Wrap(errors.ErrInput, err.Error()))
	}
	if c.BlockTime.Duration <= 0 {
		errs = errors.AppendField(errs, "BlockTime", errors.ErrInput)
	}
	return errs
}

// DBPath returns the directory of the database.
func (c Config) DBPath() string {
	if filepath.IsAbs(c.DBDir) {
		return c.DBDir
	}
	return filepath.Join(c.Home, c.DBDir)
}

// Logger returns a logger writing to given file, filtered by the
// configured level.
func (c Config) Logger(w io.Writer) (log.Logger, error) {
	opt, err := log.AllowLevel(c.LogLevel)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return log.NewFilter(log.NewTMLogger(log.NewSyncWriter(w)), opt), nil
}

// duration is a time.Duration that is represented in TOML as a string,
// for example "5s".
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "duration %q", text)
	}
	d.Duration = v
	return nil
}

func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}
