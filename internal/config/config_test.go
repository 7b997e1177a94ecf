package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ConfigSuite struct {
	suite.Suite
	dir string
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigSuite))
}

func (s *ConfigSuite) SetupTest() {
	s.dir = s.T().TempDir()
}

func (s *ConfigSuite) writeConfig(body string) string {
	path := filepath.Join(s.dir, "playerstore.yaml")
	s.Require().NoError(os.WriteFile(path, []byte(body), 0o600))
	return path
}

func (s *ConfigSuite) TestDefault() {
	cfg := Default()

	s.Equal(StorageTypeFile, cfg.Storage.Type)
	s.Equal("./data.json", cfg.Storage.Path)
	s.False(cfg.Registry.StrictValidation)
	s.Equal(15, cfg.Registry.MaxNicknameLength)
	s.Equal("info", cfg.Log.Level)
	s.Equal("json", cfg.Log.Format)
	s.NoError(cfg.Validate())
}

func (s *ConfigSuite) TestLoadFileConfig() {
	path := s.writeConfig(`
storage:
  type: file
  path: /var/lib/playerstore/players.json
registry:
  strict_validation: true
  max_nickname_length: 20
log:
  level: debug
  format: text
`)

	cfg, err := Load(path)
	s.Require().NoError(err)

	s.Equal("/var/lib/playerstore/players.json", cfg.Storage.Path)
	s.True(cfg.RegistryConfig().StrictValidation)
	s.Equal(20, cfg.RegistryConfig().MaxNicknameLength)
	s.Equal("debug", cfg.LoggingConfig().Level)
	s.Equal("text", cfg.LoggingConfig().Format)
}

func (s *ConfigSuite) TestLoadRedisConfigFillsDefaults() {
	path := s.writeConfig(`
storage:
  type: redis
  redis:
    url: redis://cache:6379/2
`)

	cfg, err := Load(path)
	s.Require().NoError(err)

	redisCfg := cfg.RedisConfig()
	s.Equal("redis://cache:6379/2", redisCfg.URL)
	s.Equal("playerstore", redisCfg.Namespace)
	s.Equal(10, redisCfg.PoolSize)
	s.Equal(2, redisCfg.MinIdleConns)
}

func (s *ConfigSuite) TestLoadPostgresConfig() {
	path := s.writeConfig(`
storage:
  type: postgres
  postgres:
    dsn: postgres://app@db/players
    table: registry
    ensure_schema: true
`)

	cfg, err := Load(path)
	s.Require().NoError(err)

	pgCfg := cfg.PostgresConfig()
	s.Equal("postgres://app@db/players", pgCfg.DSN)
	s.Equal("registry", pgCfg.Table)
	s.Equal(4, pgCfg.MaxOpenConns)
	s.True(cfg.Storage.Postgres.EnsureSchema)
}

func (s *ConfigSuite) TestEmptyFileUsesDefaults() {
	cfg, err := Load(s.writeConfig(""))
	s.Require().NoError(err)
	s.Equal(Default(), cfg)
}

func (s *ConfigSuite) TestLoadMissingFileFails() {
	_, err := Load(filepath.Join(s.dir, "missing.yaml"))
	s.Error(err)
}

func (s *ConfigSuite) TestParseInvalidYAMLFails() {
	_, err := Parse([]byte("storage: [unterminated"))
	s.Error(err)
}

func (s *ConfigSuite) TestParseRejectsUnknownStorageType() {
	_, err := Parse([]byte("storage:\n  type: mongo\n"))
	s.ErrorContains(err, "invalid storage type")
}

func (s *ConfigSuite) TestParseRejectsBadLogLevel() {
	_, err := Parse([]byte("log:\n  level: shouty\n"))
	s.Error(err)
}

func (s *ConfigSuite) TestParseRejectsNegativeNicknameLength() {
	_, err := Parse([]byte("registry:\n  max_nickname_length: -1\n"))
	s.Error(err)
}
