package config

import (
	"strings"
	"testing"

	"github.com/matryer/is"
	"gopkg.in/yaml.v3"
)

func TestNewConfigFile(t *testing.T) {
	is := is.New(t)
	cfg := DefaultConfig()
	cfg.Storage.Path = "/srv/tics/storage"
	cfg.Auth.JWTSecret = "s3cret"
	cfg.Auth.LoginRateLimit = 7
	cfg.HTTP.MaxUploadSize = 1 << 20

	s := newConfigFile(cfg)
	for _, section := range []string{"\nhttp:", "\nstats:", "\ndb:", "\nstorage:", "\nauth:"} {
		is.True(strings.Contains(s, section)) // section missing
	}

	var parsed Config
	is.NoErr(yaml.Unmarshal([]byte(s), &parsed))
	is.Equal(parsed.Name, cfg.Name)
	is.Equal(parsed.Storage.Path, "/srv/tics/storage")
	is.Equal(parsed.Auth.JWTSecret, "s3cret")
	is.Equal(parsed.Auth.AccessTokenExpireMinutes, 30)
	is.Equal(parsed.Auth.LoginRateLimit, 7)
	is.Equal(parsed.HTTP.MaxUploadSize, int64(1<<20))
	is.Equal(parsed.HTTP.CORS.AllowedMethods, cfg.HTTP.CORS.AllowedMethods)
	is.Equal(parsed.DB.DataSource, cfg.DB.DataSource)
}

func TestNewConfigFileEmpty(t *testing.T) {
	is := is.New(t)
	s := newConfigFile(&Config{})

	var parsed Config
	is.NoErr(yaml.Unmarshal([]byte(s), &parsed))
	is.Equal(parsed.Storage.Path, "")
	is.Equal(parsed.Auth.JWTSecret, "")
}
