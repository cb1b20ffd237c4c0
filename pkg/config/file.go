package config

import (
	"bytes"
	"text/template"
)

var configFileTmpl = template.Must(template.New("config").Parse(`# TicsLab Server configurations

# The name of the server.
# It is used as the issuer of access tokens.
name: "{{ .Name }}"

# Logging configuration.
log:
  # Log format to use. Valid values are "json", "logfmt", and "text".
  format: "{{ .Log.Format }}"
  # Time format for the log "timestamp" field.
  # Should be described in Golang's time format.
  time_format: "{{ .Log.TimeFormat }}"
  # Path to the log file. Leave empty to write to stderr.
  #path: "{{ .Log.Path }}"

# The HTTP server configuration.
http:
  # The address on which the HTTP server will listen.
  listen_addr: "{{ .HTTP.ListenAddr }}"

  # The public URL of the HTTP server.
  public_url: "{{ .HTTP.PublicURL }}"

  # The largest accepted upload request in bytes.
  max_upload_size: {{ .HTTP.MaxUploadSize }}

  # Cross-origin resource sharing.
  cors:
    allowed_origins:{{ range .HTTP.CORS.AllowedOrigins }}
      - "{{ . }}"{{ end }}
    allowed_headers:{{ range .HTTP.CORS.AllowedHeaders }}
      - "{{ . }}"{{ end }}
    allowed_methods:{{ range .HTTP.CORS.AllowedMethods }}
      - "{{ . }}"{{ end }}

# The stats server configuration.
stats:
  # Whether to expose prometheus metrics.
  enabled: {{ .Stats.Enabled }}
  # The address on which the stats server will listen.
  listen_addr: "{{ .Stats.ListenAddr }}"

# The database configuration.
db:
  # The database driver to use.
  # Valid values are "sqlite" and "postgres".
  driver: "{{ .DB.Driver }}"
  # The database data source name.
  # This is driver specific and can be a file path or connection string.
  data_source: "{{ .DB.DataSource }}"

# The file storage configuration.
storage:
  # Root directory of the versioned files. Every repository gets its own
  # repo_<id> directory underneath.
  path: "{{ .Storage.Path }}"

# Access token configuration.
auth:
  # Secret used to sign access tokens. Keep it private.
  jwt_secret: "{{ .Auth.JWTSecret }}"
  # Lifetime of access tokens in minutes.
  access_token_expire_minutes: {{ .Auth.AccessTokenExpireMinutes }}
  # Login attempts allowed per minute and remote address.
  login_rate_limit: {{ .Auth.LoginRateLimit }}
`))

func newConfigFile(cfg *Config) string {
	var b bytes.Buffer
	configFileTmpl.Execute(&b, cfg) // nolint: errcheck
	return b.String()
}
