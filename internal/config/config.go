// Package config loads process configuration from environment variables.
package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Google holds the OAuth client used for the login gate.
type Google struct {
	ClientID     string `envconfig:"GOOGLE_CLIENT_ID" required:"true"`
	ClientSecret string `envconfig:"GOOGLE_CLIENT_SECRET" required:"true"`
	RedirectURL  string `envconfig:"GOOGLE_REDIRECT_URL" required:"true"`
}

// Metabase holds the BI service connection.
type Metabase struct {
	URL      string `envconfig:"METABASE_URL" required:"true"`
	Username string `envconfig:"METABASE_USERNAME" required:"true"`
	Password string `envconfig:"METABASE_PASSWORD" required:"true"`
}

// Queries selects the two saved questions the dashboard is built from.
type Queries struct {
	ScheduleQueryID int `envconfig:"SCHEDULE_QUERY_ID" default:"3021"`
	TripQueryID     int `envconfig:"TRIP_QUERY_ID" default:"3023"`
}

// Server is the full configuration of the `serve` command.
type Server struct {
	Google   Google
	Metabase Metabase
	Queries  Queries

	AllowedEmails []string      `envconfig:"ALLOWED_EMAILS" required:"true"`
	Port          int           `envconfig:"PORT" default:"8080"`
	SessionTTL    time.Duration `envconfig:"SESSION_TTL" default:"12h"`

	OTLPEndpoint string `envconfig:"OTLP_ENDPOINT"`
	OTLPInsecure bool   `envconfig:"OTLP_INSECURE" default:"false"`
}

// Report is the configuration of the headless `report` command, which needs
// no login gate and no listener.
type Report struct {
	Metabase Metabase
	Queries  Queries
}

// LoadServer loads serve configuration from environment variables.
func LoadServer() (*Server, error) {
	var cfg Server
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadReport loads report configuration from environment variables.
func LoadReport() (*Report, error) {
	var cfg Report
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
