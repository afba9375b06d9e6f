package config

import "time"

type Config struct {
	Env          string       `yaml:"env" env:"ENV" env-default:"local"`
	DBConfig     DBConfig     `yaml:"db" env-required:"true"`
	PollerConfig PollerConfig `yaml:"poller"`
}

type DBConfig struct {
	Host     string `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port     string `yaml:"port" env:"DB_PORT" env-default:"5432"`
	Name     string `yaml:"name" env:"DB_NAME" env-default:"sceneboard"`
	User     string `yaml:"user" env:"DB_USER" env-default:"user"`
	Password string `yaml:"password" env:"DB_PASSWORD" env-default:"password"`
	SSLMode  string `yaml:"sslmode" env:"DB_SSLMODE" env-default:"disable"`
}

// PollerConfig настраивает импорт iCal-фидов площадок.
type PollerConfig struct {
	FetchTimeout time.Duration `yaml:"fetchTimeout" env:"POLLER_FETCH_TIMEOUT" env-default:"15s"`
	UserAgent    string        `yaml:"userAgent" env:"POLLER_USER_AGENT" env-default:"SceneBoard/1.0 iCal-Importer"`
	PastGrace    time.Duration `yaml:"pastGrace" env:"POLLER_PAST_GRACE" env-default:"1h"`
}
