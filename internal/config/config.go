package config

import (
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// MustLoad читает конфигурацию из файла path (либо из CONFIG_PATH,
// если path пуст) и дополняет её переменными окружения.
// Паникует при любой ошибке: без конфигурации запуск бессмыслен.
func MustLoad(path string) *Config {
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		panic("config path is not set")
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		panic("config file does not exist: " + path)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		panic("cannot read config: " + err.Error())
	}

	return &cfg
}
