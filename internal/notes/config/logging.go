package config

import "gonotes/pkg/logger"

// LoggingConfig содержит настройки логирования.
type LoggingConfig struct {
	Level string `yaml:"level" env:"NOTES_LOGGER_LEVEL" env-default:"info"`
	Mode  string `yaml:"mode" env:"NOTES_LOGGER_MODE" env-default:"production"`
}

// GetEnvironment возвращает режим работы логгера.
func (l *LoggingConfig) GetEnvironment() logger.Environment {
	if l.Mode == string(logger.Development) {
		return logger.Development
	}
	return logger.Production
}
