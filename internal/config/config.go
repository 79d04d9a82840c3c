// Package config loads wordiz settings from defaults, an optional YAML file
// and WORDIZ_ environment variables.
package config

import "time"

// Config holds all application configuration.
type Config struct {
	DB     DBConfig     `mapstructure:"db"`
	Log    LogConfig    `mapstructure:"log"`
	Quiz   QuizConfig   `mapstructure:"quiz"`
	Timing TimingConfig `mapstructure:"timing"`
	Corpus CorpusConfig `mapstructure:"corpus"`
}

// DBConfig locates the SQLite database. An empty Path means the XDG
// default.
type DBConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=json text"`
	File   string `mapstructure:"file"`
}

// QuizConfig holds the default session settings.
type QuizConfig struct {
	Mode             string `mapstructure:"mode" validate:"required,oneof=practice challenge timed custom"`
	Difficulty       string `mapstructure:"difficulty" validate:"omitempty,oneof=easy medium hard mixed"`
	Category         string `mapstructure:"category" validate:"omitempty,max=64"`
	Count            int    `mapstructure:"count" validate:"min=1,max=100"`
	TimeLimitSeconds int    `mapstructure:"time_limit_seconds" validate:"gte=0,lte=3600"`
}

// TimeLimit returns the countdown budget as a duration.
func (q QuizConfig) TimeLimit() time.Duration {
	return time.Duration(q.TimeLimitSeconds) * time.Second
}

// TimingConfig overrides the engine delays.
type TimingConfig struct {
	FeedbackDelay time.Duration `mapstructure:"feedback_delay" validate:"gt=0"`
	HintDelay     time.Duration `mapstructure:"hint_delay" validate:"gt=0"`
	WrongFlash    time.Duration `mapstructure:"wrong_flash" validate:"gt=0"`
	Tick          time.Duration `mapstructure:"tick" validate:"gt=0"`
}

// CorpusConfig points at an optional JSON corpus. Empty means the built-in
// seed corpus.
type CorpusConfig struct {
	Path string `mapstructure:"path"`
}
