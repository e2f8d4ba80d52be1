package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel      string   `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort      string   `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort    string   `yaml:"socket-port" env:"SOCKET_PORT" env-default:"9091"`
	QuestionsPath string   `yaml:"questions-path" env:"QUESTIONS_PATH"`
	Game          Game     `yaml:"game"`
	Players       []Player `yaml:"players"`
}

// Game holds the timing tunables of one session.
type Game struct {
	BuzzWindowSeconds   int `yaml:"buzz-window-seconds" env-default:"8"`
	AnswerWindowSeconds int `yaml:"answer-window-seconds" env-default:"5"`
	BuzzCeilingSeconds  int `yaml:"buzz-ceiling-seconds" env-default:"30"`
	ReadingMsPerWord    int `yaml:"reading-ms-per-word" env-default:"200"`
}

type Player struct {
	Name       string `yaml:"name"`
	Human      bool   `yaml:"human"`
	Difficulty string `yaml:"difficulty"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Game) BuzzWindow() time.Duration {
	return time.Duration(that.BuzzWindowSeconds) * time.Second
}

func (that *Game) AnswerWindow() time.Duration {
	return time.Duration(that.AnswerWindowSeconds) * time.Second
}

func (that *Game) BuzzCeiling() time.Duration {
	return time.Duration(that.BuzzCeilingSeconds) * time.Second
}

func (that *Game) ReadingPerWord() time.Duration {
	return time.Duration(that.ReadingMsPerWord) * time.Millisecond
}
