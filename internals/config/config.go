package config

import (
	"flag"
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type HTTPServer struct {
	Addr string `yaml:"address" env:"HTTP_SERVER_ADDRESS" env-default:":8080"`
}

// Game holds the gamification knobs. The XP amounts and the progress
// denominators used to be literals scattered through the app; they are
// config so they can change without a redeploy.
type Game struct {
	QuizBaseXp      int `yaml:"quiz_base_xp" env:"QUIZ_BASE_XP" env-default:"10"`
	MasteryXp       int `yaml:"mastery_xp" env:"MASTERY_XP" env-default:"10"`
	LeaderboardSize int `yaml:"leaderboard_size" env:"LEADERBOARD_SIZE" env-default:"50"`
	TotalWords      int `yaml:"total_words" env:"TOTAL_WORDS" env-default:"606"`
	TotalTests      int `yaml:"total_tests" env:"TOTAL_TESTS" env-default:"3"`
}

type Config struct {
	Env                string   `yaml:"env" env:"ENV" env-default:"production"`
	Dsn                string   `yaml:"data_src_name" env:"DATABASE_URL" env-required:"true"`
	RedisAddr          string   `yaml:"redis_addr" env:"REDIS_ADDR"`
	DefaultAdminEmails []string `yaml:"default_admin_emails" env:"DEFAULT_ADMIN_EMAILS" env-separator:","`
	HTTPServer         `yaml:"http_server"`
	Game               `yaml:"game"`
}

func MustLoad() *Config {
	// .env is optional; real deployments set env vars directly
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {
		flags := flag.String("config", "", "path to the config file")
		flag.Parse()
		configPath = *flags
	}

	var cfg Config
	if configPath != "" {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			log.Fatalf("config file doesn't exist : %s", configPath)
		}
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			log.Fatalf("Can't read config file: %s", err.Error())
		}
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			log.Fatalf("Can't read config from environment: %s", err.Error())
		}
	}

	return &cfg
}
