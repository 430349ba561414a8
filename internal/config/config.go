package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Fontes de dados de empresas suportadas
const (
	CompanySourceMemory   = "memory"
	CompanySourcePostgres = "postgres"
)

type Config struct {
	App            App            `mapstructure:",squash"`
	Server         Server         `mapstructure:",squash"`
	Database       Database       `mapstructure:",squash"`
	Dataset        Dataset        `mapstructure:",squash"`
	DatasetRefresh DatasetRefresh `mapstructure:",squash"`
	Prediction     Prediction     `mapstructure:",squash"`
	Cache          Cache          `mapstructure:",squash"`
	Auth           Auth           `mapstructure:",squash"`
	RateLimit      RateLimit      `mapstructure:",squash"`
	Cors           Cors           `mapstructure:",squash"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
	Env      string `mapstructure:"app_env"`
}

// Dataset define de onde vêm as empresas do dashboard
type Dataset struct {
	Source string `mapstructure:"company_source"` // memory | postgres
	Seed   int64  `mapstructure:"dataset_seed"`
	Size   int    `mapstructure:"dataset_size"`
}

type DatasetRefresh struct {
	CronSchedule string `mapstructure:"dataset_refresh_cron"`
	Enabled      bool   `mapstructure:"dataset_refresh_enabled"`
}

type Prediction struct {
	ProbabilityMode     string        `mapstructure:"probability_mode"`  // score | band-random
	Delay               time.Duration `mapstructure:"prediction_delay"`  // Atraso artificial por predição
	RandomSeed          uint64        `mapstructure:"random_seed"`       // 0 = baseado no relógio
	BatchMaxConcurrency int           `mapstructure:"batch_max_concurrency"`
	BatchMaxItems       int           `mapstructure:"batch_max_items"`
}

type Cache struct {
	RedisAddr     string        `mapstructure:"redis_addr"`
	RedisPassword string        `mapstructure:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db"`
	TTL           time.Duration `mapstructure:"cache_ttl"`
	MaxEntries    int           `mapstructure:"cache_max_entries"` // Limite do cache em memória
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

type RateLimit struct {
	RPS   float64 `mapstructure:"rate_limit_rps"` // 0 desabilita o limitador
	Burst int     `mapstructure:"rate_limit_burst"`
}

type Cors struct {
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("LOG_LEVEL", "debug")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/churninsight")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("COMPANY_SOURCE", CompanySourceMemory)
	viper.SetDefault("DATASET_SEED", 42)
	viper.SetDefault("DATASET_SIZE", 50)

	viper.SetDefault("DATASET_REFRESH_CRON", "0 3 * * *") // Todos os dias às 3h da manhã
	viper.SetDefault("DATASET_REFRESH_ENABLED", false)

	viper.SetDefault("PROBABILITY_MODE", "score")
	viper.SetDefault("PREDICTION_DELAY", "0s")
	viper.SetDefault("RANDOM_SEED", 0)
	viper.SetDefault("BATCH_MAX_CONCURRENCY", 8)
	viper.SetDefault("BATCH_MAX_ITEMS", 500)

	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("CACHE_TTL", "10m")
	viper.SetDefault("CACHE_MAX_ENTRIES", 10000)

	viper.SetDefault("AUTH_SECRET", "")

	viper.SetDefault("RATE_LIMIT_RPS", 20)
	viper.SetDefault("RATE_LIMIT_BURST", 40)

	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile()

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Validate verifica combinações de valores que o viper não consegue validar
func (c *Config) Validate() error {
	switch c.Dataset.Source {
	case CompanySourceMemory, CompanySourcePostgres:
	default:
		return fmt.Errorf("COMPANY_SOURCE inválido: %q", c.Dataset.Source)
	}

	if c.Dataset.Size < 0 {
		return fmt.Errorf("DATASET_SIZE não pode ser negativo: %d", c.Dataset.Size)
	}

	if c.Prediction.Delay < 0 {
		return fmt.Errorf("PREDICTION_DELAY não pode ser negativo: %s", c.Prediction.Delay)
	}

	if c.Prediction.BatchMaxConcurrency <= 0 {
		c.Prediction.BatchMaxConcurrency = 1
	}

	return nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando variáveis de ambiente")
}
