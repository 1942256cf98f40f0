package core

import (
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		AppName          string
		Env              string // DEV (default), TEST, QA, PROD
		Debug            bool
		TestMode         bool
		Build            string
		SecretKey        string
		DefaultFromEmail mail.Address
		SendgridAPIKey   string
		RollbarToken     string

		Server  ServerConfig
		Storage StorageConfig
	}

	ServerConfig struct {
		Host               string
		Addr               string
		DebugAddr          string
		ShutdownTimeout    time.Duration
		JWTExpirationDelta time.Duration
		// SimulatedLatency delays every API request by a fixed amount,
		// mirroring the network delay of the mocked backend this service
		// replaces. Zero disables it.
		SimulatedLatency time.Duration
	}

	StorageConfig struct {
		// Backend is one of: memory, filesystem, redis, postgres.
		Backend     string
		DataDir     string
		RedisAddr   string
		RedisDB     int
		DatabaseURL string
	}
)

// NewConfig loads the app configuration: defaults first, then an optional
// .env.<env> file, then environment variables (prefixed with the env name).
func NewConfig() *Config {
	conf := viper.New()

	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("appName", "Unitrack")
	conf.SetDefault("build", "dev")
	conf.SetDefault("debug", true)
	conf.SetDefault("secretKey", "y7e$2bn)wq8@5uz&+p0m4vr^3s6x9c1k#fh!gj*dl(taoi_e")
	conf.SetDefault("defaultFromEmail", "noreply@localhost")
	conf.SetDefault("sendgridApiKey", "")
	conf.SetDefault("rollbarToken", "")
	conf.SetDefault("serverHost", "localhost")
	conf.SetDefault("serverAddr", ":8080")
	conf.SetDefault("serverDebugAddr", ":8081")
	conf.SetDefault("shutdownTimeout", 20*time.Second)
	conf.SetDefault("jwtExpirationDelta", 7*24*time.Hour)
	conf.SetDefault("simulatedLatency", time.Duration(0))
	conf.SetDefault("storageBackend", "filesystem")
	conf.SetDefault("storageDataDir", filepath.Join(".", "data"))
	conf.SetDefault("redisAddr", "localhost:6379")
	conf.SetDefault("redisDb", 0)
	conf.SetDefault("databaseUrl", "")

	env := strings.ToUpper(os.Getenv("ENV"))
	var testMode bool
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		testMode = true
	}
	conf.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(".", "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	return &Config{
		AppName:          conf.GetString("appName"),
		Env:              env,
		Debug:            conf.GetBool("debug"),
		TestMode:         testMode,
		Build:            conf.GetString("build"),
		SecretKey:        conf.GetString("secretKey"),
		DefaultFromEmail: mail.Address{Name: conf.GetString("appName"), Address: conf.GetString("defaultFromEmail")},
		SendgridAPIKey:   conf.GetString("sendgridApiKey"),
		RollbarToken:     conf.GetString("rollbarToken"),
		Server: ServerConfig{
			Host:               conf.GetString("serverHost"),
			Addr:               conf.GetString("serverAddr"),
			DebugAddr:          conf.GetString("serverDebugAddr"),
			ShutdownTimeout:    conf.GetDuration("shutdownTimeout"),
			JWTExpirationDelta: conf.GetDuration("jwtExpirationDelta"),
			SimulatedLatency:   conf.GetDuration("simulatedLatency"),
		},
		Storage: StorageConfig{
			Backend:     conf.GetString("storageBackend"),
			DataDir:     conf.GetString("storageDataDir"),
			RedisAddr:   conf.GetString("redisAddr"),
			RedisDB:     conf.GetInt("redisDb"),
			DatabaseURL: conf.GetString("databaseUrl"),
		},
	}
}
