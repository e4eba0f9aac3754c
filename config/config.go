package config

import (
    "log"
    "os"
    "strconv"

    "github.com/joho/godotenv"

    "arbt-storefront-api/cart"
    "arbt-storefront-api/database"
    "arbt-storefront-api/services/email"
)

type Config struct {
    Database database.DatabaseConfig
    Server   ServerConfig
    Redis    RedisConfig
    Session  SessionConfig
    JWT      JWTConfig
    SMTP     email.SMTPConfig
    Shipping ShippingConfig
}

type ServerConfig struct {
    Port string
}

type RedisConfig struct {
    URL               string
    WorkerConcurrency int
}

type SessionConfig struct {
    Secret string
    Domain string
    MaxAge int
}

type JWTConfig struct {
    Secret string
    Issuer string
}

// ShippingConfig points at the external per-user service-fee lookup. When the
// lookup fails or no user id resolves, DefaultFee applies.
type ShippingConfig struct {
    FeeURL     string
    DefaultFee float64
}

func Load() *Config {
    if err := godotenv.Load(); err != nil {
        log.Printf("Warning: Error loading .env file: %v", err)
    }

    workerConcurrency := 2
    if v := os.Getenv("WORKER_CONCURRENCY"); v != "" {
        if n, err := strconv.Atoi(v); err == nil {
            workerConcurrency = n
        }
    }

    sessionMaxAge := 86400 * 7
    if v := os.Getenv("SESSION_MAX_AGE"); v != "" {
        if n, err := strconv.Atoi(v); err == nil {
            sessionMaxAge = n
        }
    }

    defaultFee := cart.DefaultServiceFee
    if v := os.Getenv("DEFAULT_SERVICE_FEE"); v != "" {
        if f, err := strconv.ParseFloat(v, 64); err == nil {
            defaultFee = f
        }
    }

    cfg := &Config{
        Database: database.DatabaseConfig{
            Host:     os.Getenv("DB_HOST"),
            User:     os.Getenv("DB_USER"),
            Password: os.Getenv("DB_PASSWORD"),
            DBName:   os.Getenv("DB_NAME"),
        },
        Server: ServerConfig{
            Port: os.Getenv("SERVER_PORT"),
        },
        Redis: RedisConfig{
            URL:               os.Getenv("REDIS_URL"),
            WorkerConcurrency: workerConcurrency,
        },
        Session: SessionConfig{
            Secret: os.Getenv("SESSION_SECRET"),
            Domain: os.Getenv("SESSION_DOMAIN"),
            MaxAge: sessionMaxAge,
        },
        JWT: JWTConfig{
            Secret: os.Getenv("JWT_SECRET"),
            Issuer: os.Getenv("JWT_ISSUER"),
        },
        SMTP: email.SMTPConfig{
            Host:     os.Getenv("SMTP_HOST"),
            Port:     os.Getenv("SMTP_PORT"),
            Username: os.Getenv("SMTP_USER"),
            Password: os.Getenv("SMTP_PASSWORD"),
        },
        Shipping: ShippingConfig{
            FeeURL:     os.Getenv("SHIPPING_FEE_URL"),
            DefaultFee: defaultFee,
        },
    }

    if cfg.Server.Port == "" {
        cfg.Server.Port = "8000"
    }
    if cfg.Redis.URL == "" {
        cfg.Redis.URL = "redis://localhost:6379/0"
        log.Printf("Warning: REDIS_URL not set, using default: %s", cfg.Redis.URL)
    }
    if cfg.JWT.Issuer == "" {
        cfg.JWT.Issuer = "arbt-storefront"
    }

    return cfg
}
