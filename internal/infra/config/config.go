package config

import (
	"github.com/caarlos0/env/v11"
)

type Config struct {
	InputDir     string `env:"INPUT_DIR"     envDefault:"./inputs"`
	OutputDir    string `env:"OUTPUT_DIR"    envDefault:"./outputs"`
	ProcessedDir string `env:"PROCESSED_DIR" envDefault:"./processed"`

	// Layout selects the slot naming policy: "named" keeps the sanitized
	// source name plus a timestamp, "run" numbers slots video1..videoN
	// inside a run folder and relocates processed sources.
	Layout string `env:"LAYOUT" envDefault:"run"`

	FFmpegQScale int `env:"FFMPEG_QSCALE" envDefault:"2"`

	DetectorURL   string  `env:"DETECTOR_URL"   envDefault:"http://localhost:8090"`
	DetectorModel string  `env:"DETECTOR_MODEL" envDefault:"yolo11s.pt"`
	ConfThreshold float64 `env:"CONF_THRESHOLD" envDefault:"0.6"`
	MinPlayers    int     `env:"MIN_PLAYERS"    envDefault:"4"`
	MaxBoxRatio   float64 `env:"MAX_BBOX_RATIO" envDefault:"0.3333333333333333"`

	// RunDBURL enables the Postgres run ledger when set.
	RunDBURL string `env:"RUN_DB_URL" envDefault:""`

	// RabbitMQURL enables sequence.ready events when set.
	RabbitMQURL      string `env:"RABBITMQ_URL"      envDefault:""`
	RabbitMQExchange string `env:"RABBITMQ_EXCHANGE" envDefault:"dataset.sequences"`

	// MinIOEndpoint enables bundle handoff when set.
	MinIOEndpoint  string `env:"MINIO_ENDPOINT"   envDefault:""`
	MinIOAccessKey string `env:"MINIO_ACCESS_KEY" envDefault:"minioadmin"`
	MinIOSecretKey string `env:"MINIO_SECRET_KEY" envDefault:"minioadmin"`
	MinIOUseSSL    bool   `env:"MINIO_USE_SSL"    envDefault:"false"`
	BundleBucket   string `env:"BUNDLE_BUCKET"    envDefault:"sequence-bundles"`

	MetricsPort  int    `env:"METRICS_PORT"  envDefault:"0"`
	OTLPEndpoint string `env:"OTLP_ENDPOINT" envDefault:""`
	LogLevel     string `env:"LOG_LEVEL"     envDefault:"info"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
