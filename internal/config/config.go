package config

import (
	"os"
	"strconv"
)

type Config struct {
	ProjectID       string
	Region          string
	LogLevel        string
	StatsBaseURL    string
	VertexModel     string
	ReportAI        bool
	ReportMaxTokens int32
}

func New() *Config {
	return &Config{
		ProjectID:       os.Getenv("PROJECTID"),
		Region:          os.Getenv("REGION"),
		LogLevel:        os.Getenv("LOGLEVEL"),
		StatsBaseURL:    os.Getenv("STATSBASEURL"),
		VertexModel:     os.Getenv("VERTEXMODEL"),
		ReportAI:        getBool(os.Getenv("REPORTAI"), true),
		ReportMaxTokens: getInt32(os.Getenv("REPORTMAXTOKENS"), 1024),
	}
}

func getBool(raw string, fallback bool) bool {
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return v
}

func getInt32(raw string, fallback int32) int32 {
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return fallback
	}
	return int32(v)
}
