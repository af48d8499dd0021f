package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port         string
	TempDir      string
	TTSEndpoint  string
	SynthTimeout time.Duration
	ChunkWorkers int
	LogLevel     string
	LogFile      string
	LogMaxSizeMB int
	LogBackups   int
}

func Load() Config {
	return Config{
		Port:         getenv("PORT", "5000"),
		TempDir:      getenv("TTS_TEMP_DIR", os.TempDir()),
		TTSEndpoint:  getenv("TTS_ENDPOINT", "https://translate.google.com/translate_tts"),
		SynthTimeout: getenvDuration("TTS_TIMEOUT", 30*time.Second),
		ChunkWorkers: getenvInt("TTS_CHUNK_WORKERS", 4),
		LogLevel:     getenv("LOG_LEVEL", "info"),
		LogFile:      getenv("LOG_FILE", ""),
		LogMaxSizeMB: getenvInt("LOG_MAX_SIZE_MB", 50),
		LogBackups:   getenvInt("LOG_MAX_BACKUPS", 5),
	}
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getenvInt(k string, d int) int {
	if n, err := strconv.Atoi(getenv(k, "")); err == nil {
		return n
	}
	return d
}

func getenvDuration(k string, d time.Duration) time.Duration {
	if v, err := time.ParseDuration(getenv(k, "")); err == nil {
		return v
	}
	return d
}
