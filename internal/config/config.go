package config

import (
	"os"
	"path/filepath"
)

// Settings collects all environment-driven knobs. Env vars are loaded from
// .env by main before this is built.
type Settings struct {
	AppName        string
	Port           string
	DBPath         string
	StaticDir      string
	MediaDir       string
	StaticPath     string
	MediaPath      string
	StorageBackend string
	S3Bucket       string
	S3Region       string
}

func Load() *Settings {
	staticDir := getenv("STATIC_DIR", "static")
	return &Settings{
		AppName:        getenv("APP_NAME", "microblog"),
		Port:           getenv("PORT", "8000"),
		DBPath:         getenv("DB_PATH", "microblog.db"),
		StaticDir:      staticDir,
		MediaDir:       filepath.Join(staticDir, "images"),
		StaticPath:     "/static",
		MediaPath:      "/static/images",
		StorageBackend: getenv("STORAGE_BACKEND", "local"),
		S3Bucket:       os.Getenv("S3_BUCKET_NAME"),
		S3Region:       os.Getenv("AWS_S3_REGION"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
