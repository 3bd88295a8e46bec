// Package config loads runtime settings from a .env file and the environment.
package config

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds every setting the mudra binary reads at startup.
type Config struct {
	CameraID    int
	FrameWidth  int
	FrameHeight int
	WindowTitle string
	Headless    bool

	// HTTPAddr is the listen address of the HTTP server. Empty disables it.
	HTTPAddr  string
	StaticDir string

	DataDir string
	DBPath  string
	Record  bool

	MediaPipeScript  string
	PythonPath       string
	MaxHands         int
	MinDetectionConf float64
	MinTrackingConf  float64
}

// Load reads the .env files (default ".env" in the working directory), then
// MUDRA_* environment variables. Variables already set in the environment
// take precedence over .env values. Missing files are not an error.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				log.Printf("No %s file found, using system environment variables", f)
				continue
			}
			return nil, err
		}
	}

	dataDir := getEnv("MUDRA_DATA_DIR", defaultDataDir())

	cfg := &Config{
		CameraID:         getEnvInt("MUDRA_CAMERA_ID", 0),
		FrameWidth:       getEnvInt("MUDRA_FRAME_WIDTH", 640),
		FrameHeight:      getEnvInt("MUDRA_FRAME_HEIGHT", 480),
		WindowTitle:      getEnv("MUDRA_WINDOW_TITLE", "Hand Gesture Recognition"),
		Headless:         getEnvBool("MUDRA_HEADLESS", false),
		HTTPAddr:         os.Getenv("MUDRA_HTTP_ADDR"),
		StaticDir:        getEnv("MUDRA_STATIC_DIR", ""),
		DataDir:          dataDir,
		DBPath:           getEnv("MUDRA_DB_PATH", filepath.Join(dataDir, "mudra.db")),
		Record:           getEnvBool("MUDRA_RECORD", true),
		MediaPipeScript:  getEnv("MUDRA_MEDIAPIPE_SCRIPT", ""),
		PythonPath:       getEnv("MUDRA_PYTHON", ""),
		MaxHands:         getEnvInt("MUDRA_MAX_HANDS", 2),
		MinDetectionConf: getEnvFloat("MUDRA_MIN_DETECTION_CONFIDENCE", 0.7),
		MinTrackingConf:  getEnvFloat("MUDRA_MIN_TRACKING_CONFIDENCE", 0.5),
	}
	if _, set := os.LookupEnv("MUDRA_HTTP_ADDR"); !set {
		cfg.HTTPAddr = ":8080"
	}

	return cfg, nil
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".mudra"
	}
	return filepath.Join(home, ".mudra")
}

func getEnv(key string, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if intVal, err := strconv.Atoi(v); err == nil {
			return intVal
		}
		log.Printf("Ignoring invalid %s=%q", key, v)
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Printf("Ignoring invalid %s=%q", key, v)
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return b
		}
		log.Printf("Ignoring invalid %s=%q", key, v)
	}
	return defaultVal
}
