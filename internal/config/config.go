package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr            string
	Env             string
	MongoURI        string
	MongoDB         string
	JWTSecret       string
	JWTExpire       time.Duration
	FrontendURL     string
	AdminEmail      string
	AdminPassword   string
	PreparationTime time.Duration
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getduration(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getminutes(k string, def int) time.Duration {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Minute
		}
	}
	return time.Duration(def) * time.Minute
}

func Load() Config {
	_ = godotenv.Load() // load .env if it exists
	cfg := Config{
		Addr:            getenv("ADDR", ":5000"),
		Env:             getenv("APP_ENV", "development"),
		MongoURI:        getenv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDB:         getenv("MONGODB_DB", "campus-canteen"),
		JWTSecret:       getenv("JWT_SECRET", "change-me"),
		JWTExpire:       getduration("JWT_EXPIRE", 30*24*time.Hour),
		FrontendURL:     getenv("FRONTEND_URL", "http://localhost:3000"),
		AdminEmail:      getenv("ADMIN_EMAIL", "admin@campuscanteen.com"),
		AdminPassword:   getenv("ADMIN_PASSWORD", "admin123"),
		PreparationTime: getminutes("PREPARATION_TIME_MIN", 15),
	}
	log.Printf("[config] ADDR=%s", cfg.Addr)
	log.Printf("[config] MONGODB_DB=%s", cfg.MongoDB)
	log.Printf("[config] FRONTEND_URL=%s", cfg.FrontendURL)
	return cfg
}

// Production reports whether the app runs with production settings
// (secure cookies, hidden error detail).
func (c Config) Production() bool { return c.Env == "production" }
