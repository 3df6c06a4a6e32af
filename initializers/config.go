package initializers

import "os"

// Config carries the service's environment-backed settings.
type Config struct {
	ListenAddr        string
	BackendBaseURL    string
	RazorpayKeyID     string
	RazorpayKeySecret string
	AllowedOrigins    []string
}

func LoadConfig() Config {
	return Config{
		ListenAddr:        getEnv("LISTEN_ADDR", ":8080"),
		BackendBaseURL:    getEnv("BACKEND_BASE_URL", "http://localhost:3000"),
		RazorpayKeyID:     os.Getenv("RAZORPAY_KEY_ID"),
		RazorpayKeySecret: os.Getenv("RAZORPAY_KEY_SECRET"),
		AllowedOrigins: []string{
			getEnv("FRONTEND_URL", "http://localhost:5173"),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
