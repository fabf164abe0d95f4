package config

// Config holds all configuration for the application.
type Config struct {
	DBName        string
	MigrationsDir string
	Port          string
	Turso         TursoConfig
	Gemini        GeminiConfig
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}

type GeminiConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}
