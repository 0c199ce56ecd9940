package config

import (
	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	Port         string `env:"PORT" envDefault:"3000"`
	MongoURI     string `env:"MONGODB_URI" envDefault:"mongodb://localhost:27017"`
	DatabaseName string `env:"DATABASE_NAME" envDefault:"rdvpro"`
	JWTSecret    string `env:"JWT_SECRET,required"`
	UploadDir    string `env:"UPLOAD_DIR" envDefault:"uploads"`
	CorsOrigins  string `env:"CORS_ORIGINS" envDefault:"http://localhost:8080"`
}

// NewConfig reads .env if present, then parses the environment.
func NewConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
