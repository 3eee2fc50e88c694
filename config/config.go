package config

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server   Server
	Database Database
	OpenAI   OpenAI
	Upload   Upload
}

type Server struct {
	Port string
}

type Database struct {
	Path string
}

type OpenAI struct {
	ApiKey string
	Model  string
}

type Upload struct {
	Dir string
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8000")
	viper.SetDefault("DATABASE_PATH", "assessment.db")
	viper.SetDefault("UPLOAD_DIR", "uploaded_docs")
	viper.SetDefault("OPENAI_MODEL", "gpt-4.1")

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Database.Path = viper.GetString("DATABASE_PATH")
	config.Upload.Dir = viper.GetString("UPLOAD_DIR")
	config.OpenAI.ApiKey = viper.GetString("OPENAI_API_KEY")
	config.OpenAI.Model = viper.GetString("OPENAI_MODEL")

	log.Info().
		Str("port", config.Server.Port).
		Str("database", config.Database.Path).
		Str("uploadDir", config.Upload.Dir).
		Str("model", config.OpenAI.Model).
		Bool("openaiConfigured", config.OpenAI.ApiKey != "").
		Msg("Config loaded")
	return &config, nil
}
