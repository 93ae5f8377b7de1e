package config

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port           int
	DataPath       string
	DBPath         string
	MediaPath      string
	TranscriptPath string
	ChaptersPath   string

	WhisperURL       string
	WhisperLanguages []string

	LLMURL     string
	LLMAPIKey  string
	LLMModel   string
	EmbedModel string

	AutoTranscribe bool

	JWTSecret     string
	AdminUsername string
	AdminPassword string
	CORSOrigins   []string
}

func Load() *Config {
	port, _ := strconv.Atoi(getEnv("PORT", "8080"))
	dataPath := getEnv("DATA_PATH", "/data")

	// JWT secret: require explicit setting or generate random
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		b := make([]byte, 32)
		if _, err := rand.Read(b); err != nil {
			log.Fatalf("Failed to generate random JWT secret: %v", err)
		}
		jwtSecret = hex.EncodeToString(b)
		log.Println("WARNING: JWT_SECRET not set, using random secret. Sessions will not survive restarts. Set JWT_SECRET env var for persistent sessions.")
	}

	corsOrigins := splitList(os.Getenv("CORS_ORIGINS"))
	if len(corsOrigins) == 0 {
		corsOrigins = []string{"*"}
	}

	return &Config{
		Port:           port,
		DataPath:       dataPath,
		DBPath:         getEnv("DB_PATH", dataPath+"/podscribe.db"),
		MediaPath:      getEnv("MEDIA_PATH", "/media"),
		TranscriptPath: getEnv("TRANSCRIPT_PATH", dataPath+"/transcripts"),
		ChaptersPath:   getEnv("CHAPTERS_PATH", dataPath+"/chapters"),

		WhisperURL:       os.Getenv("WHISPER_URL"),
		WhisperLanguages: splitList(os.Getenv("WHISPER_LANGUAGES")),

		LLMURL:     os.Getenv("LLM_URL"),
		LLMAPIKey:  os.Getenv("LLM_API_KEY"),
		LLMModel:   os.Getenv("LLM_MODEL"),
		EmbedModel: os.Getenv("EMBED_MODEL"),

		AutoTranscribe: getEnv("AUTO_TRANSCRIBE", "false") == "true",

		JWTSecret:     jwtSecret,
		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin"),
		CORSOrigins:   corsOrigins,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
