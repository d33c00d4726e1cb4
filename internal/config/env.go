package config

import (
	"os"
	"sync"

	"github.com/joho/godotenv"

	"fjacquet/quickspend/internal/logging"
)

var envOnce sync.Once

// LoadEnv loads variables from the first .env found in the working directory or its
// parent. Variables already present in the environment are not overwritten.
func LoadEnv(logger logging.Logger) {
	envOnce.Do(func() {
		logger = logging.OrDefault(logger)
		for _, candidate := range []string{".env", "../.env"} {
			if _, err := os.Stat(candidate); err != nil {
				continue
			}
			if err := godotenv.Load(candidate); err != nil {
				logger.WithError(err).Warn("Error loading .env file", logging.Field{Key: logging.FieldFile, Value: candidate})
				return
			}
			logger.Debug("Loaded environment variables", logging.Field{Key: logging.FieldFile, Value: candidate})
			return
		}
	})
}
