package config

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
)

// DotEnvPath is the file read for variables missing from the process
// environment.
const DotEnvPath = ".env"

// envLookup returns a lookup that prefers the process environment and falls
// back to the values in the dotenv file at path. A missing file is ignored.
func envLookup(path string, process func(string) (string, bool)) (func(string) (string, bool), error) {
	file, err := godotenv.Read(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		file = map[string]string{}
	}
	return func(key string) (string, bool) {
		if v, ok := process(key); ok {
			return v, true
		}
		v, ok := file[key]
		return v, ok
	}, nil
}

// parseEnv overlays the deployment variables, usually kept in a .env file.
//
//	PORT            listen port, becomes ":<PORT>"
//	DATABASE_DSN    PostgreSQL DSN
//	MONGODB_URI     document store URI
//	JWT_SECRET      token signing key
//	STORAGE_DRIVER  postgres | mongodb | memory
//	CORS_ORIGINS    comma-separated list of origins
func parseEnv(config *Config, lookup func(string) (string, bool)) {
	if v, ok := lookup("PORT"); ok && v != "" {
		config.EndpointAddrHTTP = ":" + strings.TrimPrefix(v, ":")
	}
	if v, ok := lookup("DATABASE_DSN"); ok {
		setString(&config.DatabaseDSN, v)
	}
	if v, ok := lookup("MONGODB_URI"); ok {
		setString(&config.MongoURI, v)
	}
	if v, ok := lookup("JWT_SECRET"); ok {
		setString(&config.SecretKey, v)
	}
	if v, ok := lookup("STORAGE_DRIVER"); ok {
		setString(&config.StorageDriver, v)
	}
	if v, ok := lookup("CORS_ORIGINS"); ok && v != "" {
		config.CORSAllowedOrigins = splitList(v)
	}
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
