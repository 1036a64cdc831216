package config

import "os"

const APIURLEnv = "POSADMIN_API_URL"

func parseEnv(cfg *Config) {
	if v, ok := os.LookupEnv(APIURLEnv); ok && v != "" {
		cfg.APIBaseURL = v
	}
}
