package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/posadmin/internal/flagx"
	"github.com/dmitrijs2005/posadmin/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer fields
// tell "absent" from a zero value, so a file may set any subset of keys.
type JsonConfig struct {
	APIBaseURL             *string         `json:"api_base_url"`
	RequestTimeout         *timex.Duration `json:"request_timeout"`
	StoreMode              *string         `json:"store_mode"`
	StorePath              *string         `json:"store_path"`
	RequireAdminRole       *bool           `json:"require_admin_role"`
	AutoLoginAfterRegister *bool           `json:"auto_login_after_register"`
	LogBackend             *string         `json:"log_backend"`
	LogLevel               *string         `json:"log_level"`
	LogFormat              *string         `json:"log_format"`
}

// parseJson overlays cfg with values from the file named by -c/-config in
// args, or by the POSADMIN_CONFIG environment variable. No file, no change.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}

	jc.apply(cfg)
	return nil
}

func (jc *JsonConfig) apply(cfg *Config) {
	setIf(&cfg.APIBaseURL, jc.APIBaseURL)
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	setIf(&cfg.StoreMode, jc.StoreMode)
	setIf(&cfg.StorePath, jc.StorePath)
	setIf(&cfg.RequireAdminRole, jc.RequireAdminRole)
	setIf(&cfg.AutoLoginAfterRegister, jc.AutoLoginAfterRegister)
	setIf(&cfg.LogBackend, jc.LogBackend)
	setIf(&cfg.LogLevel, jc.LogLevel)
	setIf(&cfg.LogFormat, jc.LogFormat)
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
