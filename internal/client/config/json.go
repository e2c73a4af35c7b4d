package config

import (
	"encoding/json"
	"os"

	"github.com/guncedev/gunce/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling; present
// fields overlay the defaults, absent ones leave them untouched.
type JsonConfig struct {
	DatabasePath string `json:"database_path"`
	RemoteDSN    string `json:"remote_dsn"`
}

// parseJson overlays cfg with values from the JSON file named by the
// -c/--config flag. Without the flag nothing happens. A broken file is a
// startup error worth dying for.
func parseJson(cfg *Config) {
	path := flagx.ConfigFile(os.Args[1:])
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.RemoteDSN != "" {
		cfg.RemoteDSN = jc.RemoteDSN
	}
}
