package kaltura

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// DefaultConfigFile is the config filename that the tools look for in the
// working directory.
const DefaultConfigFile = "config.json"

// DefaultAdminSessionExpiry is 24 hours, in seconds.
const DefaultAdminSessionExpiry = 86400

// Config is the connection configuration shared by the app-token tools.
type Config struct {
	PartnerID       int    // PARTNER_ID
	AdminSecret     string // ADMIN_SECRET
	ServiceURL      string // KALTURA_SERVICE_URL
	UserID          string // USER_ID or SCRIPT_USER_ID (default empty)
	Expiry          int    // EXPIRY or ADMIN_SESSION_EXPIRY (default 86400)
	AdminPrivileges string // DEFAULT_ADMIN_PRIVILEGES (default empty)
}

// configFile is the on-disk JSON shape. Two generations of the tools used
// different names for the optional keys, so we accept both spellings.
type configFile struct {
	PartnerID          int    `json:"PARTNER_ID"`
	AdminSecret        string `json:"ADMIN_SECRET"`
	ServiceURL         string `json:"KALTURA_SERVICE_URL"`
	UserID             string `json:"USER_ID"`
	ScriptUserID       string `json:"SCRIPT_USER_ID"`
	Expiry             int    `json:"EXPIRY"`
	AdminSessionExpiry int    `json:"ADMIN_SESSION_EXPIRY"`
	AdminPrivileges    string `json:"DEFAULT_ADMIN_PRIVILEGES"`
}

// LoadConfig reads the JSON configuration file. A missing or malformed file,
// or a missing required key, is a *ConfigError.
func LoadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}
	cf := configFile{}
	if err := json.Unmarshal(raw, &cf); err != nil {
		return nil, &ConfigError{Path: path, Err: fmt.Errorf("invalid JSON: %w", err)}
	}
	missing := []string{}
	if cf.PartnerID == 0 {
		missing = append(missing, "PARTNER_ID")
	}
	if cf.AdminSecret == "" {
		missing = append(missing, "ADMIN_SECRET")
	}
	if cf.ServiceURL == "" {
		missing = append(missing, "KALTURA_SERVICE_URL")
	}
	if len(missing) != 0 {
		return nil, &ConfigError{Path: path, Err: errors.New("missing required keys: " + strings.Join(missing, ", "))}
	}
	cfg := &Config{
		PartnerID:       cf.PartnerID,
		AdminSecret:     cf.AdminSecret,
		ServiceURL:      cf.ServiceURL,
		UserID:          cf.UserID,
		Expiry:          DefaultAdminSessionExpiry,
		AdminPrivileges: cf.AdminPrivileges,
	}
	if cfg.UserID == "" {
		cfg.UserID = cf.ScriptUserID
	}
	if cf.Expiry != 0 {
		cfg.Expiry = cf.Expiry
	} else if cf.AdminSessionExpiry != 0 {
		cfg.Expiry = cf.AdminSessionExpiry
	}
	return cfg, nil
}
