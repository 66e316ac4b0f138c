// Package config holds the showroom server settings: a JSON prefs file with
// environment overrides on top. A missing or malformed file yields defaults
// and is never an error.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Path is the config file location, relative to the working directory.
const Path = "config/showroom.json"

// defaultUpstreamGLB is the published scene asset the proxy streams.
const defaultUpstreamGLB = "https://xtkg2ucurafhokax.public.blob.vercel-storage.com/armoury.glb"

// Config is the server configuration. AdminPassword empty means the admin
// area rejects everything.
type Config struct {
	ListenAddr    string `json:"listen_addr"`
	Port          string `json:"port"`
	DataDir       string `json:"data_dir"`
	AdminPassword string `json:"admin_password,omitempty"`
	UpstreamGLB   string `json:"upstream_glb"`
}

// Default returns the out-of-the-box configuration.
func Default() Config {
	return Config{
		Port:        "8080",
		DataDir:     "data",
		UpstreamGLB: defaultUpstreamGLB,
	}
}

// Load reads the config file and applies environment overrides
// (LISTEN_ADDR, PORT, DATA_DIR, ADMIN_PASSWORD, GLB_UPSTREAM_URL).
func Load() Config {
	c := Default()
	if data, err := os.ReadFile(Path); err == nil {
		// Malformed JSON falls back to defaults, same as a missing file.
		var fromFile Config
		if json.Unmarshal(data, &fromFile) == nil {
			merge(&c, fromFile)
		}
	}
	overrideEnv(&c.ListenAddr, "LISTEN_ADDR")
	overrideEnv(&c.Port, "PORT")
	overrideEnv(&c.DataDir, "DATA_DIR")
	overrideEnv(&c.AdminPassword, "ADMIN_PASSWORD")
	overrideEnv(&c.UpstreamGLB, "GLB_UPSTREAM_URL")
	return c
}

// Save writes the config file, creating the directory if needed.
func Save(c Config) error {
	if err := os.MkdirAll(filepath.Dir(Path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(Path, data, 0644)
}

func merge(dst *Config, src Config) {
	if src.ListenAddr != "" {
		dst.ListenAddr = src.ListenAddr
	}
	if src.Port != "" {
		dst.Port = src.Port
	}
	if src.DataDir != "" {
		dst.DataDir = src.DataDir
	}
	if src.AdminPassword != "" {
		dst.AdminPassword = src.AdminPassword
	}
	if src.UpstreamGLB != "" {
		dst.UpstreamGLB = src.UpstreamGLB
	}
}

func overrideEnv(target *string, key string) {
	if v := os.Getenv(key); v != "" {
		*target = v
	}
}
