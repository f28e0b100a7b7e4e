package config

import (
	"Reelhouse/internal/layout"
	"gopkg.in/yaml.v3"
	"os"
)

// EnvConfigPath overrides the configuration file location.
const EnvConfigPath = "REELHOUSE_CONFIG"

const DefaultConfigPath = "reelhouse.yaml"

type Configuration struct {
	Storage  StorageConfig  `yaml:"storage"`
	Database DatabaseConfig `yaml:"database"`
	Server   ServerConfig   `yaml:"server"`
	Layout   LayoutConfig   `yaml:"layout"`
}

type StorageConfig struct {
	Path string `yaml:"path"`
}

type DatabaseConfig struct {
	// Driver is sqlite or postgres. Postgres reads its DSN from DB_* variables.
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
}

type ServerConfig struct {
	Port          int           `yaml:"port"`
	Concurrency   int           `yaml:"concurrency"`
	RequestConfig RequestConfig `yaml:"requestConfig"`
	LogConfig     LogConfig     `yaml:"logConfig"`
	CleanConfig   CleanConfig   `yaml:"cleanConfig"`
}

type RequestConfig struct {
	SizeLimit int `yaml:"sizeLimit"`
}

type LogConfig struct {
	Level   string `yaml:"level"`
	Format  string `yaml:"format"`
	Output  string `yaml:"output"`
	LogPath string `yaml:"logPath"`
}

type CleanConfig struct {
	Schedule string `yaml:"schedule"`
}

type LayoutConfig struct {
	ScenePrefix        string          `yaml:"scenePrefix"`
	ShotPrefix         string          `yaml:"shotPrefix"`
	NoShotFolders      []string        `yaml:"noShotFolders"`
	SceneFileExtension string          `yaml:"sceneFileExtension"`
	EmptySceneFile     string          `yaml:"emptySceneFile"`
	Template           layout.Template `yaml:"template"`
}

// TemplateRoot returns the configured folder template or the default one.
func (l LayoutConfig) TemplateRoot() layout.Node {
	if l.Template.IsZero() {
		return layout.DefaultTemplate()
	}
	return l.Template.Root
}

// ConfigPath returns the path from REELHOUSE_CONFIG, or reelhouse.yaml.
func ConfigPath() string {
	if path := os.Getenv(EnvConfigPath); path != "" {
		return path
	}
	return DefaultConfigPath
}

func LoadConfiguration(configurationFilePath string) (*Configuration, error) {
	data, err := os.ReadFile(configurationFilePath)
	if err != nil {
		return nil, err
	}
	var config Configuration
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, err
	}
	config.ApplyDefaults()
	return &config, nil
}

// ApplyDefaults fills every empty field.
func (c *Configuration) ApplyDefaults() {
	if c.Storage.Path == "" {
		c.Storage.Path = "./projects"
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite"
	}
	if c.Database.Path == "" {
		c.Database.Path = "reelhouse.db"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.Concurrency == 0 {
		c.Server.Concurrency = 256
	}
	if c.Server.RequestConfig.SizeLimit == 0 {
		c.Server.RequestConfig.SizeLimit = 4
	}
	if c.Server.LogConfig.Level == "" {
		c.Server.LogConfig.Level = "info"
	}
	if c.Server.LogConfig.Format == "" {
		c.Server.LogConfig.Format = "text"
	}
	if c.Server.LogConfig.Output == "" {
		c.Server.LogConfig.Output = "stdout"
	}
	if c.Server.CleanConfig.Schedule == "" {
		c.Server.CleanConfig.Schedule = "@every 1h"
	}
	if c.Layout.ScenePrefix == "" {
		c.Layout.ScenePrefix = layout.DefaultScenePrefix
	}
	if c.Layout.ShotPrefix == "" {
		c.Layout.ShotPrefix = layout.DefaultShotPrefix
	}
	if c.Layout.NoShotFolders == nil {
		c.Layout.NoShotFolders = append([]string(nil), layout.DefaultNoShotFolders...)
	}
	if c.Layout.SceneFileExtension == "" {
		c.Layout.SceneFileExtension = ".ma"
	}
}
