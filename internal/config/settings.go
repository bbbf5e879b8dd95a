package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Settings keys, shared by the YAML file, viper and GOCAL_* variables.
const (
	SettingStorePath      = "store_path"
	SettingStoreBackend   = "store_backend"
	SettingCheckConflicts = "check_conflicts"
	SettingLanguage       = "language"
	SettingServerPort     = "server_port"
	SettingUpcomingDays   = "upcoming_days"

	settingsType    = "yaml"
	portValidatorID = "tcpport"
)

// Settings are the user preferences read at startup.
// An empty StorePath means ~/.calendar/<default file for the backend>.
type Settings struct {
	StorePath      string `mapstructure:"store_path" yaml:"store_path"`
	StoreBackend   string `mapstructure:"store_backend" yaml:"store_backend" validate:"oneof=text sqlite"`
	CheckConflicts bool   `mapstructure:"check_conflicts" yaml:"check_conflicts"`
	Language       string `mapstructure:"language" yaml:"language" validate:"oneof=en fr"`
	ServerPort     string `mapstructure:"server_port" yaml:"server_port" validate:"required,tcpport"`
	UpcomingDays   int    `mapstructure:"upcoming_days" yaml:"upcoming_days" validate:"gte=1,lte=3650"`
}

// DefaultSettings returns the settings written on first run.
func DefaultSettings() Settings {
	return Settings{
		StoreBackend:   DefaultBackend,
		CheckConflicts: DefaultCheckConflicts,
		Language:       DefaultLanguage,
		ServerPort:     DefaultPort,
		UpcomingDays:   DefaultUpcomingDays,
	}
}

// DefaultSettingsPath is <user config dir>/go-calendar/settings.yaml.
func DefaultSettingsPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrSettingsPath, err)
	}
	return filepath.Join(dir, BinaryName, SettingsFileName), nil
}

// LoadSettings reads the YAML file at path, creating it with defaults when
// it does not exist. GOCAL_<KEY> environment variables override file values.
func LoadSettings(path string) (Settings, error) {
	if path == "" {
		return Settings{}, errors.New(ErrSettingsPath)
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := SaveSettings(path, DefaultSettings()); err != nil {
			return Settings{}, err
		}
		slog.Info(MsgSettingsCreated,
			LogKeyComponent, CompSettings,
			LogKeyPath, path,
		)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType(settingsType)
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return Settings{}, fmt.Errorf("%s: %w", ErrSettingsLoad, err)
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("%s: %w", ErrSettingsLoad, err)
	}
	s.Language = strings.ToLower(strings.TrimSpace(s.Language))
	s.StoreBackend = strings.ToLower(strings.TrimSpace(s.StoreBackend))

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}

	slog.Debug(MsgSettingsLoaded,
		LogKeyComponent, CompSettings,
		LogKeyPath, path,
		LogKeyBackend, s.StoreBackend,
		LogKeyLang, s.Language,
	)
	return s, nil
}

func setDefaults(v *viper.Viper) {
	d := DefaultSettings()
	v.SetDefault(SettingStorePath, d.StorePath)
	v.SetDefault(SettingStoreBackend, d.StoreBackend)
	v.SetDefault(SettingCheckConflicts, d.CheckConflicts)
	v.SetDefault(SettingLanguage, d.Language)
	v.SetDefault(SettingServerPort, d.ServerPort)
	v.SetDefault(SettingUpcomingDays, d.UpcomingDays)
}

// Validate checks every field against its constraints.
func (s Settings) Validate() error {
	validate := validator.New()
	if err := validate.RegisterValidation(portValidatorID, validatePort); err != nil {
		return err
	}
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("%s: %w", ErrSettingsInvalid, err)
	}
	return nil
}

func validatePort(fl validator.FieldLevel) bool {
	port, err := strconv.Atoi(fl.Field().String())
	return err == nil && port >= 1 && port <= 65535
}

// SaveSettings writes s as YAML, atomically and readable by the owner only.
func SaveSettings(path string, s Settings) error {
	if path == "" {
		return errors.New(ErrSettingsPath)
	}
	if err := writeSettings(path, s); err != nil {
		return fmt.Errorf("%s: %w", ErrSettingsSave, err)
	}
	return nil
}

func writeSettings(path string, s Settings) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, DirPermUserRWX); err != nil {
		return err
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".go-calendar-settings-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, FilePermUserRW); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
