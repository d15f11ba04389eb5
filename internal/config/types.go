// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// RunnerNative runs targets in the host system shell.
	// Defined locally to avoid coupling config to internal/job.
	RunnerNative RunnerMode = "native"
	// RunnerVirtual runs targets in the embedded mvdan/sh interpreter.
	RunnerVirtual RunnerMode = "virtual"

	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"
)

var (
	// ErrInvalidConfigRunnerMode is returned when a config RunnerMode value is not recognized.
	ErrInvalidConfigRunnerMode = errors.New("invalid runner mode")
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidGracePeriod is returned when a GracePeriod value cannot be parsed.
	ErrInvalidGracePeriod = errors.New("invalid grace period")
	// ErrInvalidNotificationConfig is the sentinel error wrapped by InvalidNotificationConfigError.
	ErrInvalidNotificationConfig = errors.New("invalid notification config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// RunnerMode specifies the execution runner for targets.
	// Defined locally to avoid coupling config to internal/job;
	// the orchestrator casts to job.RunnerType at the boundary.
	RunnerMode string

	// InvalidConfigRunnerModeError is returned when a config RunnerMode value is not recognized.
	// It wraps ErrInvalidConfigRunnerMode for errors.Is() compatibility.
	InvalidConfigRunnerModeError struct {
		Value RunnerMode
	}

	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// GracePeriod is a duration string ("5s", "500ms") bounding how long the
	// supervisor waits for a launch acknowledgement.
	GracePeriod string

	// InvalidGracePeriodError is returned when a GracePeriod value cannot be
	// parsed as a duration. It wraps ErrInvalidGracePeriod for errors.Is().
	InvalidGracePeriodError struct {
		Value GracePeriod
	}

	// InvalidNotificationConfigError is returned when a NotificationConfig has
	// invalid fields. It wraps ErrInvalidNotificationConfig for errors.Is()
	// compatibility and collects field-level validation errors.
	InvalidNotificationConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// DefaultRunner sets the global default runner mode
		DefaultRunner RunnerMode `json:"default_runner" mapstructure:"default_runner"`
		// GracePeriod bounds the wait for a launch acknowledgement
		GracePeriod GracePeriod `json:"grace_period" mapstructure:"grace_period"`
		// LogDir holds per-run logfiles ("" keeps logging console-only)
		LogDir string `json:"log_dir" mapstructure:"log_dir"`
		// ArtifactDir holds parameter-file copies and diagnostic records
		ArtifactDir string `json:"artifact_dir" mapstructure:"artifact_dir"`
		// Notification configures operator notifications
		Notification NotificationConfig `json:"notification" mapstructure:"notification"`
		// UI configures the user interface
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}

	// NotificationConfig configures operator notification delivery.
	NotificationConfig struct {
		// Enabled enables/disables notifications (default: false)
		Enabled bool `json:"enabled" mapstructure:"enabled"`
		// SMTPHost is the SMTP relay hostname
		SMTPHost string `json:"smtp_host" mapstructure:"smtp_host"`
		// SMTPPort is the SMTP relay port
		SMTPPort int `json:"smtp_port" mapstructure:"smtp_port"`
		// From is the sender address
		From string `json:"from" mapstructure:"from"`
		// Username authenticates against the relay ("" disables auth)
		Username string `json:"username" mapstructure:"username"`
		// Password authenticates against the relay
		Password string `json:"password" mapstructure:"password"`
		// Recipients are the default destination addresses
		Recipients []string `json:"recipients" mapstructure:"recipients"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables verbose output
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}
)

// String returns the string representation of the config RunnerMode.
func (m RunnerMode) String() string { return string(m) }

// IsValid returns whether the config RunnerMode is one of the defined runner
// modes, and a list of validation errors if it is not.
func (m RunnerMode) IsValid() (bool, []error) {
	switch m {
	case RunnerNative, RunnerVirtual:
		return true, nil
	default:
		return false, []error{&InvalidConfigRunnerModeError{Value: m}}
	}
}

// Error implements the error interface for InvalidConfigRunnerModeError.
func (e *InvalidConfigRunnerModeError) Error() string {
	return fmt.Sprintf("invalid runner mode %q (valid: native, virtual)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidConfigRunnerModeError) Unwrap() error {
	return ErrInvalidConfigRunnerMode
}

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error {
	return ErrInvalidColorScheme
}

// String returns the string representation of the GracePeriod.
func (g GracePeriod) String() string { return string(g) }

// Duration parses the grace period. The zero value parses to 0; callers
// substitute the built-in default.
func (g GracePeriod) Duration() (time.Duration, error) {
	if g == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(string(g))
	if err != nil || d < 0 {
		return 0, &InvalidGracePeriodError{Value: g}
	}
	return d, nil
}

// IsValid returns whether the GracePeriod parses as a non-negative duration,
// and a list of validation errors if it does not.
func (g GracePeriod) IsValid() (bool, []error) {
	if _, err := g.Duration(); err != nil {
		return false, []error{err}
	}
	return true, nil
}

// Error implements the error interface for InvalidGracePeriodError.
func (e *InvalidGracePeriodError) Error() string {
	return fmt.Sprintf("invalid grace period %q: must be a non-negative duration like \"5s\"", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidGracePeriodError) Unwrap() error {
	return ErrInvalidGracePeriod
}

// IsValid returns whether the NotificationConfig has valid fields.
// Host and From are required only when notifications are enabled.
func (c NotificationConfig) IsValid() (bool, []error) {
	if !c.Enabled {
		return true, nil
	}
	var errs []error
	if strings.TrimSpace(c.SMTPHost) == "" {
		errs = append(errs, fmt.Errorf("notification.smtp_host is required when notifications are enabled"))
	}
	if strings.TrimSpace(c.From) == "" {
		errs = append(errs, fmt.Errorf("notification.from is required when notifications are enabled"))
	}
	if len(errs) > 0 {
		return false, []error{&InvalidNotificationConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidNotificationConfigError.
func (e *InvalidNotificationConfigError) Error() string {
	return fmt.Sprintf("invalid notification config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidNotificationConfig for errors.Is() compatibility.
func (e *InvalidNotificationConfigError) Unwrap() error { return ErrInvalidNotificationConfig }

// IsValid returns whether the UIConfig has valid fields.
// It delegates to ColorScheme.IsValid(); bool fields need no validation.
func (c UIConfig) IsValid() (bool, []error) {
	return c.ColorScheme.IsValid()
}

// IsValid returns whether the Config has valid fields.
// It delegates to DefaultRunner.IsValid(), GracePeriod.IsValid(),
// Notification.IsValid(), and UI.IsValid().
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.DefaultRunner.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.GracePeriod.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Notification.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.UI.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		DefaultRunner: RunnerVirtual,
		GracePeriod:   "5s",
		LogDir:        "", // Console-only unless configured
		ArtifactDir:   "", // Defaults to the log dir, then the working dir
		Notification: NotificationConfig{
			Enabled:    false,
			SMTPPort:   25,
			Recipients: []string{},
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
		},
	}
}
