// Package config loads gowork settings from YAML files.
//
// Settings mirror the construction parameters of the runtime packages
// (channel capacity, pool sizing, scheduler cadence) so applications can
// keep them in a config file instead of hard-coding them. Load applies
// defaults for omitted fields and validates the result before returning.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	gwerrors "github.com/vnykmshr/gowork/pkg/common/errors"
	"github.com/vnykmshr/gowork/pkg/common/validation"
	"github.com/vnykmshr/gowork/pkg/pool"
	"github.com/vnykmshr/gowork/pkg/schedule"
)

// Duration is a time.Duration that unmarshals from YAML strings like "30s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return gwerrors.NewValidationError("config", "duration", s, err.Error()).
			WithHint("use Go duration syntax, e.g. \"30s\" or \"1m\"")
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// ChannelSettings configures a bounded channel.
type ChannelSettings struct {
	Capacity int `yaml:"capacity"`
}

// PoolSettings configures a worker pool.
type PoolSettings struct {
	Workers     int      `yaml:"workers"`
	QueueDepth  int      `yaml:"queue_depth"`
	TaskTimeout Duration `yaml:"task_timeout"`
}

// ScheduleSettings configures a scheduler.
type ScheduleSettings struct {
	TickInterval Duration `yaml:"tick_interval"`
	MaxTasks     int      `yaml:"max_tasks"`
}

// Settings is the root configuration document.
type Settings struct {
	Channel  ChannelSettings  `yaml:"channel"`
	Pool     PoolSettings     `yaml:"pool"`
	Schedule ScheduleSettings `yaml:"schedule"`
}

// DefaultSettings returns settings with the same defaults the runtime
// packages use when constructed directly.
func DefaultSettings() Settings {
	return Settings{
		Channel: ChannelSettings{Capacity: 64},
		Pool: PoolSettings{
			Workers:    4,
			QueueDepth: pool.DefaultQueueDepth,
		},
		Schedule: ScheduleSettings{
			TickInterval: Duration(50 * time.Millisecond),
			MaxTasks:     10000,
		},
	}
}

// Load reads a YAML settings file, fills omitted fields with defaults,
// and validates the result.
func Load(path string) (Settings, error) {
	s := DefaultSettings()
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to read settings file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Save writes settings to a YAML file.
func Save(path string, s Settings) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write settings file %s: %w", path, err)
	}
	return nil
}

// Validate checks the settings against the same rules the runtime
// constructors enforce.
func (s Settings) Validate() error {
	if err := validation.ValidatePositive("config", "channel.capacity", s.Channel.Capacity); err != nil {
		return err
	}
	if err := validation.ValidatePositive("config", "pool.workers", s.Pool.Workers); err != nil {
		return err
	}
	if err := validation.ValidateNonNegative("config", "pool.queue_depth", s.Pool.QueueDepth); err != nil {
		return err
	}
	if s.Pool.TaskTimeout < 0 {
		return gwerrors.NewValidationError("config", "pool.task_timeout", time.Duration(s.Pool.TaskTimeout), "must not be negative")
	}
	if s.Schedule.TickInterval <= 0 {
		return gwerrors.NewValidationError("config", "schedule.tick_interval", time.Duration(s.Schedule.TickInterval), "must be positive")
	}
	if err := validation.ValidatePositive("config", "schedule.max_tasks", s.Schedule.MaxTasks); err != nil {
		return err
	}
	return nil
}

// PoolConfig converts pool settings into a pool.Config.
func (s Settings) PoolConfig() pool.Config {
	return pool.Config{
		Workers:     s.Pool.Workers,
		QueueDepth:  s.Pool.QueueDepth,
		TaskTimeout: time.Duration(s.Pool.TaskTimeout),
	}
}

// ScheduleConfig converts scheduler settings into a schedule.Config.
// The pool is left nil so the scheduler owns its own unless the caller
// sets one.
func (s Settings) ScheduleConfig() schedule.Config {
	return schedule.Config{
		TickInterval: time.Duration(s.Schedule.TickInterval),
		MaxTasks:     s.Schedule.MaxTasks,
	}
}
