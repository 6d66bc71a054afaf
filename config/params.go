package config

import (
	"errors"
	"fmt"
	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
	"ledger/utils"
	"os"
)

const (
	DefaultQueueCapacity   = 5
	DefaultInitialAccounts = 10
	DefaultLogLevel        = "warn"

	// ConfigPathEnv names an optional YAML parameter file.
	ConfigPathEnv = "LEDGER_CONFIG"
)

// RunParameters sizes one processing run. A zero Loaders means one loader
// per worker.
type RunParameters struct {
	Workers         int    `yaml:"workers"`
	Loaders         int    `yaml:"loaders" env:"LEDGER_LOADERS"`
	QueueCapacity   int    `yaml:"queue_capacity" env:"LEDGER_QUEUE_CAPACITY"`
	InitialAccounts int    `yaml:"initial_accounts" env:"LEDGER_INITIAL_ACCOUNTS"`
	LogLevel        string `yaml:"log_level" env:"LEDGER_LOG_LEVEL"`
	LogFile         string `yaml:"log_file" env:"LEDGER_LOG_FILE"`
}

func NewRunParameters(workers int) *RunParameters {
	return &RunParameters{
		Workers:         workers,
		QueueCapacity:   DefaultQueueCapacity,
		InitialAccounts: DefaultInitialAccounts,
		LogLevel:        DefaultLogLevel,
	}
}

// LoadRunParameters starts from the defaults, applies the YAML file named by
// LEDGER_CONFIG (if any), then the environment, then the worker count given
// on the command line.
func LoadRunParameters(workers int) (*RunParameters, error) {
	params := NewRunParameters(workers)

	if path := os.Getenv(ConfigPathEnv); path != "" {
		if err := params.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := env.Parse(params); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	params.Workers = workers
	params.ApplyDefaults()

	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid run parameters: %w", err)
	}
	return params, nil
}

func (p *RunParameters) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read parameter file: %w", err)
	}
	if err := yaml.Unmarshal(data, p); err != nil {
		return fmt.Errorf("parse parameter file %v: %w", path, err)
	}
	return nil
}

func (p *RunParameters) ApplyDefaults() {
	if p.Loaders == 0 {
		p.Loaders = p.Workers
	}
	if p.QueueCapacity == 0 {
		p.QueueCapacity = DefaultQueueCapacity
	}
	if p.LogLevel == "" {
		p.LogLevel = DefaultLogLevel
	}
}

func (p *RunParameters) Validate() error {
	if p.Workers <= 0 {
		return errors.New("the number of workers must be positive")
	}
	if p.Loaders <= 0 {
		return errors.New("the number of loaders must be positive")
	}
	if p.QueueCapacity <= 0 {
		return errors.New("the queue capacity must be positive")
	}
	if p.InitialAccounts < 0 {
		return errors.New("the number of initial accounts cannot be negative")
	}
	if _, err := utils.ParseLogLevel(p.LogLevel); err != nil {
		return err
	}
	return nil
}

func IsRunParametersValid(params *RunParameters) bool {
	return params.Validate() == nil
}
