// control/config.go
// Author: momentics <momentics@gmail.com>
//
// Run configuration for the workload harness: defaults, YAML loading,
// scale-factor application and validation.

package control

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/momentics/speedcore/api"
	"gopkg.in/yaml.v3"
)

// Config drives every workload. Zero Workers means one per GOMAXPROCS.
type Config struct {
	LogLevel string      `yaml:"logLevel"`
	Queue    QueueConfig `yaml:"queue"`
	Pool     PoolConfig  `yaml:"pool"`
	Arena    ArenaConfig `yaml:"arena"`
}

// QueueConfig shapes the producer/consumer workload.
type QueueConfig struct {
	Capacity         int `yaml:"capacity"`
	Pairs            int `yaml:"pairs"`
	ItemsPerProducer int `yaml:"itemsPerProducer"`
}

// PoolConfig shapes the worker pool workload.
type PoolConfig struct {
	Workers        int      `yaml:"workers"`
	Tasks          int      `yaml:"tasks"`
	SpinIterations int      `yaml:"spinIterations"`
	TaskSleep      Duration `yaml:"taskSleep"`
	PinWorkers     bool     `yaml:"pinWorkers"`
}

// ArenaConfig shapes the arena batch workload.
type ArenaConfig struct {
	Iterations int `yaml:"iterations"`
	BlockSize  int `yaml:"blockSize"`
	Batches    int `yaml:"batches"`
}

// Duration is a time.Duration written as "100us", "2ms" etc. in YAML.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*d = Duration(v)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// DefaultConfig returns the scale-1 configuration.
func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		Queue: QueueConfig{
			Capacity:         1000,
			Pairs:            4,
			ItemsPerProducer: 1000,
		},
		Pool: PoolConfig{
			Workers:        8,
			Tasks:          500,
			SpinIterations: 10000,
			TaskSleep:      Duration(100 * time.Microsecond),
		},
		Arena: ArenaConfig{
			Iterations: 8000,
			BlockSize:  128,
			Batches:    10,
		},
	}
}

// LoadConfig reads YAML from path on top of DefaultConfig. Unknown keys are
// rejected. An empty file yields the defaults.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return DecodeConfig(f)
}

// DecodeConfig is LoadConfig over an arbitrary reader.
func DecodeConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Scale multiplies the workload sizes (not the topology) by factor.
func (c Config) Scale(factor int) Config {
	c.Queue.ItemsPerProducer *= factor
	c.Pool.Tasks *= factor
	c.Arena.Iterations *= factor
	return c
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, field string, value any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%s: %v", field, value))
		}
	}
	_, lvlErr := ParseLevel(c.LogLevel)
	check(lvlErr == nil, "logLevel", c.LogLevel)
	check(c.Queue.Capacity > 0, "queue.capacity", c.Queue.Capacity)
	check(c.Queue.Pairs > 0, "queue.pairs", c.Queue.Pairs)
	check(c.Queue.ItemsPerProducer >= 0, "queue.itemsPerProducer", c.Queue.ItemsPerProducer)
	check(c.Pool.Workers >= 0, "pool.workers", c.Pool.Workers)
	check(c.Pool.Tasks >= 0, "pool.tasks", c.Pool.Tasks)
	check(c.Pool.SpinIterations >= 0, "pool.spinIterations", c.Pool.SpinIterations)
	check(c.Pool.TaskSleep >= 0, "pool.taskSleep", time.Duration(c.Pool.TaskSleep))
	check(c.Arena.Iterations >= 0, "arena.iterations", c.Arena.Iterations)
	check(c.Arena.BlockSize > 0, "arena.blockSize", c.Arena.BlockSize)
	check(c.Arena.Batches > 0, "arena.batches", c.Arena.Batches)
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", api.ErrInvalidArgument, errors.Join(errs...))
}
