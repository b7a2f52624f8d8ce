// Package config holds the enumerated search options and their YAML
// loading.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config enumerates every knob of the search engine. The zero value
// is not useful; start from Default.
type Config struct {
	// UseReceiverQueueSemantics enables the receiver-order reduction
	// filter on candidate senders.
	UseReceiverQueueSemantics bool `yaml:"useReceiverQueueSemantics"`

	// UseBagSemantics makes every machine buffer an unordered bag.
	UseBagSemantics bool `yaml:"useBagSemantics"`

	// UseSleepSets enables sleep-set pruning of candidate senders.
	UseSleepSets bool `yaml:"useSleepSets"`

	// UseFilters enables the interleave-order reduction filter.
	UseFilters bool `yaml:"useFilters"`

	// UseStateCaching enumerates concrete states each step and prunes
	// candidates that only lead to states already seen.
	UseStateCaching bool `yaml:"useStateCaching"`

	// UseBacktrack snapshots the source state at each step so the
	// search can restore an earlier frame.
	UseBacktrack bool `yaml:"useBacktrack"`

	// IsDpor keeps vector clocks up to date even when no reduction
	// that needs them is enabled.
	IsDpor bool `yaml:"isDpor"`

	// MaxStepBound terminates the run when the depth reaches it.
	MaxStepBound int `yaml:"maxStepBound"`

	// MaxInternalSteps bounds one event-to-completion dispatch; zero
	// means unbounded.
	MaxInternalSteps int `yaml:"maxInternalSteps"`

	// CollectStats sets stats collection detail, 0-4.
	CollectStats int `yaml:"collectStats"`

	// Verbosity sets log detail, 0-5.
	Verbosity int `yaml:"verbosity"`

	// MemLimitMB caps memory in megabytes; zero means unlimited.
	MemLimitMB float64 `yaml:"memLimit"`

	// TimeLimitSeconds caps wall-clock time in seconds; zero means
	// unlimited.
	TimeLimitSeconds float64 `yaml:"timeLimit"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		MaxStepBound:     1000,
		MaxInternalSteps: 1000,
		CollectStats:     1,
	}
}

// Load reads a YAML file over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg, nil
}
