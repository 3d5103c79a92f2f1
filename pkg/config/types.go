package config

import "time"

// Suite is a benchmark suite definition.
type Suite struct {
	// Name titles the suite in reports.
	Name string `yaml:"name" validate:"required"`

	// ArtifactDir is where log artifacts and reports are written.
	ArtifactDir string `yaml:"artifact_dir"`

	// LogExt is the log artifact file extension, without the dot.
	LogExt string `yaml:"log_ext"`

	// Tools are the candidates offered by the selection wizard.
	Tools []Tool `yaml:"tools" validate:"required,min=1,dive"`
}

// Tool is one benchmarked command.
type Tool struct {
	// Name labels the tool in menus and reports.
	Name string `yaml:"name" validate:"required"`

	// Command is the executable to measure.
	Command string `yaml:"command" validate:"required"`

	// Args are passed to every invocation.
	Args []string `yaml:"args"`

	// Dir is the working directory for the invocations.
	Dir string `yaml:"dir"`

	// TimeoutSec bounds a single invocation; 0 means no bound.
	TimeoutSec int `yaml:"timeout_sec" validate:"min=0"`

	// Iterations is the number of timed runs.
	Iterations int `yaml:"iterations" validate:"min=0"`

	// Warmup is the number of untimed runs before measuring.
	Warmup int `yaml:"warmup" validate:"min=0"`
}

// Timeout returns the per-invocation bound as a duration.
func (t Tool) Timeout() time.Duration {
	return time.Duration(t.TimeoutSec) * time.Second
}

// applyDefaults fills the optional fields a suite file may omit.
func (s *Suite) applyDefaults() {
	if s.ArtifactDir == "" {
		s.ArtifactDir = "artifacts"
	}
	if s.LogExt == "" {
		s.LogExt = "log"
	}
	for i := range s.Tools {
		if s.Tools[i].Iterations == 0 {
			s.Tools[i].Iterations = 3
		}
	}
}
