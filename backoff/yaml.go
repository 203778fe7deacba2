package backoff

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// PolicySpec is the serialized form of a Policy. Zero fields take the
// corresponding DefaultPolicy value, except MaxRetries which is taken as is
// when present.
type PolicySpec struct {
	Factor     float64       `yaml:"factor"`
	MinDelay   time.Duration `yaml:"min_delay"`
	MaxDelay   time.Duration `yaml:"max_delay"`
	MaxRetries *int          `yaml:"max_retries"`
	Jitter     float64       `yaml:"jitter"`
}

// RegistrySpec is the serialized form of a Custom registry.
type RegistrySpec struct {
	Fallback   *PolicySpec           `yaml:"fallback"`
	Operations map[string]PolicySpec `yaml:"operations"`
}

// Policy converts the document entry into a Policy.
func (s PolicySpec) Policy() Policy {
	p := DefaultPolicy()
	if s.Factor != 0 {
		p.Factor = s.Factor
	}
	if s.MinDelay != 0 {
		p.MinDelay = s.MinDelay
	}
	if s.MaxDelay != 0 {
		p.MaxDelay = s.MaxDelay
	}
	if s.MaxRetries != nil {
		p.MaxRetries = *s.MaxRetries
	}
	p.Jitter = s.Jitter
	return p
}

// Registry builds a validated Custom registry from the document.
func (s RegistrySpec) Registry() (*Custom, error) {
	fallback := DefaultPolicy()
	if s.Fallback != nil {
		fallback = s.Fallback.Policy()
	}
	if err := fallback.Validate(); err != nil {
		return nil, fmt.Errorf("fallback policy: %w", err)
	}

	policies := make(map[string]Policy, len(s.Operations))
	var errs []error
	for name, spec := range s.Operations {
		p := spec.Policy()
		if err := p.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("operation %q: %w", name, err))
			continue
		}
		policies[name] = p
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return NewCustom(fallback, policies), nil
}

// LoadYAML reads a RegistrySpec document and returns the registry it describes.
func LoadYAML(r io.Reader) (*Custom, error) {
	var spec RegistrySpec
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&spec); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode backoff registry: %w", err)
	}
	return spec.Registry()
}

// LoadFile is LoadYAML for a file path.
func LoadFile(path string) (*Custom, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open backoff registry: %w", err)
	}
	defer f.Close()
	return LoadYAML(f)
}
