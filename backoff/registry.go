package backoff

// Registry resolves the retry policy for an operation name.
// Resolve must be safe for concurrent use and must always return a policy.
type Registry interface {
	Resolve(operation string) Policy
}

// Fallback applies one policy to every operation.
type Fallback struct {
	policy Policy
}

// NewFallback returns a registry that resolves every operation to p.
func NewFallback(p Policy) *Fallback {
	return &Fallback{policy: p}
}

// DefaultFallback returns a Fallback registry using DefaultPolicy.
func DefaultFallback() *Fallback {
	return NewFallback(DefaultPolicy())
}

// Resolve implements Registry.
func (f *Fallback) Resolve(string) Policy {
	return f.policy
}

// NoRetry resolves every operation to a single-attempt policy. Use it for
// operations where a duplicate request could have side effects.
type NoRetry struct{}

// Resolve implements Registry.
func (NoRetry) Resolve(string) Policy {
	return NoRetryPolicy()
}

// Custom resolves operations from a fixed table and falls back to a default
// policy for names it does not know.
type Custom struct {
	policies map[string]Policy
	fallback Policy
}

// NewCustom returns a registry with per-operation policies. The map is
// copied, so later changes to it do not affect the registry.
func NewCustom(fallback Policy, policies map[string]Policy) *Custom {
	c := &Custom{
		policies: make(map[string]Policy, len(policies)),
		fallback: fallback,
	}
	for name, p := range policies {
		c.policies[name] = p
	}
	return c
}

// Resolve implements Registry.
func (c *Custom) Resolve(operation string) Policy {
	if p, ok := c.policies[operation]; ok {
		return p
	}
	return c.fallback
}

// Fallback returns the policy used for unregistered operations.
func (c *Custom) Fallback() Policy {
	return c.fallback
}

// Operations returns the names with an explicit policy.
func (c *Custom) Operations() []string {
	names := make([]string, 0, len(c.policies))
	for name := range c.policies {
		names = append(names, name)
	}
	return names
}

var (
	_ Registry = (*Fallback)(nil)
	_ Registry = NoRetry{}
	_ Registry = (*Custom)(nil)
)
