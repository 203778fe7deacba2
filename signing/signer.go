package signing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Signing functions understood by the external runtime.
const (
	FunctionSignOrder = "sign_order"
)

// waitDelay bounds how long a canceled runtime may hold its output pipes.
const waitDelay = time.Second

// ErrEmptySignature is returned when the signing runtime prints nothing.
var ErrEmptySignature = errors.New("signer returned an empty signature")

// Signer produces a signature for the named function and arguments.
// Implementations must be safe for concurrent use.
type Signer interface {
	Sign(ctx context.Context, function string, args map[string]any) (string, error)
}

// SignerFunc adapts a function to the Signer interface.
type SignerFunc func(ctx context.Context, function string, args map[string]any) (string, error)

// Sign calls f.
func (f SignerFunc) Sign(ctx context.Context, function string, args map[string]any) (string, error) {
	return f(ctx, function, args)
}

// Error describes a failed signing call.
type Error struct {
	Function string
	// Stderr is the trimmed standard error of the runtime, if any.
	Stderr string
	Err    error
}

func (e *Error) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("sign %s: %v: %s", e.Function, e.Err, e.Stderr)
	}
	return fmt.Sprintf("sign %s: %v", e.Function, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// ExecSigner runs an external program for every signature. Each call starts
// a new process, so concurrent calls do not share state.
type ExecSigner struct {
	path string
	args []string
	env  []string
}

// NewExecSigner returns a signer that runs path with args.
func NewExecSigner(path string, args ...string) *ExecSigner {
	return &ExecSigner{path: path, args: args}
}

// WithEnv returns a copy of the signer that appends env to the process
// environment.
func (s *ExecSigner) WithEnv(env ...string) *ExecSigner {
	c := *s
	c.env = append(append([]string(nil), s.env...), env...)
	return &c
}

type execRequest struct {
	Function string         `json:"function"`
	Args     map[string]any `json:"args"`
}

// Sign implements Signer.
func (s *ExecSigner) Sign(ctx context.Context, function string, args map[string]any) (string, error) {
	payload, err := json.Marshal(execRequest{Function: function, Args: args})
	if err != nil {
		return "", &Error{Function: function, Err: fmt.Errorf("encode arguments: %w", err)}
	}

	cmd := exec.CommandContext(ctx, s.path, s.args...)
	cmd.WaitDelay = waitDelay
	if len(s.env) > 0 {
		cmd.Env = append(cmd.Environ(), s.env...)
	}
	cmd.Stdin = bytes.NewReader(payload)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", &Error{Function: function, Stderr: strings.TrimSpace(stderr.String()), Err: err}
	}

	signature := strings.TrimSpace(stdout.String())
	if signature == "" {
		return "", &Error{Function: function, Stderr: strings.TrimSpace(stderr.String()), Err: ErrEmptySignature}
	}
	return signature, nil
}

var (
	_ Signer = (*ExecSigner)(nil)
	_ Signer = SignerFunc(nil)
)
