package service

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	charmlog "github.com/charmbracelet/log"
	"github.com/pkg/errors"

	"github.com/neuroprep/nireport/domain"
)

// ExecToolRunner executes external neuroimaging tools via the shell PATH.
// It implements domain.ToolRunner.
type ExecToolRunner struct {
	logger *charmlog.Logger
}

// NewExecToolRunner creates a new exec-based tool runner
func NewExecToolRunner(logger *charmlog.Logger) *ExecToolRunner {
	return &ExecToolRunner{logger: logger}
}

// Run executes argv to completion. Tool output is captured and folded into
// the returned error on failure; there are no retries.
func (r *ExecToolRunner) Run(ctx context.Context, argv []string) error {
	if len(argv) == 0 {
		return domain.NewValidationError("empty command line")
	}

	if _, err := exec.LookPath(argv[0]); err != nil {
		return domain.NewToolError("command not found: "+argv[0], err)
	}

	r.logger.Debug("running external tool", "cmdline", strings.Join(argv, " "))

	var output bytes.Buffer
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdout = &output
	cmd.Stderr = &output

	if err := cmd.Run(); err != nil {
		wrapped := errors.Wrapf(err, "output: %s", strings.TrimSpace(output.String()))
		return domain.NewToolError("command failed: "+argv[0], wrapped)
	}
	return nil
}
