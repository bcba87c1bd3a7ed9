package client

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

const defaultCommand = "hoymiles-wifi"

// CLIClient fetches telemetry by invoking the hoymiles-wifi command line
// tool, which owns the DTU protocol and encryption-key handling.
type CLIClient struct {
	host    string
	command string
}

// NewCLIClient creates a client for the DTU at the given host or IP
func NewCLIClient(host string) *CLIClient {
	return &CLIClient{
		host:    host,
		command: defaultCommand,
	}
}

// FetchRealData retrieves the current telemetry snapshot from the DTU.
// The subprocess is killed when ctx expires, so a hung device surfaces
// as an error instead of blocking the caller.
func (c *CLIClient) FetchRealData(ctx context.Context) (*RealData, error) {
	cmd := exec.CommandContext(ctx, c.command, "--host", c.host, "--as-json", "get-real-data-new")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("hoymiles-wifi failed: %v, stderr: %s", err, stderr.String())
	}

	return parseRealData(stdout.Bytes())
}
