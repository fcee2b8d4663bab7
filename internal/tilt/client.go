package tilt

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	shellquote "github.com/kballard/go-shellquote"

	"github.com/tilt-dev/ephemerator/tilt-healthcheck/internal/errors"
	"github.com/tilt-dev/ephemerator/tilt-healthcheck/internal/logging"
	"github.com/tilt-dev/ephemerator/tilt-healthcheck/internal/system"
)

// DefaultCommand is the command used to reach tilt when none is configured.
var DefaultCommand = []string{"tilt"}

// Client runs read-only `tilt get` queries through a CommandExecutor.
type Client struct {
	exec    system.CommandExecutor
	command []string
	port    int
	timeout time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithCommand sets the command prefix used to invoke tilt, e.g.
// []string{"kubectl", "exec", "pod", "--", "tilt"}.
func WithCommand(command []string) Option {
	return func(c *Client) {
		if len(command) > 0 {
			c.command = command
		}
	}
}

// WithPort points tilt at a non-default API server port.
func WithPort(port int) Option {
	return func(c *Client) {
		c.port = port
	}
}

// WithQueryTimeout bounds each query. Zero means no deadline.
func WithQueryTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// NewClient creates a Client. A nil executor uses system.DefaultExecutor().
func NewClient(exec system.CommandExecutor, opts ...Option) *Client {
	if exec == nil {
		exec = system.DefaultExecutor()
	}
	c := &Client{
		exec:    exec,
		command: DefaultCommand,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Args returns the full argv for `tilt get <what...>`.
func (c *Client) Args(what ...string) []string {
	argv := make([]string, 0, len(c.command)+len(what)+2)
	argv = append(argv, c.command...)
	argv = append(argv, "get")
	argv = append(argv, what...)
	if c.port > 0 {
		argv = append(argv, fmt.Sprintf("--port=%d", c.port))
	}
	return argv
}

func (c *Client) get(ctx context.Context, what ...string) ([]byte, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	argv := c.Args(what...)
	logging.Debug("running tilt", "command", shellquote.Join(argv...))
	return c.exec.Execute(ctx, argv[0], argv[1:]...)
}

// UIResources fetches every UI resource known to the tilt instance.
func (c *Client) UIResources(ctx context.Context) (*UIResourceList, error) {
	out, err := c.get(ctx, "uiresources", "-o=json")
	if err != nil {
		return nil, errors.TiltUnavailable(err)
	}

	list, err := decodeUIResources(out)
	if err != nil {
		return nil, errors.DecodeFailed("uiresources", err)
	}
	logging.Debug("fetched uiresources", "count", len(list.Items))
	return list, nil
}

// decodeUIResources parses exactly one UIResourceList object. A missing or
// null items array and nameless items are rejected.
func decodeUIResources(data []byte) (*UIResourceList, error) {
	var list UIResourceList
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, err
	}
	if list.Items == nil {
		return nil, fmt.Errorf("missing items")
	}
	for i, item := range list.Items {
		if item.Name == "" {
			return nil, fmt.Errorf("item %d has no metadata.name", i)
		}
	}
	return &list, nil
}

// Session reports whether the UISession object can be read, which means the
// tilt API server is up and answering.
func (c *Client) Session(ctx context.Context) error {
	if _, err := c.get(ctx, "uisession"); err != nil {
		return errors.SessionUnreachable(err)
	}
	return nil
}
