// SPDX-License-Identifier: GPL-3.0-or-later

// Command dynali talks to the Dynali dynamic-DNS API.
//
// Usage:
//
//	dynali [flags] myip|update|status|changepassword
//
// Settings come from defaults, an optional YAML file (-config or
// DYNALI_CONFIG), DYNALI_* environment variables, and flags, in increasing
// order of precedence. Passwords are prompted for when missing and stdin
// is a terminal.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/bassosimone/dynali"
	"golang.org/x/term"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := &command{
		lookupEnv:    os.LookupEnv,
		readPassword: readPasswordFromTerminal,
		stderr:       os.Stderr,
		stdout:       os.Stdout,
	}
	if err := cmd.run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "dynali: %s\n", err)
		os.Exit(1)
	}
}

// command holds the process dependencies of a single invocation.
type command struct {
	lookupEnv    func(string) (string, bool)
	readPassword func(prompt string) (string, error)
	stderr       io.Writer
	stdout       io.Writer
}

func (c *command) run(ctx context.Context, args []string) error {
	cfg, name, err := parseCommandLine(args, c.lookupEnv, c.stderr)
	if err != nil {
		return err
	}

	endpoint, err := dynali.ParseEndpoint(cfg.Endpoint)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg, c.stderr)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	config := dynali.NewConfig()
	config.Endpoint = endpoint
	clnt := dynali.NewClient(config, dynali.NewHTTPTransport(config, logger), logger)

	switch name {
	case dynali.ActionMyIP:
		ip, err := clnt.MyIP(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.stdout, ip)
		return nil

	case dynali.ActionUpdate:
		if err := c.promptPassword(&cfg.Password, "Password: "); err != nil {
			return err
		}
		if _, err := clnt.Update(ctx, cfg.Hostname, cfg.Username, cfg.Password, cfg.IP); err != nil {
			return err
		}
		fmt.Fprintf(c.stdout, "%s updated\n", cfg.Hostname)
		return nil

	case dynali.ActionStatus:
		if err := c.promptPassword(&cfg.Password, "Password: "); err != nil {
			return err
		}
		record, err := clnt.Status(ctx, cfg.Hostname, cfg.Username, cfg.Password)
		if err != nil {
			return err
		}
		fmt.Fprint(c.stdout, record.String())
		return nil

	case dynali.ActionChangePassword:
		if err := c.promptPassword(&cfg.Password, "Current password: "); err != nil {
			return err
		}
		if err := c.promptPassword(&cfg.NewPassword, "New password: "); err != nil {
			return err
		}
		if _, err := clnt.ChangePassword(ctx, cfg.Hostname, cfg.Username, cfg.Password, cfg.NewPassword); err != nil {
			return err
		}
		fmt.Fprintf(c.stdout, "%s password changed\n", cfg.Hostname)
		return nil

	default:
		return fmt.Errorf("unknown command %q: %w", name, errUsage)
	}
}

// promptPassword reads into value when it is empty.
func (c *command) promptPassword(value *string, prompt string) error {
	if *value != "" {
		return nil
	}
	password, err := c.readPassword(prompt)
	if err != nil {
		return fmt.Errorf("reading password: %w", err)
	}
	*value = password
	return nil
}

// readPasswordFromTerminal reads a password from stdin without echo.
func readPasswordFromTerminal(prompt string) (string, error) {
	fd := int(syscall.Stdin)
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("stdin is not a terminal; use -password or DYNALI_PASSWORD")
	}
	fmt.Fprint(os.Stderr, prompt)
	password, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(password), nil
}

// newLogger returns the [dynali.SLogger] selected by cfg.
func newLogger(cfg *cliConfig, w io.Writer) (dynali.SLogger, error) {
	if !cfg.Verbose {
		return dynali.DefaultSLogger(), nil
	}
	options := &slog.HandlerOptions{Level: slog.LevelDebug}
	switch cfg.LogFormat {
	case logFormatText:
		return slog.New(slog.NewTextHandler(w, options)), nil
	case logFormatJSON:
		return slog.New(slog.NewJSONHandler(w, options)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.LogFormat)
	}
}
