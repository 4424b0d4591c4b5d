// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/bassosimone/dynali"
	"gopkg.in/yaml.v3"
)

// cliConfig is the command line configuration.
//
// Sources are layered as defaults < YAML file < DYNALI_* environment < flags.
type cliConfig struct {
	Endpoint    string        `yaml:"endpoint"`
	Hostname    string        `yaml:"hostname"`
	Username    string        `yaml:"username"`
	Password    string        `yaml:"password"`
	NewPassword string        `yaml:"new_password"`
	IP          string        `yaml:"ip"`
	Timeout     time.Duration `yaml:"timeout"`
	LogFormat   string        `yaml:"log_format"`
	Verbose     bool          `yaml:"verbose"`
}

const (
	defaultTimeout   = 30 * time.Second
	logFormatText    = "text"
	logFormatJSON    = "json"
	configPathEnvVar = "DYNALI_CONFIG"
)

func defaultCLIConfig() *cliConfig {
	return &cliConfig{
		Endpoint:  "production",
		IP:        dynali.AutoIP,
		Timeout:   defaultTimeout,
		LogFormat: logFormatText,
	}
}

// loadConfigFile overlays the YAML file at path onto cfg. Keys missing
// from the file keep their current value.
func loadConfigFile(path string, cfg *cliConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// applyEnv overlays the DYNALI_* variables onto cfg.
func applyEnv(cfg *cliConfig, lookupEnv func(string) (string, bool)) error {
	strs := map[string]*string{
		"DYNALI_ENDPOINT":     &cfg.Endpoint,
		"DYNALI_HOSTNAME":     &cfg.Hostname,
		"DYNALI_USERNAME":     &cfg.Username,
		"DYNALI_PASSWORD":     &cfg.Password,
		"DYNALI_NEW_PASSWORD": &cfg.NewPassword,
		"DYNALI_IP":           &cfg.IP,
		"DYNALI_LOG_FORMAT":   &cfg.LogFormat,
	}
	for name, field := range strs {
		if value, found := lookupEnv(name); found {
			*field = value
		}
	}
	if value, found := lookupEnv("DYNALI_TIMEOUT"); found {
		timeout, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("DYNALI_TIMEOUT: %w", err)
		}
		cfg.Timeout = timeout
	}
	if value, found := lookupEnv("DYNALI_VERBOSE"); found {
		verbose, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("DYNALI_VERBOSE: %w", err)
		}
		cfg.Verbose = verbose
	}
	return nil
}

// errUsage indicates that the command line is malformed.
var errUsage = errors.New("usage: dynali [flags] myip|update|status|changepassword")

// parseCommandLine returns the layered configuration and the command name.
func parseCommandLine(args []string, lookupEnv func(string) (string, bool), output io.Writer) (*cliConfig, string, error) {
	fset := flag.NewFlagSet("dynali", flag.ContinueOnError)
	fset.SetOutput(output)
	var (
		configPath  = fset.String("config", "", "path to a YAML config file (env: DYNALI_CONFIG)")
		endpoint    = fset.String("endpoint", "", "production, debug, or an http(s) URL")
		hostname    = fset.String("hostname", "", "hostname to update or query")
		username    = fset.String("username", "", "account username")
		password    = fset.String("password", "", "plaintext password (prompted when empty)")
		newPassword = fset.String("new-password", "", "plaintext new password for changepassword")
		ip          = fset.String("ip", "", "IPv4 address for update, or auto")
		timeout     = fset.Duration("timeout", 0, "overall timeout for the request")
		logFormat   = fset.String("log-format", "", "text or json")
		verbose     = fset.Bool("v", false, "emit structured logs on stderr")
	)
	if err := fset.Parse(args); err != nil {
		return nil, "", err
	}
	if fset.NArg() != 1 {
		return nil, "", errUsage
	}

	cfg := defaultCLIConfig()
	path := *configPath
	if path == "" {
		path, _ = lookupEnv(configPathEnvVar)
	}
	if path != "" {
		if err := loadConfigFile(path, cfg); err != nil {
			return nil, "", err
		}
	}
	if err := applyEnv(cfg, lookupEnv); err != nil {
		return nil, "", err
	}

	fset.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "endpoint":
			cfg.Endpoint = *endpoint
		case "hostname":
			cfg.Hostname = *hostname
		case "username":
			cfg.Username = *username
		case "password":
			cfg.Password = *password
		case "new-password":
			cfg.NewPassword = *newPassword
		case "ip":
			cfg.IP = *ip
		case "timeout":
			cfg.Timeout = *timeout
		case "log-format":
			cfg.LogFormat = *logFormat
		case "v":
			cfg.Verbose = *verbose
		}
	})
	return cfg, fset.Arg(0), nil
}
