// Package config provides configuration loading for tilt-healthcheck.
//
// Configuration is optional. Without a file every command uses Default().
// A TOML file is read from the --config flag, or from the path named by
// $TILT_HEALTHCHECK_CONFIG when the flag is absent:
//
//	tilt = "kubectl exec env-1 -c tilt-upper -- tilt"
//	port = 10350
//	query_timeout = "2s"
//
//	[wait]
//	interval = "5s"
//	timeout = "5m"
//	audit_dir = "/var/lib/tilt-healthcheck/events"
//
// The tilt value is split with shell quoting rules, so a command prefix with
// quoted arguments works as it would in a shell.
//
// Unknown keys are rejected so that typos do not silently fall back to defaults.
package config
