package command

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ValidationResult carries the structural problems found in a command.
// Errors mean the command would likely fail; warnings flag risky but
// runnable configurations. Validation never blocks execution.
type ValidationResult struct {
	Errors   []string
	Warnings []string
}

// IsValid reports no errors and no warnings.
func (r ValidationResult) IsValid() bool {
	return len(r.Errors) == 0 && len(r.Warnings) == 0
}

// HasErrors reports whether any error was found.
func (r ValidationResult) HasErrors() bool { return len(r.Errors) > 0 }

// HasWarnings reports whether any warning was found.
func (r ValidationResult) HasWarnings() bool { return len(r.Warnings) > 0 }

// requiresValue lists every flag spelling, short and long, that must carry a
// non-blank value.
var requiresValue = map[string]bool{
	"-X": true, "--request": true,
	"-d": true, "--data": true, "--data-binary": true, "--data-urlencode": true,
	"-F": true, "--form": true,
	"-u": true, "--user": true, "--oauth2-bearer": true,
	"--connect-timeout": true, "--max-time": true,
	"-H": true, "--header": true,
	"-A": true, "--user-agent": true,
	"-e": true, "--referer": true,
	"-b": true, "--cookie": true, "-c": true, "--cookie-jar": true,
	"--cacert": true, "--cert": true, "--key": true,
	"--ciphers": true, "--tls-max": true,
	"-x": true, "--proxy": true, "--noproxy": true,
	"-o": true, "--output": true,
	"-w": true, "--write-out": true,
}

// Validate checks cmd's URL and option set.
func Validate(cmd *CurlCommand) ValidationResult {
	var r ValidationResult

	if err := validateURL(cmd.URL); err != nil {
		r.Errors = append(r.Errors, "Invalid URL: "+err.Error())
	}

	enabled := make(map[string]bool)
	for _, opt := range cmd.Options {
		if opt.Enabled {
			enabled[opt.Flag] = true
		}
	}

	if enabled["-s"] && enabled["-v"] {
		r.Errors = append(r.Errors, "Conflicting options: -s (silent) and -v (verbose) cannot be used together")
	}
	if enabled["-I"] && cmd.Body != nil {
		r.Errors = append(r.Errors, "Conflicting options: -I (head) cannot be used with a request body")
	}

	for _, opt := range cmd.Options {
		if !opt.Enabled || !requiresValue[opt.Flag] {
			continue
		}
		if opt.Value == nil || strings.TrimSpace(*opt.Value) == "" {
			r.Errors = append(r.Errors, fmt.Sprintf("Option %s requires a value", opt.Flag))
		}
	}

	if enabled["-k"] || enabled["--insecure"] {
		r.Warnings = append(r.Warnings, "The -k/--insecure option disables SSL certificate verification, which may be insecure")
	}
	for _, opt := range cmd.Options {
		if !opt.Enabled || opt.Value == nil {
			continue
		}
		if opt.Flag == "--max-time" || opt.Flag == "-m" {
			if timeout, err := strconv.ParseUint(strings.TrimSpace(*opt.Value), 10, 32); err == nil && timeout > 300 {
				r.Warnings = append(r.Warnings, fmt.Sprintf("Long timeout value (%ds) may cause the command to hang", timeout))
			}
		}
	}

	return r
}

// validateURL rejects blank and structurally broken URLs. URLs containing
// {{...}} placeholders cannot be judged before substitution and pass.
func validateURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return fmt.Errorf("URL cannot be empty")
	}
	if strings.Contains(raw, "{{") && strings.Contains(raw, "}}") {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme == "" {
		return fmt.Errorf("relative URL without a scheme")
	}
	if u.Host == "" {
		return fmt.Errorf("missing host")
	}
	return nil
}
