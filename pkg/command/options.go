package command

import (
	"sort"
	"sync"

	"github.com/google/uuid"
)

// OptionCategory groups catalog entries for display.
type OptionCategory string

const (
	CategoryBasic          OptionCategory = "Basic Options"
	CategoryRequest        OptionCategory = "Request Options"
	CategoryAuthentication OptionCategory = "Authentication Options"
	CategoryConnection     OptionCategory = "Connection Options"
	CategoryHeader         OptionCategory = "Header Options"
	CategorySSL            OptionCategory = "SSL/TLS Options"
	CategoryProxy          OptionCategory = "Proxy Options"
	CategoryOutput         OptionCategory = "Output Options"
	CategoryCommandLine    OptionCategory = "Command Line Options"
)

// OptionTier ranks catalog entries by how commonly they are reached for.
type OptionTier int

const (
	TierBasic OptionTier = iota
	TierAdvanced
	TierExpert
)

func (t OptionTier) String() string {
	switch t {
	case TierBasic:
		return "Basic"
	case TierAdvanced:
		return "Advanced"
	case TierExpert:
		return "Expert"
	}
	return "Unknown"
}

// OptionDefinition describes one curl flag the UI can attach.
type OptionDefinition struct {
	Flag        string
	LongFlag    string
	Description string
	TakesValue  bool
	Category    OptionCategory
	Tier        OptionTier
}

// Catalog is the fixed set of supported curl flags, keyed by short flag.
type Catalog struct {
	byFlag map[string]OptionDefinition
}

var (
	catalogOnce sync.Once
	catalog     *Catalog
)

// Options returns the shared catalog. The catalog is immutable after
// construction, so the singleton is safe to share.
func Options() *Catalog {
	catalogOnce.Do(func() {
		byFlag := make(map[string]OptionDefinition, len(definitions))
		for _, def := range definitions {
			byFlag[def.Flag] = def
		}
		catalog = &Catalog{byFlag: byFlag}
	})
	return catalog
}

// Lookup returns the definition for a flag.
func (c *Catalog) Lookup(flag string) (OptionDefinition, bool) {
	def, ok := c.byFlag[flag]
	return def, ok
}

// TakesValue reports whether the flag takes a value. Unknown flags report
// false.
func (c *Catalog) TakesValue(flag string) bool {
	def, ok := c.byFlag[flag]
	return ok && def.TakesValue
}

func sortDefs(defs []OptionDefinition) []OptionDefinition {
	sort.Slice(defs, func(i, j int) bool { return defs[i].Flag < defs[j].Flag })
	return defs
}

// ByCategory returns the definitions in a category, sorted by flag.
func (c *Catalog) ByCategory(cat OptionCategory) []OptionDefinition {
	var out []OptionDefinition
	for _, def := range c.byFlag {
		if def.Category == cat {
			out = append(out, def)
		}
	}
	return sortDefs(out)
}

// ByTier returns the definitions in a tier, sorted by flag.
func (c *Catalog) ByTier(tier OptionTier) []OptionDefinition {
	var out []OptionDefinition
	for _, def := range c.byFlag {
		if def.Tier == tier {
			out = append(out, def)
		}
	}
	return sortDefs(out)
}

// ByCategoryAndTier returns the definitions matching both, sorted by flag.
func (c *Catalog) ByCategoryAndTier(cat OptionCategory, tier OptionTier) []OptionDefinition {
	var out []OptionDefinition
	for _, def := range c.byFlag {
		if def.Category == cat && def.Tier == tier {
			out = append(out, def)
		}
	}
	return sortDefs(out)
}

// NewOption instantiates an attachable option from the catalog. Flags that
// take a value start with an empty one. Unknown flags return false.
func (c *Catalog) NewOption(flag string) (CurlOption, bool) {
	def, ok := c.byFlag[flag]
	if !ok {
		return CurlOption{}, false
	}
	opt := CurlOption{ID: uuid.NewString(), Flag: def.Flag, Enabled: true}
	if def.TakesValue {
		empty := ""
		opt.Value = &empty
	}
	return opt, true
}

var definitions = []OptionDefinition{
	// Basic
	{Flag: "-#", LongFlag: "--progress-bar", Description: "Display transfer progress as a bar", Category: CategoryBasic, Tier: TierBasic},
	{Flag: "-L", LongFlag: "--location", Description: "Follow redirects", Category: CategoryBasic, Tier: TierBasic},
	{Flag: "-f", LongFlag: "--fail", Description: "Fail silently on server errors", Category: CategoryBasic, Tier: TierBasic},

	// Request
	{Flag: "-X", LongFlag: "--request", Description: "HTTP method to use", TakesValue: true, Category: CategoryRequest, Tier: TierBasic},
	{Flag: "-d", LongFlag: "--data", Description: "HTTP POST data", TakesValue: true, Category: CategoryRequest, Tier: TierBasic},
	{Flag: "--data-binary", Description: "HTTP POST binary data", TakesValue: true, Category: CategoryRequest, Tier: TierAdvanced},
	{Flag: "--data-urlencode", Description: "HTTP POST data url encoded", TakesValue: true, Category: CategoryRequest, Tier: TierAdvanced},
	{Flag: "-F", LongFlag: "--form", Description: "Specify multipart MIME data", TakesValue: true, Category: CategoryRequest, Tier: TierAdvanced},

	// Authentication
	{Flag: "-u", LongFlag: "--user", Description: "Server user and password", TakesValue: true, Category: CategoryAuthentication, Tier: TierBasic},
	{Flag: "--basic", Description: "Use HTTP Basic Authentication", Category: CategoryAuthentication, Tier: TierBasic},
	{Flag: "--digest", Description: "Use HTTP Digest Authentication", Category: CategoryAuthentication, Tier: TierAdvanced},
	{Flag: "--ntlm", Description: "Use HTTP NTLM authentication", Category: CategoryAuthentication, Tier: TierAdvanced},
	{Flag: "--oauth2-bearer", Description: "OAuth 2 Bearer Token", TakesValue: true, Category: CategoryAuthentication, Tier: TierBasic},

	// Connection
	{Flag: "-k", LongFlag: "--insecure", Description: "Allow insecure server connections", Category: CategoryConnection, Tier: TierBasic},
	{Flag: "--connect-timeout", Description: "Maximum time allowed for connection", TakesValue: true, Category: CategoryConnection, Tier: TierBasic},
	{Flag: "--max-time", LongFlag: "-m", Description: "Maximum time allowed for the transfer", TakesValue: true, Category: CategoryConnection, Tier: TierBasic},
	{Flag: "-4", LongFlag: "--ipv4", Description: "Resolve names to IPv4 addresses", Category: CategoryConnection, Tier: TierAdvanced},
	{Flag: "-6", LongFlag: "--ipv6", Description: "Resolve names to IPv6 addresses", Category: CategoryConnection, Tier: TierAdvanced},

	// Header
	{Flag: "-H", LongFlag: "--header", Description: "Pass custom header(s) to server", TakesValue: true, Category: CategoryHeader, Tier: TierBasic},
	{Flag: "-A", LongFlag: "--user-agent", Description: "Send User-Agent to server", TakesValue: true, Category: CategoryHeader, Tier: TierBasic},
	{Flag: "-e", LongFlag: "--referer", Description: "Referer URL", TakesValue: true, Category: CategoryHeader, Tier: TierBasic},
	{Flag: "-b", LongFlag: "--cookie", Description: "Send cookies from string/file", TakesValue: true, Category: CategoryHeader, Tier: TierBasic},
	{Flag: "-c", LongFlag: "--cookie-jar", Description: "Write cookies to file after operation", TakesValue: true, Category: CategoryHeader, Tier: TierAdvanced},

	// SSL/TLS
	{Flag: "--cacert", Description: "CA certificate to verify peer against", TakesValue: true, Category: CategorySSL, Tier: TierAdvanced},
	{Flag: "--cert", Description: "Client certificate file", TakesValue: true, Category: CategorySSL, Tier: TierAdvanced},
	{Flag: "--key", Description: "Private key file name", TakesValue: true, Category: CategorySSL, Tier: TierAdvanced},
	{Flag: "--ciphers", Description: "SSL ciphers to use", TakesValue: true, Category: CategorySSL, Tier: TierExpert},
	{Flag: "--tls-max", Description: "Set maximum allowed TLS version", TakesValue: true, Category: CategorySSL, Tier: TierExpert},

	// Proxy
	{Flag: "-x", LongFlag: "--proxy", Description: "Use proxy", TakesValue: true, Category: CategoryProxy, Tier: TierBasic},
	{Flag: "--proxy-basic", Description: "Use Basic authentication on the proxy", Category: CategoryProxy, Tier: TierAdvanced},
	{Flag: "--proxy-digest", Description: "Use Digest authentication on the proxy", Category: CategoryProxy, Tier: TierAdvanced},
	{Flag: "--noproxy", Description: "List of hosts which do not use proxy", TakesValue: true, Category: CategoryProxy, Tier: TierAdvanced},
	{Flag: "-p", LongFlag: "--proxytunnel", Description: "Operate through an HTTP proxy tunnel (using CONNECT)", Category: CategoryProxy, Tier: TierAdvanced},

	// Output
	{Flag: "-o", LongFlag: "--output", Description: "Write to file instead of stdout", TakesValue: true, Category: CategoryOutput, Tier: TierBasic},
	{Flag: "-O", LongFlag: "--remote-name", Description: "Write output to a file named as the remote file", Category: CategoryOutput, Tier: TierBasic},
	{Flag: "-J", LongFlag: "--remote-header-name", Description: "Use the header-provided filename", Category: CategoryOutput, Tier: TierAdvanced},
	{Flag: "--create-dirs", Description: "Create necessary local directory hierarchy", Category: CategoryOutput, Tier: TierAdvanced},
	{Flag: "-w", LongFlag: "--write-out", Description: "Use output FORMAT after completion", TakesValue: true, Category: CategoryOutput, Tier: TierAdvanced},

	// Command line
	{Flag: "-v", LongFlag: "--verbose", Description: "Make the operation more talkative", Category: CategoryCommandLine, Tier: TierBasic},
	{Flag: "-s", LongFlag: "--silent", Description: "Silent mode", Category: CategoryCommandLine, Tier: TierBasic},
	{Flag: "-S", LongFlag: "--show-error", Description: "Show error even when silent", Category: CategoryCommandLine, Tier: TierBasic},
	{Flag: "-i", LongFlag: "--include", Description: "Include protocol response headers in the output", Category: CategoryCommandLine, Tier: TierBasic},
	{Flag: "-I", LongFlag: "--head", Description: "Show document info only", Category: CategoryCommandLine, Tier: TierBasic},
	{Flag: "-q", LongFlag: "--disable", Description: "Disable .curlrc", Category: CategoryCommandLine, Tier: TierBasic},
	{Flag: "-V", LongFlag: "--version", Description: "Show version number and quit", Category: CategoryCommandLine, Tier: TierBasic},
	{Flag: "-h", LongFlag: "--help", Description: "Show help text", Category: CategoryCommandLine, Tier: TierBasic},
	{Flag: "--trace", Description: "Write a debug trace to FILE", TakesValue: true, Category: CategoryCommandLine, Tier: TierBasic},
	{Flag: "--trace-ascii", Description: "Like --trace, but without hex output", TakesValue: true, Category: CategoryCommandLine, Tier: TierBasic},
	{Flag: "--trace-time", Description: "Add time stamps to trace/verbose output", Category: CategoryCommandLine, Tier: TierBasic},
	{Flag: "-K", LongFlag: "--config", Description: "Read config from a file", TakesValue: true, Category: CategoryCommandLine, Tier: TierBasic},
}
