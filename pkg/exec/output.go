package exec

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aymanbagabas/go-udiff"
)

// Format selects how a parsed response is rendered.
type Format int

const (
	// FormatRaw reproduces the wire-style status line, headers and body.
	FormatRaw Format = iota
	// FormatFormatted renders a labelled summary with timing and size.
	FormatFormatted
)

// HeaderField is one parsed response header.
type HeaderField struct {
	Key   string
	Value string
}

// Response is the HTTP-shaped view of a curl run. StatusCode is zero when no
// status line was found, which happens without -i or -v.
type Response struct {
	StatusCode    int
	StatusMessage string
	Headers       []HeaderField
	Body          string
	Size          int
	Time          time.Duration
}

// ParseResponse extracts status, headers and body from a run's combined
// output. Headers only appear when curl was asked to include them.
func ParseResponse(res Result) Response {
	output := res.Stdout + res.Stderr

	info := Response{Time: res.Duration}
	info.StatusCode, info.StatusMessage = parseStatus(output)
	info.Headers, info.Body = parseHeadersAndBody(output)
	info.Size = len(info.Body)
	return info
}

func parseStatus(output string) (int, string) {
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		if !strings.HasPrefix(line, "HTTP/") {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) < 3 {
			continue
		}
		code, err := strconv.Atoi(parts[1])
		if err != nil {
			continue
		}
		return code, strings.Join(parts[2:], " ")
	}
	return 0, ""
}

func parseHeadersAndBody(output string) ([]HeaderField, string) {
	var (
		headers []HeaderField
		body    strings.Builder
		inBody  bool
	)
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		switch {
		case inBody:
			body.WriteString(line)
			body.WriteByte('\n')
		case line == "":
			inBody = true
		case strings.HasPrefix(line, "HTTP/"):
			// Status line handled separately.
		default:
			key, value, ok := strings.Cut(line, ":")
			if ok {
				headers = append(headers, HeaderField{
					Key:   strings.TrimSpace(key),
					Value: strings.TrimSpace(value),
				})
			}
		}
	}
	return headers, strings.TrimSpace(body.String())
}

// FormatResponse renders info in the requested format.
func FormatResponse(info Response, format Format) string {
	if format == FormatRaw {
		return formatRaw(info)
	}
	return formatFormatted(info)
}

func formatRaw(info Response) string {
	var b strings.Builder
	if info.StatusCode != 0 {
		fmt.Fprintf(&b, "HTTP/1.1 %d %s\n", info.StatusCode, info.StatusMessage)
	}
	for _, h := range info.Headers {
		fmt.Fprintf(&b, "%s: %s\n", h.Key, h.Value)
	}
	b.WriteByte('\n')
	b.WriteString(info.Body)
	return b.String()
}

func formatFormatted(info Response) string {
	var b strings.Builder
	if info.StatusCode != 0 {
		fmt.Fprintf(&b, "Status: %d %s\n", info.StatusCode, info.StatusMessage)
	}
	fmt.Fprintf(&b, "Time: %dms\n", info.Time.Milliseconds())
	fmt.Fprintf(&b, "Size: %s\n\n", FormatSize(info.Size))
	b.WriteString("Headers:\n")
	for _, h := range info.Headers {
		fmt.Fprintf(&b, "  %s: %s\n", h.Key, h.Value)
	}
	b.WriteString("\nBody:\n")
	b.WriteString(info.Body)
	return b.String()
}

// FormatSize renders a byte count with a binary unit, one decimal above B.
func FormatSize(size int) string {
	switch {
	case size < 1024:
		return fmt.Sprintf("%d B", size)
	case size < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(size)/1024)
	case size < 1024*1024*1024:
		return fmt.Sprintf("%.1f MB", float64(size)/(1024*1024))
	default:
		return fmt.Sprintf("%.1f GB", float64(size)/(1024*1024*1024))
	}
}

// Diff returns a unified diff between two runs' outputs, or an empty string
// when they match.
func Diff(previous, current string) string {
	if previous == current {
		return ""
	}
	return udiff.Unified("previous", "current", previous, current)
}

// curl's documented exit codes, the ones worth translating for the footer.
var curlExitMessages = map[int]string{
	1:  "unsupported protocol",
	3:  "malformed URL",
	5:  "could not resolve proxy",
	6:  "could not resolve host",
	7:  "failed to connect to host",
	22: "HTTP page not retrieved (server error with --fail)",
	28: "operation timed out",
	35: "SSL connect error",
	47: "too many redirects",
	52: "empty reply from server",
	56: "failure receiving network data",
	60: "SSL certificate could not be verified",
}

// Describe summarizes a run's outcome in one line.
func Describe(res Result) string {
	switch {
	case res.Err != nil:
		return fmt.Sprintf("Error: %v", res.Err)
	case res.ExitCode == nil:
		return "Command terminated by signal"
	case *res.ExitCode == 0:
		return fmt.Sprintf("Success (%dms)", res.Duration.Milliseconds())
	default:
		if msg, ok := curlExitMessages[*res.ExitCode]; ok {
			return fmt.Sprintf("curl exited with code %d: %s", *res.ExitCode, msg)
		}
		return fmt.Sprintf("curl exited with code %d", *res.ExitCode)
	}
}
