package command

import (
	"net/url"
	"regexp"
	"strings"
)

// maxLineLength is the display width the built command wraps at.
const maxLineLength = 80

// varPattern matches {{name}} and {{name:default}}. The default may be
// empty; a name may not contain ':' or '}'.
var varPattern = regexp.MustCompile(`\{\{([^:}]+)(?::([^}]*))?\}\}`)

// Substitute replaces {{name}} and {{name:default}} placeholders using env.
// Resolution order: first matching variable, then the default, then the
// placeholder text itself. A single left-to-right pass; substituted values
// are never re-scanned, so a value containing "{{" passes through literally.
func Substitute(input string, env *Environment) string {
	matches := varPattern.FindAllStringSubmatchIndex(input, -1)
	if len(matches) == 0 {
		return input
	}
	var b strings.Builder
	last := 0
	for _, m := range matches {
		b.WriteString(input[last:m[0]])
		name := input[m[2]:m[3]]
		if v, ok := env.Lookup(name); ok {
			b.WriteString(v)
		} else if m[4] >= 0 {
			b.WriteString(input[m[4]:m[5]])
		} else {
			b.WriteString(input[m[0]:m[1]])
		}
		last = m[1]
	}
	b.WriteString(input[last:])
	return b.String()
}

// Build renders cmd as a display-ready curl command string. Argument order
// is fixed: curl, enabled options, -X for non-GET methods, -H headers, the
// body, then the URL with its query string. env may be nil.
func Build(cmd *CurlCommand, env *Environment) string {
	args := []string{"curl"}

	for _, opt := range cmd.Options {
		if !opt.Enabled {
			continue
		}
		args = append(args, opt.Flag)
		if opt.Value != nil {
			args = append(args, Substitute(*opt.Value, env))
		}
	}

	if cmd.Method != "" && cmd.Method != MethodGet {
		args = append(args, "-X", string(cmd.Method))
	}

	for _, h := range cmd.Headers {
		if h.Enabled {
			args = append(args, "-H", h.Key+": "+Substitute(h.Value, env))
		}
	}

	args = append(args, bodyArgs(cmd.Body, env)...)
	args = append(args, buildURL(cmd, env))

	return FormatArgs(args)
}

func bodyArgs(body *Body, env *Environment) []string {
	if body == nil {
		return nil
	}
	switch body.Kind {
	case BodyRaw:
		if strings.TrimSpace(body.Raw) == "" {
			return nil
		}
		return []string{"-d", Substitute(body.Raw, env)}
	case BodyForm:
		var args []string
		for _, item := range body.Form {
			if item.Enabled {
				args = append(args, "-F", item.Key+"="+Substitute(item.Value, env))
			}
		}
		return args
	case BodyBinary:
		return []string{"--data-binary", "@" + body.Path}
	}
	return nil
}

// buildURL appends the enabled query parameters to the substituted URL.
// Values are percent-encoded after substitution; keys are emitted as-is.
func buildURL(cmd *CurlCommand, env *Environment) string {
	base := Substitute(cmd.URL, env)

	var pairs []string
	for _, p := range cmd.QueryParams {
		if p.Enabled {
			pairs = append(pairs, p.Key+"="+encodeQueryValue(Substitute(p.Value, env)))
		}
	}
	if len(pairs) == 0 {
		return base
	}

	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + strings.Join(pairs, "&")
}

// encodeQueryValue percent-encodes a query value, with spaces as %20.
func encodeQueryValue(v string) string {
	return strings.ReplaceAll(url.QueryEscape(v), "+", "%20")
}

// FormatArgs joins args into the display string, double-quoting any argument
// containing whitespace and wrapping lines near maxLineLength with a
// backslash and a six-space continuation indent.
func FormatArgs(args []string) string {
	var b strings.Builder
	lineLen := 0
	for i, arg := range args {
		if i > 0 && lineLen+len(arg) > maxLineLength {
			b.WriteString(" \\\n      ")
			lineLen = 6
		}
		if i > 0 {
			b.WriteByte(' ')
			lineLen++
		}
		if needsQuoting(arg) {
			b.WriteByte('"')
			b.WriteString(arg)
			b.WriteByte('"')
			lineLen += len(arg) + 2
		} else {
			b.WriteString(arg)
			lineLen += len(arg)
		}
	}
	return b.String()
}

func needsQuoting(arg string) bool {
	if strings.HasPrefix(arg, `"`) || strings.HasPrefix(arg, "'") {
		return false
	}
	return strings.ContainsAny(arg, " \t\n")
}
