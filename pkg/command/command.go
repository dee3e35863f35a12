// Package command holds the curl command model and the pure functions that
// operate on it: the option catalog, the command string builder with
// environment variable substitution, the structural validator, and the
// shell-style argument splitter. Nothing in this package performs I/O.
package command

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Method is an HTTP request method.
type Method string

const (
	MethodGet     Method = "GET"
	MethodPost    Method = "POST"
	MethodPut     Method = "PUT"
	MethodDelete  Method = "DELETE"
	MethodPatch   Method = "PATCH"
	MethodHead    Method = "HEAD"
	MethodOptions Method = "OPTIONS"
	MethodTrace   Method = "TRACE"
	MethodConnect Method = "CONNECT"
)

// SelectableMethods is the fixed list offered by the method dropdown,
// in display order.
var SelectableMethods = []Method{
	MethodGet, MethodPost, MethodPut, MethodDelete,
	MethodPatch, MethodHead, MethodOptions,
}

// ParseMethod matches text case-insensitively against the selectable
// methods. Unknown text falls back to GET.
func ParseMethod(s string) Method {
	upper := Method(strings.ToUpper(strings.TrimSpace(s)))
	for _, m := range SelectableMethods {
		if m == upper {
			return m
		}
	}
	return MethodGet
}

// Header is a single request header entry.
type Header struct {
	ID      string `yaml:"id"`
	Key     string `yaml:"key"`
	Value   string `yaml:"value"`
	Enabled bool   `yaml:"enabled"`
}

// QueryParam is a single query string entry.
type QueryParam struct {
	ID      string `yaml:"id"`
	Key     string `yaml:"key"`
	Value   string `yaml:"value"`
	Enabled bool   `yaml:"enabled"`
}

// FormDataItem is one key/value pair of a multipart form body.
type FormDataItem struct {
	ID      string `yaml:"id"`
	Key     string `yaml:"key"`
	Value   string `yaml:"value"`
	Enabled bool   `yaml:"enabled"`
}

// BodyKind tags the request body variant.
type BodyKind string

const (
	BodyNone   BodyKind = "none"
	BodyRaw    BodyKind = "raw"
	BodyForm   BodyKind = "form"
	BodyBinary BodyKind = "binary"
)

// Body is the tagged request body. A nil *Body on CurlCommand means no body
// has been set at all; BodyNone means the user explicitly cleared it.
type Body struct {
	Kind BodyKind       `yaml:"kind"`
	Raw  string         `yaml:"raw,omitempty"`
	Form []FormDataItem `yaml:"form,omitempty"`
	Path string         `yaml:"path,omitempty"`
}

// RawBody builds a raw text body.
func RawBody(content string) *Body {
	return &Body{Kind: BodyRaw, Raw: content}
}

// FormBody builds a multipart form body.
func FormBody(items []FormDataItem) *Body {
	return &Body{Kind: BodyForm, Form: items}
}

// BinaryBody builds a body read from a file at execution time.
func BinaryBody(path string) *Body {
	return &Body{Kind: BodyBinary, Path: path}
}

func (b *Body) clone() *Body {
	if b == nil {
		return nil
	}
	c := *b
	c.Form = append([]FormDataItem(nil), b.Form...)
	return &c
}

// CurlOption is a curl flag attached to the command, with its value when the
// catalog says the flag takes one. Disabled options are kept so the user can
// re-toggle them; the builder skips them.
type CurlOption struct {
	ID      string  `yaml:"id"`
	Flag    string  `yaml:"flag"`
	Value   *string `yaml:"value,omitempty"`
	Enabled bool    `yaml:"enabled"`
}

// CurlCommand is one request under construction.
type CurlCommand struct {
	ID          string       `yaml:"id"`
	Name        string       `yaml:"name"`
	Description string       `yaml:"description,omitempty"`
	URL         string       `yaml:"url"`
	Method      Method       `yaml:"method"`
	Headers     []Header     `yaml:"headers,omitempty"`
	QueryParams []QueryParam `yaml:"query_params,omitempty"`
	Body        *Body        `yaml:"body,omitempty"`
	Options     []CurlOption `yaml:"options,omitempty"`
	CreatedAt   time.Time    `yaml:"created_at"`
	UpdatedAt   time.Time    `yaml:"updated_at"`
}

// New creates a command with the given URL and defaults everywhere else.
func New(url string) *CurlCommand {
	now := time.Now().UTC()
	return &CurlCommand{
		ID:        uuid.NewString(),
		Name:      "New Command",
		URL:       url,
		Method:    MethodGet,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Clone returns a deep copy. Templates own snapshots, so loading one must
// never alias the live command's slices.
func (c *CurlCommand) Clone() *CurlCommand {
	d := *c
	d.Headers = append([]Header(nil), c.Headers...)
	d.QueryParams = append([]QueryParam(nil), c.QueryParams...)
	d.Options = append([]CurlOption(nil), c.Options...)
	d.Body = c.Body.clone()
	return &d
}

func (c *CurlCommand) touch() {
	c.UpdatedAt = time.Now().UTC()
}

// AddHeader appends a new enabled header with a fresh id.
func (c *CurlCommand) AddHeader(key, value string) {
	c.Headers = append(c.Headers, Header{
		ID: uuid.NewString(), Key: key, Value: value, Enabled: true,
	})
	c.touch()
}

// AddQueryParam appends a new enabled query parameter with a fresh id.
func (c *CurlCommand) AddQueryParam(key, value string) {
	c.QueryParams = append(c.QueryParams, QueryParam{
		ID: uuid.NewString(), Key: key, Value: value, Enabled: true,
	})
	c.touch()
}

// AddOption appends a new enabled option with a fresh id. Pass a nil value
// for flags that take none.
func (c *CurlCommand) AddOption(flag string, value *string) {
	c.Options = append(c.Options, CurlOption{
		ID: uuid.NewString(), Flag: flag, Value: value, Enabled: true,
	})
	c.touch()
}

// HasOption reports whether a flag is already attached, enabled or not.
func (c *CurlCommand) HasOption(flag string) bool {
	for _, o := range c.Options {
		if o.Flag == flag {
			return true
		}
	}
	return false
}

// SetMethod sets the HTTP method.
func (c *CurlCommand) SetMethod(m Method) {
	c.Method = m
	c.touch()
}

// SetBody replaces the request body.
func (c *CurlCommand) SetBody(b *Body) {
	c.Body = b
	c.touch()
}

// RemoveHeader removes the header at i, keeping the relative order of the
// survivors. Out-of-range indices are a no-op.
func (c *CurlCommand) RemoveHeader(i int) bool {
	if i < 0 || i >= len(c.Headers) {
		return false
	}
	c.Headers = append(c.Headers[:i], c.Headers[i+1:]...)
	c.touch()
	return true
}

// RemoveQueryParam removes the query parameter at i.
func (c *CurlCommand) RemoveQueryParam(i int) bool {
	if i < 0 || i >= len(c.QueryParams) {
		return false
	}
	c.QueryParams = append(c.QueryParams[:i], c.QueryParams[i+1:]...)
	c.touch()
	return true
}

// RemoveOption removes the attached option at i.
func (c *CurlCommand) RemoveOption(i int) bool {
	if i < 0 || i >= len(c.Options) {
		return false
	}
	c.Options = append(c.Options[:i], c.Options[i+1:]...)
	c.touch()
	return true
}

// ToggleHeader flips the enabled flag of the header at i.
func (c *CurlCommand) ToggleHeader(i int) bool {
	if i < 0 || i >= len(c.Headers) {
		return false
	}
	c.Headers[i].Enabled = !c.Headers[i].Enabled
	c.touch()
	return true
}

// ToggleQueryParam flips the enabled flag of the query parameter at i.
func (c *CurlCommand) ToggleQueryParam(i int) bool {
	if i < 0 || i >= len(c.QueryParams) {
		return false
	}
	c.QueryParams[i].Enabled = !c.QueryParams[i].Enabled
	c.touch()
	return true
}

// ToggleOption flips the enabled flag of the attached option at i.
func (c *CurlCommand) ToggleOption(i int) bool {
	if i < 0 || i >= len(c.Options) {
		return false
	}
	c.Options[i].Enabled = !c.Options[i].Enabled
	c.touch()
	return true
}
