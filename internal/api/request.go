package api

import (
	"net/http"
	"net/url"
	"strings"
)

// Method selects the HTTP verb of a request.
type Method int

// Supported methods. The zero value is GET.
const (
	MethodGet Method = iota
	MethodPost
	MethodPut
	MethodDelete
)

// String returns the HTTP verb. Values outside the known set map to GET.
func (m Method) String() string {
	switch m {
	case MethodPost:
		return http.MethodPost
	case MethodPut:
		return http.MethodPut
	case MethodDelete:
		return http.MethodDelete
	default:
		return http.MethodGet
	}
}

// Param is one query parameter. Values are always strings on the wire.
type Param struct {
	Key   string
	Value string
}

// Params is an ordered list of query parameters. Duplicates are kept.
type Params []Param

// Add appends a parameter.
func (p *Params) Add(key, value string) {
	*p = append(*p, Param{Key: key, Value: value})
}

// AddOptional appends a parameter only when value is not empty.
func (p *Params) AddOptional(key, value string) {
	if value != "" {
		p.Add(key, value)
	}
}

// Encode renders the parameters as a query string in insertion order.
func (p Params) Encode() string {
	if len(p) == 0 {
		return ""
	}
	var b strings.Builder
	for i, param := range p {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(param.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(param.Value))
	}
	return b.String()
}

// Request describes one logical HTTP call.
type Request struct {
	Method Method
	// Path is relative to the surface prefix, without a leading slash.
	Path  string
	Query Params
	// Body is encoded as JSON. It is omitted when it encodes to {} or null.
	Body any
	// Internal routes the request to the internal host without a prefix.
	Internal bool
}
