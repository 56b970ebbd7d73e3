package listing

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// LinkBuilder produces absolute next/prev URLs for the request being served.
type LinkBuilder struct {
	Scheme string
	Host   string
	Path   string
}

// NewLinkBuilder derives scheme, host and path from r. The scheme comes from
// X-Forwarded-Proto when a proxy sets it, otherwise from the connection, and
// is forced to https in production.
func NewLinkBuilder(r *http.Request, forceHTTPS bool) LinkBuilder {
	return LinkBuilder{
		Scheme: requestScheme(r, forceHTTPS),
		Host:   r.Host,
		Path:   r.URL.Path,
	}
}

func requestScheme(r *http.Request, forceHTTPS bool) string {
	if forceHTTPS {
		return "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		if idx := strings.IndexByte(proto, ','); idx >= 0 {
			proto = proto[:idx]
		}
		if proto = strings.TrimSpace(proto); proto != "" {
			return proto
		}
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}

// Page builds the URL of the given page, appending each non-empty filter
// value in params order.
func (b LinkBuilder) Page(page int, params []string, values Values) string {
	var sb strings.Builder
	sb.WriteString(b.Scheme)
	sb.WriteString("://")
	sb.WriteString(b.Host)
	sb.WriteString(b.Path)
	sb.WriteString("?page=")
	sb.WriteString(strconv.Itoa(page))

	for _, param := range params {
		value := values.Get(param)
		if value == "" {
			continue
		}
		sb.WriteByte('&')
		sb.WriteString(param)
		sb.WriteByte('=')
		sb.WriteString(escapeComponent(value))
	}
	return sb.String()
}

// componentUnescapes undoes what url.QueryEscape does beyond
// encodeURIComponent: spaces become %20 and !'()* stay literal.
var componentUnescapes = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// escapeComponent escapes a query value the way encodeURIComponent does.
func escapeComponent(value string) string {
	return componentUnescapes.Replace(url.QueryEscape(value))
}
