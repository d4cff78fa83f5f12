// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// RedactingLogger is the access log used when LOG_REDACT is on. Hotel
// managers and sellers are identified by phone number, and those numbers
// show up in query strings and forwarded headers; this logger scrubs them
// (and email addresses) before anything is written. Bodies are never logged.
package middleware

import (
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

var (
	// UUIDs are matched first so the phone pattern cannot eat their digit
	// groups; they are kept since they only identify catalog rows.
	uuidRE  = regexp.MustCompile(`(?i)\b[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}\b`)
	emailRE = regexp.MustCompile(`(?i)\b[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}\b`)
	// +1234567001, +1 212-555-1212, (212) 555 1212, 2125551212
	phoneRE = regexp.MustCompile(`\+?\(?\d[\d ().\-]{5,}\d`)
	dateRE  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// RedactOptions adds header names whose values are replaced wholesale.
// Authorization, Cookie and Set-Cookie are always masked.
type RedactOptions struct {
	MaskHeaders []string
}

// redactPII masks phone numbers and email addresses in s, leaving UUIDs intact.
func redactPII(s string) string {
	if s == "" {
		return s
	}
	ids := uuidRE.FindAllStringIndex(s, -1)
	if len(ids) == 0 {
		return phoneRE.ReplaceAllStringFunc(emailRE.ReplaceAllString(s, "[REDACTED:email]"), maskPhone)
	}
	var b strings.Builder
	prev := 0
	for _, loc := range ids {
		b.WriteString(redactPII(s[prev:loc[0]]))
		b.WriteString(s[loc[0]:loc[1]])
		prev = loc[1]
	}
	b.WriteString(redactPII(s[prev:]))
	return b.String()
}

// maskPhone masks m unless it is a requirement date or too short to dial.
func maskPhone(m string) string {
	if dateRE.MatchString(m) {
		return m
	}
	digits := 0
	for _, r := range m {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	if digits < 7 {
		return m
	}
	return "[REDACTED:phone]"
}

// RedactingLogger logs each request like Logger, with the query string and
// request headers scrubbed by redactPII and masked headers replaced with
// "[REDACTED]".
func RedactingLogger(opts RedactOptions) gin.HandlerFunc {
	mask := map[string]struct{}{
		"authorization": {},
		"cookie":        {},
		"set-cookie":    {},
	}
	for _, h := range opts.MaskHeaders {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			mask[h] = struct{}{}
		}
	}

	return func(c *gin.Context) {
		start := time.Now()

		headers := make(map[string]string, len(c.Request.Header))
		for k, vv := range c.Request.Header {
			if _, ok := mask[strings.ToLower(k)]; ok {
				headers[k] = "[REDACTED]"
				continue
			}
			headers[k] = redactPII(strings.Join(vv, ", "))
		}

		rid := requestID(c)
		if rid == "" {
			rid = c.GetHeader(requestIDHeader)
		}
		l := log.With().
			Str("request_id", rid).
			Str("method", c.Request.Method).
			Str("path", routePath(c)).
			Logger()
		attachLogger(c, &l)

		c.Next()

		ev := l.Info()
		switch status := c.Writer.Status(); {
		case status >= 500:
			ev = l.Error()
		case status >= 400:
			ev = l.Warn()
		}
		ev.
			Str("query", redactPII(truncate(c.Request.URL.RawQuery, maxQueryLogLength))).
			Int("status", c.Writer.Status()).
			Int("bytes", c.Writer.Size()).
			Dur("latency", time.Since(start)).
			Interface("headers", headers).
			Msg("http_request")
	}
}
