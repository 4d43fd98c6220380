package middleware

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// BodyLimit caps request body sizes. Audio uploads to POST .../transcribe get
// uploadLimit; everything else gets defaultLimit. Limits are human-readable
// strings such as "1M" or "25M" (K, M, and G suffixes; a bare number is
// bytes).
func BodyLimit(defaultLimit string, uploadLimit string) echo.MiddlewareFunc {
	defaultBytes := parseLimit(defaultLimit)
	uploadBytes := parseLimit(uploadLimit)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if req.Body == nil || req.Body == http.NoBody {
				return next(c)
			}

			limit := defaultBytes
			if req.Method == http.MethodPost && strings.HasSuffix(req.URL.Path, "/transcribe") {
				limit = uploadBytes
			}

			if req.ContentLength > limit {
				return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "request body too large")
			}

			// Content-Length can be absent or wrong, so the body reader
			// enforces the limit too.
			req.Body = &cappedBody{inner: req.Body, left: limit}

			return next(c)
		}
	}
}

// cappedBody fails reads once more than the allowed bytes have been consumed.
type cappedBody struct {
	inner    io.ReadCloser
	left     int64
	overflow bool
}

func (b *cappedBody) Read(p []byte) (int, error) {
	if b.overflow {
		return 0, echo.NewHTTPError(http.StatusRequestEntityTooLarge, "request body too large")
	}

	// Read one byte past the remaining allowance to detect overflow.
	if max := b.left + 1; int64(len(p)) > max {
		p = p[:max]
	}

	n, err := b.inner.Read(p)
	b.left -= int64(n)
	if b.left < 0 {
		b.overflow = true
		return 0, echo.NewHTTPError(http.StatusRequestEntityTooLarge, "request body too large")
	}
	return n, err
}

func (b *cappedBody) Close() error {
	return b.inner.Close()
}

// parseLimit converts a size string like "1M" or "512K" to bytes. Anything
// unparseable falls back to 1 MB.
func parseLimit(s string) int64 {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return 1 << 20
	}

	var unit int64 = 1
	switch {
	case strings.HasSuffix(s, "G") || strings.HasSuffix(s, "GB"):
		unit = 1 << 30
		s = strings.TrimRight(s, "GB")
	case strings.HasSuffix(s, "M") || strings.HasSuffix(s, "MB"):
		unit = 1 << 20
		s = strings.TrimRight(s, "MB")
	case strings.HasSuffix(s, "K") || strings.HasSuffix(s, "KB"):
		unit = 1 << 10
		s = strings.TrimRight(s, "KB")
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 1 << 20
	}
	return n * unit
}
