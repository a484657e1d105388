package middleware

import (
	"bytes"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/zstd"

	"backoffice/pkg/logger"
)

// Compress buffers the response and encodes it with zstd when the client
// accepts it and the body is at least minBytes long. Deep shift searches
// return large, repetitive JSON, which zstd shrinks well.
func Compress(minBytes int) (gin.HandlerFunc, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, err
	}

	return func(c *gin.Context) {
		if !acceptsZstd(c.GetHeader("Accept-Encoding")) {
			c.Next()
			return
		}

		w := &bufferedWriter{ResponseWriter: c.Writer}
		c.Writer = w
		// Restored on panic too, so Recovery writes to the client directly.
		defer func() { c.Writer = w.ResponseWriter }()
		c.Next()

		body := w.buf.Bytes()
		if len(body) == 0 {
			w.ResponseWriter.WriteHeaderNow()
			return
		}

		header := w.Header()
		if len(body) >= minBytes && header.Get("Content-Encoding") == "" {
			body = encoder.EncodeAll(body, make([]byte, 0, len(body)/4))
			header.Set("Content-Encoding", "zstd")
		}
		header.Add("Vary", "Accept-Encoding")
		header.Set("Content-Length", strconv.Itoa(len(body)))

		w.ResponseWriter.WriteHeader(w.Status())
		if _, err := w.ResponseWriter.Write(body); err != nil {
			logger.Warn(c.Request.Context(), "write compressed response", "error", err)
		}
	}, nil
}

// acceptsZstd reports whether an Accept-Encoding header lists zstd with a
// non-zero quality.
func acceptsZstd(header string) bool {
	for _, part := range strings.Split(header, ",") {
		name, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		if !strings.EqualFold(strings.TrimSpace(name), "zstd") {
			continue
		}
		key, value, ok := strings.Cut(strings.TrimSpace(params), "=")
		if !ok || strings.TrimSpace(key) != "q" {
			return true
		}
		q, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		return err == nil && q > 0
	}
	return false
}

// bufferedWriter holds the body until the handler chain completes.
type bufferedWriter struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *bufferedWriter) Write(data []byte) (int, error) {
	return w.buf.Write(data)
}

func (w *bufferedWriter) WriteString(s string) (int, error) {
	return w.buf.WriteString(s)
}

func (w *bufferedWriter) Written() bool {
	return w.buf.Len() > 0 || w.ResponseWriter.Written()
}

func (w *bufferedWriter) Size() int {
	return w.buf.Len()
}

func (w *bufferedWriter) WriteHeaderNow() {}

// Flush is a no-op: the body is only known once the chain returns.
func (w *bufferedWriter) Flush() {}

var _ http.Flusher = (*bufferedWriter)(nil)
