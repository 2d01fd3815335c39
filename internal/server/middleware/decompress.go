package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// gzipReadCloser закрывает и gzip reader, и исходное тело
type gzipReadCloser struct {
	*gzip.Reader
	body io.ReadCloser
}

func (g *gzipReadCloser) Close() error {
	gzErr := g.Reader.Close()
	if err := g.body.Close(); err != nil {
		return err
	}
	return gzErr
}

// DecompressMiddleware распаковывает тела запросов с Content-Encoding: gzip.
// Размер распакованного тела ограничивается обработчиками через http.MaxBytesReader.
func DecompressMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			encoding := strings.TrimSpace(strings.ToLower(r.Header.Get("Content-Encoding")))

			switch encoding {
			case "", "identity":
				next.ServeHTTP(w, r)
				return
			case "gzip":
			default:
				writeJSONError(w, "unsupported content encoding", http.StatusUnsupportedMediaType)
				return
			}

			zr, err := gzip.NewReader(r.Body)
			if err != nil {
				logger.WarnContext(r.Context(), "Invalid gzip request body",
					"error", err,
					"request_id", RequestIDFromContext(r.Context()),
				)
				writeJSONError(w, "invalid gzip body", http.StatusBadRequest)
				return
			}

			r.Body = &gzipReadCloser{Reader: zr, body: r.Body}
			r.Header.Del("Content-Encoding")
			r.Header.Del("Content-Length")
			r.ContentLength = -1

			next.ServeHTTP(w, r)
		})
	}
}
