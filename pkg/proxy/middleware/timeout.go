package middleware

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"quillhq/scribe/pkg/proxy"
)

// timeoutWriter buffers the handler's response so the deadline path and a
// handler that outlives it never touch the underlying ResponseWriter
// concurrently. The buffer is flushed only when the handler finishes
// before the deadline; a late handler keeps writing here and the bytes
// are discarded.
type timeoutWriter struct {
	header      http.Header
	buf         bytes.Buffer
	status      int
	wroteHeader bool
}

func newTimeoutWriter() *timeoutWriter {
	return &timeoutWriter{header: make(http.Header), status: http.StatusOK}
}

func (tw *timeoutWriter) Header() http.Header { return tw.header }

func (tw *timeoutWriter) WriteHeader(status int) {
	if tw.wroteHeader {
		return
	}
	tw.wroteHeader = true
	tw.status = status
}

func (tw *timeoutWriter) Write(p []byte) (int, error) {
	tw.WriteHeader(http.StatusOK)
	return tw.buf.Write(p)
}

func (tw *timeoutWriter) flush(w http.ResponseWriter) {
	dst := w.Header()
	for key, values := range tw.header {
		dst[key] = values
	}
	w.WriteHeader(tw.status)
	w.Write(tw.buf.Bytes())
}

// Timeout bounds the whole request pipeline, including the upstream
// call, with context.WithTimeout. The provider's own timeout normally
// fires first and surfaces as a classified error; this is the backstop
// for anything else that stalls. A handler panic is re-raised on the
// request goroutine so the recovery middleware can handle it.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			tw := newTimeoutWriter()
			done := make(chan struct{})
			panicChan := make(chan any, 1)
			go func() {
				defer func() {
					if p := recover(); p != nil {
						panicChan <- p
					}
				}()
				next.ServeHTTP(tw, r.WithContext(ctx))
				close(done)
			}()

			select {
			case p := <-panicChan:
				panic(p)
			case <-done:
				tw.flush(w)
			case <-ctx.Done():
				if ctx.Err() == context.DeadlineExceeded {
					proxy.WriteError(w, http.StatusServiceUnavailable, proxy.MsgUnavailable)
				}
			}
		})
	}
}
