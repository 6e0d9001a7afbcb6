package middleware

import (
	"net/http"

	"github.com/nesteban/oops/pkg/faults"
	"github.com/nesteban/oops/pkg/telemetry/metrics"
)

// RecoveryMiddleware converts panics escaping handler code into calls to the
// fault interceptor. It wraps the application handler directly, inside the
// logging middleware, so that the completion log line can surface the fault
// capture it leaves in the request context.
//
// Example usage:
//
//	handler = RecoveryMiddleware(interceptor, m)(handler)
func RecoveryMiddleware(interceptor *faults.Interceptor, m *metrics.FaultMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := newResponseWriter(w)
			r = r.WithContext(faults.WithHolder(r.Context()))

			defer func() {
				v := recover()
				if v == nil {
					return
				}
				err := faults.Recovered(v)

				if m != nil {
					m.FaultIntercepted(faults.Classify(err))
				}

				if renderErr := interceptor.Intercept(rw, r, err); renderErr != nil {
					if m != nil {
						m.RenderFailed()
					}
					// No recovery is possible past this point; re-panic so
					// the net/http connection fault logging sees it.
					panic(renderErr)
				}
			}()

			next.ServeHTTP(rw, r)
		})
	}
}
