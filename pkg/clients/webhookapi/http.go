package webhookapi

import (
	"net/http"
	"time"

	"github.com/opentracing-contrib/go-stdlib/nethttp"
	"github.com/sethgrid/pester"
)

// pesterClient returns an instrumented http client; a single attempt only,
// since the notification is best-effort and must not be retried.
func pesterClient(timeout time.Duration) *pester.Client {
	client := pester.NewExtendedClient(&http.Client{Transport: &nethttp.Transport{}})
	client.MaxRetries = 1
	client.Backoff = pester.ExponentialJitterBackoff
	client.KeepLog = true
	client.Timeout = timeout

	return client
}
