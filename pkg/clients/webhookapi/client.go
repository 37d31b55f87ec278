package webhookapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/opentracing-contrib/go-stdlib/nethttp"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"github.com/deckhand-ci/deckhand-ci-runner/pkg/api"
	"github.com/deckhand-ci/deckhand-ci-runner/pkg/contracts"
)

// Client is the interface for delivering build reports to the webhook endpoint
type Client interface {
	SendBuildReport(ctx context.Context, report contracts.BuildReport) (err error)
}

// NewClient returns a webhookapi.Client to notify the configured endpoint
func NewClient(config *api.APIConfig) Client {
	return &client{
		config: config,
	}
}

type client struct {
	config *api.APIConfig
}

// SendBuildReport posts the report as a json body with bearer authentication;
// it is invoked once per pipeline run and never retried.
func (c *client) SendBuildReport(ctx context.Context, report contracts.BuildReport) (err error) {

	body, err := json.Marshal(report)
	if err != nil {
		return errors.Wrap(err, "Failed marshalling build report")
	}

	// create client, in order to add headers
	httpClient := pesterClient(time.Duration(c.config.Webhook.TimeoutSeconds) * time.Second)

	request, err := http.NewRequest("POST", c.config.Webhook.URL, bytes.NewReader(body))
	if err != nil {
		return
	}

	span := opentracing.SpanFromContext(ctx)
	var ht *nethttp.Tracer
	if span != nil {
		// add tracing context
		request = request.WithContext(opentracing.ContextWithSpan(request.Context(), span))

		// collect additional information on setting up connections
		request, ht = nethttp.TraceRequest(span.Tracer(), request)
	}

	// add headers
	request.Header.Add("Content-Type", "application/json")
	request.Header.Add("Authorization", fmt.Sprintf("%v %v", "Bearer", c.config.Webhook.BearerToken))

	// perform actual request
	response, err := httpClient.Do(request)
	if err != nil {
		return
	}
	defer response.Body.Close()
	if ht != nil {
		ht.Finish()
	}

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		return errors.Errorf("Webhook endpoint %v responded with status code %v", c.config.Webhook.URL, response.StatusCode)
	}

	return nil
}
