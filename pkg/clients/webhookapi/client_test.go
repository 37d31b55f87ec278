package webhookapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/deckhand-ci/deckhand-ci-runner/pkg/api"
	"github.com/deckhand-ci/deckhand-ci-runner/pkg/contracts"
)

func TestSendBuildReport(t *testing.T) {

	t.Run("PostsJsonBodyWithBearerTokenHeaders", func(t *testing.T) {

		var receivedMethod, receivedContentType, receivedAuthorization string
		var receivedBody []byte
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			receivedMethod = r.Method
			receivedContentType = r.Header.Get("Content-Type")
			receivedAuthorization = r.Header.Get("Authorization")
			receivedBody, _ = io.ReadAll(r.Body)
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		webhookapiClient := NewClient(configForURL(server.URL))
		report := contracts.NewBuildReport(contracts.StatusSuccess, "ecommerce-website", "42", "", "all stages passed")

		// act
		err := webhookapiClient.SendBuildReport(context.Background(), report)

		assert.Nil(t, err)
		assert.Equal(t, "POST", receivedMethod)
		assert.Equal(t, "application/json", receivedContentType)
		assert.Equal(t, "Bearer s3cr3t-t0k3n", receivedAuthorization)

		var receivedReport contracts.BuildReport
		err = json.Unmarshal(receivedBody, &receivedReport)
		assert.Nil(t, err)
		assert.Equal(t, report, receivedReport)
	})

	t.Run("ReturnsErrorForNonSuccessStatusCode", func(t *testing.T) {

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		webhookapiClient := NewClient(configForURL(server.URL))
		report := contracts.NewBuildReport(contracts.StatusFailure, "ecommerce-website", "42", "stage tests failed", "traceback")

		// act
		err := webhookapiClient.SendBuildReport(context.Background(), report)

		assert.NotNil(t, err)
	})

	t.Run("ReturnsErrorForUnreachableEndpoint", func(t *testing.T) {

		webhookapiClient := NewClient(configForURL("http://127.0.0.1:1/builds"))
		report := contracts.NewBuildReport(contracts.StatusFailure, "ecommerce-website", "42", "stage tests failed", "traceback")

		// act
		err := webhookapiClient.SendBuildReport(context.Background(), report)

		assert.NotNil(t, err)
	})
}

func configForURL(url string) *api.APIConfig {
	return &api.APIConfig{
		Webhook: &api.WebhookConfig{
			URL:            url,
			BearerToken:    "s3cr3t-t0k3n",
			TimeoutSeconds: 2,
			TailLines:      50,
		},
	}
}
