package clients

import (
	"context"
	"net/http"
)

// ServiceClient forwards gateway traffic to one backend service.
type ServiceClient struct {
	name string
	base *BaseClient
}

// NewServiceClient returns a client for the service reachable at baseURL.
func NewServiceClient(name, baseURL string, httpClient HTTPDoer) *ServiceClient {
	return &ServiceClient{name: name, base: NewBaseClient(baseURL, httpClient)}
}

// Name identifies the backend in logs and health output.
func (c *ServiceClient) Name() string {
	return c.name
}

// Forward sends the request unchanged apart from the base URL.
func (c *ServiceClient) Forward(ctx context.Context, method, pathAndQuery string, body []byte, headers http.Header) (*Response, error) {
	return c.base.Do(ctx, method, pathAndQuery, body, headers)
}

// Health calls the backend GET /health.
func (c *ServiceClient) Health(ctx context.Context) (int, error) {
	resp, err := c.base.Do(ctx, http.MethodGet, "/health", nil, nil)
	if err != nil {
		return 0, err
	}
	return resp.Status, nil
}
