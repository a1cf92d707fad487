// Package midtrans talks to the Midtrans Snap hosted checkout API and checks
// the signature of its payment notifications.
package midtrans

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"campusdelivery/internal/core/ports"
	"campusdelivery/internal/pkg/errs"
	"campusdelivery/internal/pkg/metrics"

	gateway "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

const (
	SandboxBaseURL    = "https://app.sandbox.midtrans.com"
	ProductionBaseURL = "https://app.midtrans.com"

	serviceName = "payment gateway"
)

// SnapClient creates Snap transactions. Every call is bounded by the client
// timeout.
type SnapClient struct {
	snap snap.Client
}

var _ ports.PaymentGateway = (*SnapClient)(nil)

// NewSnapClient targets the sandbox unless baseURL is the production host.
// Any other base URL keeps sandbox semantics and redirects requests there.
func NewSnapClient(baseURL, serverKey string, timeout time.Duration) (*SnapClient, error) {
	env := gateway.Sandbox
	httpClient := &http.Client{Timeout: timeout}

	switch base := strings.TrimRight(baseURL, "/"); base {
	case "", SandboxBaseURL:
	case ProductionBaseURL:
		env = gateway.Production
	default:
		target, err := url.Parse(base)
		if err == nil && target.Host == "" {
			err = fmt.Errorf("no host in %q", base)
		}
		if err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("midtrans base url", err)
		}
		httpClient.Transport = rebase{target: target, next: http.DefaultTransport}
	}

	c := &SnapClient{}
	c.snap.New(serverKey, env)
	if impl, ok := c.snap.HttpClient.(*gateway.HttpClientImplementation); ok {
		configured := *impl
		configured.HttpClient = httpClient
		c.snap.HttpClient = &configured
	}
	return c, nil
}

func (c *SnapClient) CreateTransaction(ctx context.Context, req ports.TransactionRequest) (ports.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return ports.Transaction{}, errs.NewExternalServiceError(serviceName, err)
	}

	started := time.Now()
	defer func() {
		metrics.PaymentGatewayDuration.Observe(time.Since(started).Seconds())
	}()

	resp, gwErr := c.snap.CreateTransaction(&snap.Request{
		TransactionDetails: gateway.TransactionDetails{
			OrderID:  req.GatewayOrderID,
			GrossAmt: req.Amount,
		},
		CustomerDetail: &gateway.CustomerDetails{
			FName: req.Customer.FirstName,
			LName: req.Customer.LastName,
			Email: req.Customer.Email,
			Phone: req.Customer.Phone,
		},
	})
	if gwErr != nil {
		return ports.Transaction{}, errs.NewExternalServiceError(serviceName,
			fmt.Errorf("status %d: %s", gwErr.StatusCode, gwErr.Message))
	}
	if resp == nil || resp.Token == "" {
		return ports.Transaction{}, errs.NewExternalServiceError(serviceName, fmt.Errorf("response carries no token"))
	}

	return ports.Transaction{Token: resp.Token, RedirectURL: resp.RedirectURL}, nil
}

// rebase sends every request to target, keeping the path the SDK built.
type rebase struct {
	target *url.URL
	next   http.RoundTripper
}

func (r rebase) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())
	out.URL.Scheme = r.target.Scheme
	out.URL.Host = r.target.Host
	out.Host = r.target.Host
	return r.next.RoundTrip(out)
}
