package utils

//go:generate $MOCKGEN -source=user_agent_provider.go -destination=mocks/user_agent_provider_mock.go

import "strings"

// UserAgentProvider supplies the User-Agent sent with every request.
type UserAgentProvider interface {
	// GetUserAgent returns a User-Agent string.
	GetUserAgent() string
}

// ProductUserAgentProvider returns a base User-Agent followed by a product token.
// File hosts keep treating the request as a browser download,
// while their logs can still tell the updater apart.
type ProductUserAgentProvider struct {
	// userAgent is the composed header value.
	userAgent string
}

// NewUserAgentProvider composes base and product into one User-Agent.
// Blank parts are skipped.
func NewUserAgentProvider(base, product string) UserAgentProvider {
	parts := make([]string, 0, 2) //nolint:mnd // Base and product.

	for _, part := range []string{base, product} {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}

	return &ProductUserAgentProvider{userAgent: strings.Join(parts, " ")}
}

// GetUserAgent returns the composed User-Agent.
func (p *ProductUserAgentProvider) GetUserAgent() string {
	return p.userAgent
}
