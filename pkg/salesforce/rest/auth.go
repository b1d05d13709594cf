package sfrest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// Session tokens issued through the client-credentials flow stay valid well
// past this window; we refresh early rather than track org session settings.
const tokenLifetime = 20 * time.Minute

// getSession returns a valid access token and instance URL, using the cache
// if available. If the token is expired or not available, it calls
// Authenticate() to get a new token.
func (s *Salesforce) getSession(ctx context.Context) (string, string, error) {
	s.tokenCache.mu.RLock()
	if s.tokenCache.accessToken != "" && time.Now().Before(s.tokenCache.expiresAt) {
		token := s.tokenCache.accessToken
		instance := s.tokenCache.instanceURL
		remaining := time.Until(s.tokenCache.expiresAt)
		s.tokenCache.mu.RUnlock()
		s.logger.Debug("Using cached access token", zap.Duration("remaining", remaining))
		return token, instance, nil
	}
	s.tokenCache.mu.RUnlock()

	s.logger.Info("Access token expired or not available, authenticating")
	authResp, err := s.Authenticate(ctx)
	if err != nil {
		s.logger.Error("Failed to authenticate", zap.Error(err))
		return "", "", fmt.Errorf("failed to authenticate: %w", err)
	}

	s.tokenCache.mu.Lock()
	s.tokenCache.accessToken = authResp.AccessToken
	s.tokenCache.instanceURL = authResp.InstanceURL
	// Refresh 30 seconds before expiry to avoid using a stale token
	s.tokenCache.expiresAt = time.Now().Add(tokenLifetime - 30*time.Second)
	s.tokenCache.mu.Unlock()

	s.logger.Info("Successfully authenticated and cached access token",
		zap.String("instance_url", authResp.InstanceURL),
		zap.Time("expires_at", s.tokenCache.expiresAt))

	return authResp.AccessToken, authResp.InstanceURL, nil
}

// Authenticate retrieves an OAuth access token via the client-credentials flow
func (s *Salesforce) Authenticate(ctx context.Context) (*AuthResponse, error) {
	tokenURL := fmt.Sprintf("%s/services/oauth2/token", s.config.LoginBaseURI)
	s.logger.Info("Authenticating with Salesforce", zap.String("url", tokenURL))

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", s.config.ClientID)
	form.Set("client_secret", s.config.ClientSecret)

	resp, err := s.httpClient.Post(ctx, tokenURL, map[string]string{
		"Content-Type": "application/x-www-form-urlencoded",
	}, form)
	if err != nil {
		s.logger.Error("Authentication request failed", zap.Error(err), zap.String("url", tokenURL))
		return nil, fmt.Errorf("authentication request failed: %w", err)
	}

	if resp.StatusCode != 200 {
		s.logger.Error("Authentication failed",
			zap.Int("status_code", resp.StatusCode),
			zap.String("response", string(resp.Body)))
		return nil, fmt.Errorf("authentication failed with status %d: %s", resp.StatusCode, string(resp.Body))
	}

	var authResp AuthResponse
	if err := json.Unmarshal(resp.Body, &authResp); err != nil {
		s.logger.Error("Failed to parse authentication response", zap.Error(err))
		return nil, fmt.Errorf("failed to parse authentication response: %w", err)
	}

	s.logger.Info("Successfully authenticated",
		zap.String("token_type", authResp.TokenType),
		zap.String("instance_url", authResp.InstanceURL))

	return &authResp, nil
}
