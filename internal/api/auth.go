package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"go.uber.org/zap"

	"memberdesk/internal/models"
)

// Login authenticates the staff user with the server
func (c *Client) Login(ctx context.Context, email, password string) (*models.Auth, error) {
	reqBody, err := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url("auth/signin"), bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	client, err := createHTTPClientWithCookieJar()
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func(Body io.ReadCloser) {
		err := Body.Close()
		if err != nil {
			c.log.Warn("failed to close response body", zap.Error(err))
		}
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &StatusError{Method: http.MethodPost, Path: "auth/signin", StatusCode: resp.StatusCode, Body: string(body)}
	}

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}

	var responseMap map[string]interface{}
	if err := json.Unmarshal(responseBody, &responseMap); err != nil {
		return nil, fmt.Errorf("error parsing response JSON: %w", err)
	}

	authResponse := &models.Auth{}
	authResponse.UserID, authResponse.Email = extractUserInfo(responseMap)
	authResponse.Token = findAuthToken(resp.Cookies(), responseMap)

	if authResponse.Token == "" {
		return nil, fmt.Errorf("no authentication token found in server response")
	}
	if authResponse.Email == "" {
		authResponse.Email = email
	}

	c.AuthToken = authResponse.Token
	return authResponse, nil
}

// Logout notifies the server and clears the client's token. A server
// failure is logged but does not prevent the local logout.
func (c *Client) Logout(ctx context.Context) error {
	if c.AuthToken == "" {
		return nil
	}

	if err := c.do(ctx, http.MethodPost, "auth/signout", nil, nil); err != nil {
		c.log.Warn("server signout failed", zap.Error(err))
	}

	c.AuthToken = ""
	return nil
}

// GetCurrentUser fetches the signed-in staff user
func (c *Client) GetCurrentUser(ctx context.Context) (*models.StaffUser, error) {
	var response struct {
		User models.StaffUser `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "account/me", nil, &response); err != nil {
		return nil, fmt.Errorf("failed to fetch user details: %w", err)
	}
	return &response.User, nil
}

// createHTTPClientWithCookieJar creates an HTTP client with a cookie jar
func createHTTPClientWithCookieJar() (*http.Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("error creating cookie jar: %w", err)
	}

	return &http.Client{
		Timeout: 30 * time.Second,
		Jar:     jar,
	}, nil
}

// extractUserInfo extracts user information from the response
func extractUserInfo(responseMap map[string]interface{}) (string, string) {
	userID, email := "", ""

	if userObj, ok := responseMap["user"].(map[string]interface{}); ok {
		// Extract user ID from various possible fields
		for _, field := range []string{"id", "_id", "uid"} {
			if id, ok := userObj[field].(string); ok {
				userID = id
				break
			}
		}

		if userEmail, ok := userObj["email"].(string); ok {
			email = userEmail
		}
	}

	return userID, email
}

// findAuthToken looks for an authentication token in cookies and response body
func findAuthToken(cookies []*http.Cookie, responseMap map[string]interface{}) string {
	for _, cookie := range cookies {
		if cookie.Value == "" {
			continue
		}
		name := strings.ToLower(cookie.Name)
		if strings.Contains(name, "auth") || strings.Contains(name, "token") ||
			strings.Contains(name, "session") || strings.Contains(name, "jwt") {
			return cookie.Value
		}
	}

	// If not found in cookies, check response body
	if token, ok := responseMap["token"].(string); ok {
		return token
	}

	return ""
}
