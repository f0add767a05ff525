package service

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// authService delegates sign-in and sign-out to the user-service, which owns
// credentials and issues access tokens.
type authService struct {
	logger         *zap.Logger
	httpClient     *http.Client
	userServiceAPI string
}

func newAuthService(logger *zap.Logger) Auth {
	return &authService{
		logger:         logger,
		httpClient:     &http.Client{Timeout: 10 * time.Second},
		userServiceAPI: viper.GetString("user-service.api"),
	}
}

type signInRequest struct {
	Identifier string `json:"identifier"`
	Secret     string `json:"secret"`
}

type signInResponse struct {
	AccessToken string `json:"access_token"`
}

func (s *authService) Login(ctx context.Context, identifier string, secret string) (string, error) {
	endpoint := "/auth/sign-in"

	reqBody, err := json.Marshal(signInRequest{Identifier: identifier, Secret: secret})
	if err != nil {
		return "", ErrInternal
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.userServiceAPI+endpoint, bytes.NewReader(reqBody))
	if err != nil {
		s.logger.Sugar().Errorf("failed to create request to user-service: %s", err.Error())
		return "", ErrInternal
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Sugar().Errorf("failed to send request to user-service: %s", err.Error())
		return "", ErrInternal
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		s.logger.Sugar().Errorf("failed to read response body from user-service: %s", err.Error())
		return "", ErrInternal
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusBadRequest:
		return "", ErrInvalidCredentials
	case resp.StatusCode != http.StatusOK:
		s.logger.Sugar().Errorf("ERROR from user-service endpoint(%s), code(%d)", endpoint, resp.StatusCode)
		return "", ErrInternal
	}

	var out signInResponse
	if err := json.Unmarshal(body, &out); err != nil || out.AccessToken == "" {
		s.logger.Sugar().Errorf("failed to decode sign-in response from user-service")
		return "", ErrInternal
	}

	return out.AccessToken, nil
}

func (s *authService) Logout(ctx context.Context, accessToken string) error {
	endpoint := "/auth/sign-out"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.userServiceAPI+endpoint, nil)
	if err != nil {
		s.logger.Sugar().Errorf("failed to create request to user-service: %s", err.Error())
		return ErrInternal
	}
	req.Header.Add("Authorization", "Bearer "+accessToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Sugar().Errorf("failed to send request to user-service: %s", err.Error())
		return ErrInternal
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		s.logger.Sugar().Errorf("ERROR from user-service endpoint(%s), code(%d)", endpoint, resp.StatusCode)
		return ErrInternal
	}

	return nil
}
