package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestLogin() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cases := map[string]struct {
		loginReq           loginRequest
		expectedStatusCode int
		assertFunc         func(resp *http.Response)
	}{
		"good creds": {
			loginReq: loginRequest{
				Username: testUsername,
				Password: testPassword,
			},
			expectedStatusCode: http.StatusOK,
			assertFunc: func(resp *http.Response) {
				respBytes, err := io.ReadAll(resp.Body)
				require.NoError(t, err)

				var loginResp loginResponse
				require.NoError(t, json.Unmarshal(respBytes, &loginResp))
				assert.NotEmpty(t, loginResp.Token)
			},
		},
		"good creds, then logout": {
			loginReq: loginRequest{
				Username: testUsername,
				Password: testPassword,
			},
			expectedStatusCode: http.StatusOK,
			assertFunc: func(resp *http.Response) {
				respBytes, err := io.ReadAll(resp.Body)
				require.NoError(t, err)

				var loginResp loginResponse
				require.NoError(t, json.Unmarshal(respBytes, &loginResp))
				require.NotEmpty(t, loginResp.Token)

				req, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/a/logout", serverEndpoint), nil)
				require.NoError(t, err)
				req.Header.Set("User-Agent", "test-agent")
				req.Header.Set("X-LIFTLOG-TOKEN", loginResp.Token)

				logoutResp, err := http.DefaultClient.Do(req)
				require.NoError(t, err)
				defer logoutResp.Body.Close()
				assert.Equal(t, http.StatusOK, logoutResp.StatusCode)

				// the token is dead now
				sessionsResp := request(ctx, t, loginResp.Token, "GET", "/sessions", nil)
				defer sessionsResp.Body.Close()
				assert.Equal(t, http.StatusUnauthorized, sessionsResp.StatusCode)
			},
		},
		"wrong password": {
			loginReq: loginRequest{
				Username: testUsername,
				Password: "not-the-password",
			},
			expectedStatusCode: http.StatusBadRequest,
		},
		"unknown user": {
			loginReq: loginRequest{
				Username: "who-dis",
				Password: testPassword,
			},
			expectedStatusCode: http.StatusBadRequest,
		},
		"empty username": {
			loginReq: loginRequest{
				Password: testPassword,
			},
			expectedStatusCode: http.StatusBadRequest,
		},
	}

	for name, tc := range cases {
		loginReqJson, err := json.Marshal(tc.loginReq)
		require.NoError(t, err)

		req, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/a/login", serverEndpoint), bytes.NewBuffer(loginReqJson))
		require.NoError(t, err)
		req.Header.Set("User-Agent", "test-agent")
		req.Header.Set("Content-Type", "application/json")

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)

		assert.Equal(t, tc.expectedStatusCode, resp.StatusCode, name)
		if tc.assertFunc != nil {
			tc.assertFunc(resp)
		}
		resp.Body.Close()
	}
}

func (s *IntegrationTestSuite) TestProtectedRoutesRequireAuth() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	for _, path := range []string{
		"/exercises",
		"/templates",
		"/sessions",
		"/stats/weekly-summary",
	} {
		resp := request(ctx, t, "bogus-token", "GET", path, nil)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
	}
}
