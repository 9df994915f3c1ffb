package test_utils

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type RequestOptions struct {
	Method         string
	URL            string
	Body           any
	AuthToken      string
	ExpectedStatus int
}

type TestResponse struct {
	StatusCode int
	Body       []byte
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// MakeRequest runs the request against router and fails the test when the
// status differs from ExpectedStatus. A string Body is sent as is.
func MakeRequest(t *testing.T, router *gin.Engine, options RequestOptions) *TestResponse {
	t.Helper()

	var body []byte
	switch b := options.Body.(type) {
	case nil:
	case string:
		body = []byte(b)
	default:
		encoded, err := json.Marshal(b)
		require.NoError(t, err)
		body = encoded
	}

	req := httptest.NewRequest(options.Method, options.URL, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if options.AuthToken != "" {
		req.Header.Set("Authorization", options.AuthToken)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(
		t,
		options.ExpectedStatus,
		w.Code,
		"unexpected status for %s %s: %s",
		options.Method,
		options.URL,
		w.Body.String(),
	)

	return &TestResponse{StatusCode: w.Code, Body: w.Body.Bytes()}
}

// UnmarshalData decodes the data field of the response envelope into target.
func UnmarshalData(t *testing.T, resp *TestResponse, target any) {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(resp.Body, &env))
	require.True(t, env.Success, "response is not successful: %s", env.Error)
	require.NoError(t, json.Unmarshal(env.Data, target))
}

// ErrorOf returns the error message of a failed response.
func ErrorOf(t *testing.T, resp *TestResponse) string {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(resp.Body, &env))
	require.False(t, env.Success)

	return env.Error
}

func MakeGetRequest(t *testing.T, router *gin.Engine, url, authToken string, expectedStatus int) *TestResponse {
	return MakeRequest(t, router, RequestOptions{
		Method:         http.MethodGet,
		URL:            url,
		AuthToken:      authToken,
		ExpectedStatus: expectedStatus,
	})
}

func MakeGetRequestAndUnmarshal(
	t *testing.T,
	router *gin.Engine,
	url, authToken string,
	expectedStatus int,
	target any,
) {
	resp := MakeGetRequest(t, router, url, authToken, expectedStatus)
	UnmarshalData(t, resp, target)
}

func MakePostRequest(
	t *testing.T,
	router *gin.Engine,
	url, authToken string,
	body any,
	expectedStatus int,
) *TestResponse {
	return MakeRequest(t, router, RequestOptions{
		Method:         http.MethodPost,
		URL:            url,
		Body:           body,
		AuthToken:      authToken,
		ExpectedStatus: expectedStatus,
	})
}

func MakePostRequestAndUnmarshal(
	t *testing.T,
	router *gin.Engine,
	url, authToken string,
	body any,
	expectedStatus int,
	target any,
) {
	resp := MakePostRequest(t, router, url, authToken, body, expectedStatus)
	UnmarshalData(t, resp, target)
}

func MakePutRequest(
	t *testing.T,
	router *gin.Engine,
	url, authToken string,
	body any,
	expectedStatus int,
) *TestResponse {
	return MakeRequest(t, router, RequestOptions{
		Method:         http.MethodPut,
		URL:            url,
		Body:           body,
		AuthToken:      authToken,
		ExpectedStatus: expectedStatus,
	})
}

func MakePutRequestAndUnmarshal(
	t *testing.T,
	router *gin.Engine,
	url, authToken string,
	body any,
	expectedStatus int,
	target any,
) {
	resp := MakePutRequest(t, router, url, authToken, body, expectedStatus)
	UnmarshalData(t, resp, target)
}

func MakeDeleteRequest(t *testing.T, router *gin.Engine, url, authToken string, expectedStatus int) *TestResponse {
	return MakeRequest(t, router, RequestOptions{
		Method:         http.MethodDelete,
		URL:            url,
		AuthToken:      authToken,
		ExpectedStatus: expectedStatus,
	})
}
