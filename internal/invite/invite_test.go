package invite

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendSuccess(t *testing.T) {
	var got inviteRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := New(server.URL)
	err := client.Send(context.Background(), "Ola Nordmann", "+4712345678", "ola@example.com")
	require.NoError(t, err)

	assert.Equal(t, "Ola Nordmann", got.FullName)
	assert.Equal(t, "+4712345678", got.Phone)
	assert.Equal(t, "ola@example.com", got.Email)
}

func TestSendSurfacesDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"detail": "phone number already invited"})
	}))
	defer server.Close()

	client := New(server.URL)
	err := client.Send(context.Background(), "Ola", "+4712345678", "")
	require.Error(t, err)
	assert.Equal(t, "phone number already invited", err.Error())
}

func TestSendStatusErrorWithoutDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := New(server.URL)
	err := client.Send(context.Background(), "Ola", "+4712345678", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestSendNotConfigured(t *testing.T) {
	client := New("")
	err := client.Send(context.Background(), "Ola", "+4712345678", "")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
