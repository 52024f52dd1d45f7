package directory

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHTTPDirectory_GetUser(t *testing.T) {
	id := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/users/"+id.String(), r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code":0,"message":"success","data":{"id":"` + id.String() +
			`","email":"ann@example.com","first_name":"Ann","region_id":61,"roles":[{"id":2,"name":"athlete"}]}}`))
	}))
	defer srv.Close()

	dir := NewHTTPDirectory(srv.URL+"/", time.Second, zap.NewNop())
	user, err := dir.GetUser(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)
	assert.Equal(t, "ann@example.com", user.Email)
	assert.Equal(t, "Ann", user.FirstName)
	require.NotNil(t, user.RegionID)
	assert.Equal(t, 61, *user.RegionID)
	require.Len(t, user.Roles, 1)
	assert.Equal(t, "athlete", user.Roles[0].Name)
}

func TestHTTPDirectory_Errors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		notFound bool
	}{
		{"not found", http.StatusNotFound, `{"code":404,"message":"user not found"}`, true},
		{"null data", http.StatusOK, `{"code":0,"message":"success","data":null}`, true},
		{"server error", http.StatusBadGateway, `oops`, false},
		{"malformed body", http.StatusOK, `{"code":`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewHTTPDirectory(srv.URL, time.Second, zap.NewNop()).GetUser(context.Background(), uuid.New())
			require.Error(t, err)
			assert.Equal(t, tt.notFound, err == ErrUserNotFound)
		})
	}
}

func TestHTTPDirectory_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := NewHTTPDirectory(srv.URL, 5*time.Second, zap.NewNop()).GetUser(ctx, uuid.New())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUserNotFound)
}
