package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeS3 answers just enough of the S3 API for bucket checks and single PUTs.
type fakeS3 struct {
	mu      sync.Mutex
	puts    map[string]string
	buckets map[string]bool
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	parts := strings.SplitN(strings.TrimPrefix(r.URL.Path, "/"), "/", 2)
	bucket, object := parts[0], ""
	if len(parts) == 2 {
		object = parts[1]
	}
	switch {
	case r.Method == http.MethodHead && object == "":
		if !f.buckets[bucket] {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	case r.Method == http.MethodPut && object == "":
		f.buckets[bucket] = true
		w.WriteHeader(http.StatusOK)
	case r.Method == http.MethodPut:
		b, _ := io.ReadAll(r.Body)
		f.puts[object] = string(b)
		w.Header().Set("ETag", `"d41d8cd98f00b204e9800998ecf8427e"`)
		w.WriteHeader(http.StatusOK)
	default:
		w.WriteHeader(http.StatusNotImplemented)
	}
}

func TestStoreArchive(t *testing.T) {
	fake := &fakeS3{puts: map[string]string{}, buckets: map[string]bool{}}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	endpoint := strings.TrimPrefix(srv.URL, "http://")
	store, err := New(context.Background(), endpoint, "us-east-1", "responses", "access", "secret", false)
	require.NoError(t, err)
	assert.True(t, fake.buckets["responses"])

	url, err := store.Archive(context.Background(), "unparsable/2026/10/14/abc.txt", "not json at all")
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/responses/unparsable/2026/10/14/abc.txt", url)

	body, ok := fake.puts["unparsable/2026/10/14/abc.txt"]
	require.True(t, ok)
	assert.Contains(t, body, "not json at all")
}
