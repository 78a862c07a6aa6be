package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"testing"
	"time"
)

// mockRoundTripper is a tiny fake S3 subset (GetObject, ListObjectsV2) so the
// source can be exercised without network access.
type mockRoundTripper struct{ state map[string][]byte }

func (m *mockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	// Expect path-style: /bucket/key
	parts := strings.SplitN(strings.TrimPrefix(req.URL.Path, "/"), "/", 2)
	key := ""
	if len(parts) == 2 {
		key = parts[1]
	}
	if req.Method == http.MethodGet && strings.Contains(req.URL.RawQuery, "list-type=2") {
		return m.list(req), nil
	}
	if req.Method != http.MethodGet {
		return &http.Response{StatusCode: 501, Body: io.NopCloser(bytes.NewReader(nil)), Header: http.Header{}}, nil
	}
	body, ok := m.state[key]
	if !ok {
		return &http.Response{StatusCode: 404, Body: io.NopCloser(bytes.NewReader(nil)), Header: http.Header{}}, nil
	}
	return &http.Response{StatusCode: 200, Body: io.NopCloser(bytes.NewReader(body)), Header: http.Header{
		"Content-Length": {fmt.Sprintf("%d", len(body))},
		"Content-Type":   {"application/json"},
		"Last-Modified":  {time.Now().UTC().Format(http.TimeFormat)},
		"ETag":           {"\"etag\""},
	}}, nil
}

// list pages one key at a time to exercise continuation tokens.
func (m *mockRoundTripper) list(req *http.Request) *http.Response {
	prefix := req.URL.Query().Get("prefix")
	cont := req.URL.Query().Get("continuation-token")
	var keys []string
	for k := range m.state {
		if prefix == "" || strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	start := 0
	if cont != "" {
		fmt.Sscanf(cont, "tok%d", &start)
	}
	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\"?><ListBucketResult>")
	if start+1 < len(keys) {
		fmt.Fprintf(&b, "<IsTruncated>true</IsTruncated><NextContinuationToken>tok%d</NextContinuationToken>", start+1)
	} else {
		b.WriteString("<IsTruncated>false</IsTruncated>")
	}
	if start < len(keys) {
		k := keys[start]
		fmt.Fprintf(&b, "<Contents><Key>%s</Key><Size>%d</Size><LastModified>2024-01-01T00:00:00Z</LastModified></Contents>", k, len(m.state[k]))
	}
	b.WriteString("</ListBucketResult>")
	return &http.Response{StatusCode: 200, Body: io.NopCloser(strings.NewReader(b.String())), Header: http.Header{"Content-Type": {"application/xml"}}}
}

func newMockS3(t *testing.T, objs map[string][]byte) *S3 {
	t.Helper()
	s, err := NewS3(context.Background(), S3Config{
		Bucket:          "captures",
		Region:          "us-east-1",
		Endpoint:        "https://mock.s3.local",
		AccessKeyID:     "AKIA",
		SecretAccessKey: "SECRET",
		PathStyle:       true,
		HTTPClient:      &http.Client{Transport: &mockRoundTripper{state: objs}},
	})
	if err != nil {
		t.Fatalf("NewS3: %v", err)
	}
	return s
}

func TestS3_FetchAndList(t *testing.T) {
	s := newMockS3(t, map[string][]byte{
		"lab/a.json":  []byte(capture),
		"lab/b.h":     []byte("{0xFF00}"),
		"lab/log.csv": []byte("x"),
		"other.json":  []byte(capture),
	})
	ctx := context.Background()
	if s.Driver() != DriverS3 {
		t.Fatal("expected DriverS3")
	}
	b, err := s.Fetch(ctx, "lab/a.json")
	if err != nil || string(b) != capture {
		t.Fatalf("fetch: %v %q", err, b)
	}
	if _, err := s.Fetch(ctx, "lab/none.json"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	list, err := s.List(ctx, "lab/")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].Key != "lab/a.json" || list[1].Key != "lab/b.h" || list[0].Size != int64(len(capture)) {
		t.Fatalf("list: %+v", list)
	}
}

func TestS3_SameBytesAsOtherSources(t *testing.T) {
	ctx := context.Background()
	s := newMockS3(t, map[string][]byte{"k.json": []byte(capture)})
	m := NewMemory()
	m.Put("k.json", []byte(capture))
	root := t.TempDir()
	writeFile(t, root, "k.json", capture)
	f, _ := NewFilesystem(root)
	for _, src := range []Source{s, m, f} {
		b, err := src.Fetch(ctx, "k.json")
		if err != nil || !bytes.Equal(b, []byte(capture)) {
			t.Fatalf("%s: %v %q", src.Driver(), err, b)
		}
	}
}

func TestS3_RequiresBucket(t *testing.T) {
	if _, err := NewS3(context.Background(), S3Config{}); err == nil {
		t.Fatal("expected bucket error")
	}
}
