package testutil

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"runtime"
	"testing"
)

// TarGzChecksum is the checksum of downloadables/curlpit-test.tar.gz
const TarGzChecksum = "5909184572530a595478cb9d5d8e5e4cd2b46d305014829e1f3fb215c034b53e"

// TarXzChecksum is the checksum of downloadables/curlpit-test.tar.xz
const TarXzChecksum = "6230b1d2e3a348d8003d6f3382ac3ab9eb4007c1399668fe49828d082818351b"

// NestedTarXzChecksum is the checksum of downloadables/curlpit-nested.tar.xz
const NestedTarXzChecksum = "53b6d4a9459fa26a7b00023034287a4dcf51c1649b3bfb7ff2e12007d9e15970"

// ZipChecksum is the checksum of downloadables/curlpit-test.zip
const ZipChecksum = "9c8b36be1fc8610c79a3e5555e9c2c4b666af543e456e8ef35cd48251a45957f"

// NoBinaryChecksum is the checksum of downloadables/no-binary.tar.gz
const NoBinaryChecksum = "ff5d2ae36d9aec4744910860a5f49f5d4ec108de2b7adc0bd679b882d0d0f2f3"

// ProjectRoot returns the absolute path of the project root
func ProjectRoot() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(file, "..", "..", "..")
}

// DownloadablesPath path to testdata/downloadables
func DownloadablesPath(path string) string {
	return filepath.Join(ProjectPath("testdata", "downloadables"), filepath.FromSlash(path))
}

// ProjectPath exchanges a path relative to the project root for an absolute path
func ProjectPath(path ...string) string {
	return filepath.Join(ProjectRoot(), filepath.Join(path...))
}

// ServeFile starts an http server
func ServeFile(t *testing.T, file, path, query string) *httptest.Server {
	t.Helper()
	file = filepath.FromSlash(file)
	mux := http.NewServeMux()
	mux.HandleFunc(path, func(w http.ResponseWriter, req *http.Request) {
		if req.URL.RawQuery != query {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		http.ServeFile(w, req, file)
	})
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

// ServeFiles starts an http server serving multiple files. files maps server
// paths to local file paths.
func ServeFiles(t *testing.T, files map[string]string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	for path, file := range files {
		file := filepath.FromSlash(file)
		mux.HandleFunc(path, func(w http.ResponseWriter, req *http.Request) {
			http.ServeFile(w, req, file)
		})
	}
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

// ServeStrings starts an http server serving literal response bodies. bodies
// maps server paths to the content served there.
func ServeStrings(t *testing.T, bodies map[string]string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	for path, body := range bodies {
		body := body
		mux.HandleFunc(path, func(w http.ResponseWriter, req *http.Request) {
			_, _ = w.Write([]byte(body))
		})
	}
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

// ServeErr starts an http server that always responds with errCode
func ServeErr(t *testing.T, errCode int) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, req *http.Request) {
		http.Error(w, "error", errCode)
	})
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}
