// Package mojangtest provides an in-process fake of the Mojang version
// metadata service and asset CDN for tests.
package mojangtest

import (
	"archive/zip"
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

// Upstream describes the state of the fake endpoints.
type Upstream struct {
	// Version is reported as the latest snapshot.
	Version string
	// Langs maps locale codes to raw language JSON served through the
	// asset index and resource CDN.
	Langs map[string]string
	// JarLangs maps locale codes to raw language JSON embedded in the
	// client archive (the base locale lives here, not in the index).
	JarLangs map[string]string
	// FailLocales maps locale codes to an HTTP status their CDN object
	// responds with instead of the payload.
	FailLocales map[string]int
	// CorruptLocales lists locales whose CDN object is served with
	// bytes that do not match the advertised hash.
	CorruptLocales map[string]bool
}

// Server is the running fake upstream.
type Server struct {
	MetaURL      string
	ResourcesURL string
}

// NewServer starts fake metadata and resource servers that shut down
// with the test.
func NewServer(t *testing.T, u Upstream) *Server {
	t.Helper()

	jar := buildJar(t, u.JarLangs)
	jarSHA := sha1Hex(jar)

	objects := make(map[string]map[string]any)
	payloadByHash := make(map[string][]byte)
	statusByHash := make(map[string]int)
	corruptByHash := make(map[string]bool)
	for locale, payload := range u.Langs {
		data := []byte(payload)
		hash := sha1Hex(data)
		objects[fmt.Sprintf("minecraft/lang/%s.json", locale)] = map[string]any{
			"hash": hash,
			"size": len(data),
		}
		payloadByHash[hash] = data
		if status, ok := u.FailLocales[locale]; ok {
			statusByHash[hash] = status
		}
		if u.CorruptLocales[locale] {
			corruptByHash[hash] = true
		}
	}

	metaMux := http.NewServeMux()
	meta := httptest.NewServer(metaMux)
	t.Cleanup(meta.Close)

	resMux := http.NewServeMux()
	res := httptest.NewServer(resMux)
	t.Cleanup(res.Close)

	metaMux.HandleFunc("/mc/game/version_manifest_v2.json", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{
			"latest": map[string]string{"release": u.Version, "snapshot": u.Version},
			"versions": []map[string]string{
				{"id": u.Version, "type": "snapshot", "url": meta.URL + "/v1/client.json"},
			},
		})
	})
	metaMux.HandleFunc("/v1/client.json", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{
			"assetIndex": map[string]any{"url": meta.URL + "/v1/assets.json"},
			"downloads": map[string]any{
				"client": map[string]any{
					"url":  meta.URL + "/v1/client.jar",
					"sha1": jarSHA,
					"size": len(jar),
				},
			},
		})
	})
	metaMux.HandleFunc("/v1/assets.json", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"objects": objects})
	})
	metaMux.HandleFunc("/v1/client.jar", func(w http.ResponseWriter, r *http.Request) {
		w.Write(jar)
	})

	resMux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if len(r.URL.Path) < 40 {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		hash := r.URL.Path[len(r.URL.Path)-40:]
		if status, ok := statusByHash[hash]; ok {
			w.WriteHeader(status)
			return
		}
		payload, ok := payloadByHash[hash]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if corruptByHash[hash] {
			w.Write([]byte("corrupted payload"))
			return
		}
		w.Write(payload)
	})

	return &Server{MetaURL: meta.URL, ResourcesURL: res.URL}
}

func buildJar(t *testing.T, langs map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for locale, payload := range langs {
		f, err := zw.Create(fmt.Sprintf("assets/minecraft/lang/%s.json", locale))
		if err != nil {
			t.Fatalf("create jar entry for %s: %v", locale, err)
		}
		if _, err := f.Write([]byte(payload)); err != nil {
			t.Fatalf("write jar entry for %s: %v", locale, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close jar: %v", err)
	}
	return buf.Bytes()
}

func sha1Hex(data []byte) string {
	sum := sha1.Sum(data)
	return hex.EncodeToString(sum[:])
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
