package mojang

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/SkyEye-FAST/mc-lang/pkg/log"
)

// Session holds everything needed to fetch language files for one
// resolved version: the asset index plus the client archive kept in
// memory. The base locale ships only inside the client archive; every
// other locale lives on the resource CDN.
type Session struct {
	client  *Client
	version *Version
	index   *AssetIndex
	jar     []byte
}

// NewSession resolves a version's client manifest, asset index and
// client archive. Any failure here means the upstream as a whole is
// unusable for this run.
func NewSession(ctx context.Context, client *Client, version *Version) (*Session, error) {
	manifest, err := client.ClientManifest(ctx, version)
	if err != nil {
		return nil, err
	}

	index, err := client.AssetIndex(ctx, manifest)
	if err != nil {
		return nil, err
	}

	jar, err := client.FetchClientJar(ctx, manifest)
	if err != nil {
		return nil, err
	}
	log.Info("Client archive for %s downloaded (%d bytes)", version.ID, len(jar))

	return &Session{
		client:  client,
		version: version,
		index:   index,
		jar:     jar,
	}, nil
}

// Version returns the resolved version id of the session.
func (s *Session) Version() string {
	return s.version.ID
}

// FetchLang retrieves the raw language file payload for a locale. The
// asset index is consulted first; locales absent from it (the base
// locale) are extracted from the client archive.
func (s *Session) FetchLang(ctx context.Context, locale string) ([]byte, error) {
	assetPath := fmt.Sprintf("minecraft/lang/%s.json", locale)
	if obj, ok := s.index.Objects[assetPath]; ok {
		log.Info("Downloading language file %s.json (%s)", locale, obj.Hash)
		body, err := s.client.FetchObject(ctx, obj)
		if err != nil {
			return nil, fmt.Errorf("failed to download language file for %s: %w", locale, err)
		}
		return body, nil
	}

	log.Info("Extracting language file %s.json from client archive", locale)
	body, err := s.extractJarEntry(fmt.Sprintf("assets/minecraft/lang/%s.json", locale))
	if err != nil {
		return nil, fmt.Errorf("locale %s not available upstream: %w", locale, err)
	}
	return body, nil
}

// extractJarEntry reads one file out of the in-memory client archive.
func (s *Session) extractJarEntry(name string) ([]byte, error) {
	reader, err := zip.NewReader(bytes.NewReader(s.jar), int64(len(s.jar)))
	if err != nil {
		return nil, fmt.Errorf("failed to open client archive: %w", err)
	}

	entry, err := reader.Open(name)
	if err != nil {
		return nil, fmt.Errorf("entry %s not found in client archive: %w", name, err)
	}
	defer entry.Close()

	return io.ReadAll(entry)
}
