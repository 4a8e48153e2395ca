package mojang

// VersionManifest is the response of /mc/game/version_manifest_v2.json.
type VersionManifest struct {
	Latest   LatestVersions `json:"latest"`
	Versions []VersionEntry `json:"versions"`
}

// LatestVersions names the newest release and snapshot version ids.
type LatestVersions struct {
	Release  string `json:"release"`
	Snapshot string `json:"snapshot"`
}

// VersionEntry is one known game version in the manifest.
type VersionEntry struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	URL  string `json:"url"`
	SHA1 string `json:"sha1"`
}

// Version identifies a resolved upstream version together with the URL
// of its client manifest.
type Version struct {
	ID          string
	ManifestURL string
}

// ClientManifest is the per-version client.json, reduced to the parts
// the updater needs.
type ClientManifest struct {
	AssetIndex struct {
		URL  string `json:"url"`
		SHA1 string `json:"sha1"`
	} `json:"assetIndex"`
	Downloads struct {
		Client struct {
			URL  string `json:"url"`
			SHA1 string `json:"sha1"`
			Size int64  `json:"size"`
		} `json:"client"`
	} `json:"downloads"`
}

// AssetIndex maps asset paths (e.g. "minecraft/lang/ja_jp.json") to
// content-addressed objects.
type AssetIndex struct {
	Objects map[string]AssetObject `json:"objects"`
}

// AssetObject is a single content-addressed asset.
type AssetObject struct {
	Hash string `json:"hash"`
	Size int64  `json:"size"`
}
