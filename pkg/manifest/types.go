package manifest

// SchemaVersion is the manifestVersion written by this package.
const SchemaVersion = "1.0"

// FileName is the manifest file stored next to a package's sources.
const FileName = "dep.json"

// FileInfo is the digest entry for one file.
type FileInfo struct {
	SHA256 string `json:"sha256"`
	Size   int64  `json:"size"`
}

// Security lists detected capabilities. Only true flags and non-empty
// lists are encoded.
type Security struct {
	NetworkAccess bool     `json:"networkAccess,omitempty"`
	FileAccess    []string `json:"fileAccess,omitempty"`
	UsesFFI       bool     `json:"usesFFI,omitempty"`
}

func (s *Security) empty() bool {
	return !s.NetworkAccess && !s.UsesFFI && len(s.FileAccess) == 0
}

// Metadata holds descriptive fields that do not affect installation.
type Metadata struct {
	Tags       []string `json:"tags,omitempty"`
	SourceURL  string   `json:"sourceUrl,omitempty"`
	Deprecated bool     `json:"deprecated,omitempty"`
}

func (m *Metadata) empty() bool {
	return len(m.Tags) == 0 && m.SourceURL == "" && !m.Deprecated
}

// Manifest is the dep.json document of one package version.
type Manifest struct {
	ManifestVersion string              `json:"manifestVersion"`
	ID              string              `json:"id"`
	Name            string              `json:"name,omitempty"`
	Version         string              `json:"version"`
	Provides        []string            `json:"provides,omitempty"`
	Files           map[string]FileInfo `json:"files"`
	Dependencies    map[string]string   `json:"dependencies,omitempty"`
	Security        *Security           `json:"security,omitempty"`
	Metadata        *Metadata           `json:"metadata,omitempty"`
}

// FileNames returns the manifest's file names in sorted order.
func (m *Manifest) FileNames() []string {
	return sortedKeys(m.Files)
}

// DependencyIDs returns the pinned dependency ids in sorted order.
func (m *Manifest) DependencyIDs() []string {
	return sortedKeys(m.Dependencies)
}

// Normalize drops empty optional groups, for example after decoding a
// document written by older tooling that emitted "security": {}.
func (m *Manifest) Normalize() {
	if len(m.Dependencies) == 0 {
		m.Dependencies = nil
	}
	if len(m.Provides) == 0 {
		m.Provides = nil
	}
	if m.Security != nil && m.Security.empty() {
		m.Security = nil
	}
	if m.Metadata != nil && m.Metadata.empty() {
		m.Metadata = nil
	}
}
