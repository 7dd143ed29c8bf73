package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arthur-debert/konsave/pkg/errors"
	"github.com/arthur-debert/konsave/pkg/logging"
	"github.com/arthur-debert/konsave/pkg/paths"
	"github.com/arthur-debert/konsave/pkg/types"
	"gopkg.in/yaml.v3"
)

// Group names at the top of every manifest.
const (
	GroupSave   = "save"
	GroupExport = "export"
)

// Section is one named location with the entries copied from it.
type Section struct {
	Name string
	// RawLocation is the location as written in the manifest.
	RawLocation string
	// Location is the resolved absolute path. When Unresolved is set it
	// still carries the tokens that could not be expanded.
	Location string
	Entries  []string
	// Unresolved marks a section whose location kept a function token.
	// Operations skip such sections.
	Unresolved bool
}

// Manifest is a parsed and resolved conf.yaml. Sections keep their
// document order.
type Manifest struct {
	Save   []Section
	Export []Section
	// Warnings lists problems that did not stop parsing.
	Warnings []string
}

// Parse reads and resolves the manifest at path.
func Parse(fsys types.FS, path string, r *Resolver) (*Manifest, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(err, errors.ErrManifestInvalid, "manifest %s does not exist", path).
				WithDetail("path", path)
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read manifest %s", path).
			WithDetail("path", path)
	}
	m, err := ParseBytes(data, r)
	if err != nil {
		if kerr, ok := err.(*errors.KonsaveError); ok {
			kerr.Message = fmt.Sprintf("%s: %s", path, kerr.Message)
			return nil, kerr.WithDetail("path", path)
		}
		return nil, err
	}
	return m, nil
}

// ParseBytes decodes and resolves manifest text. Both groups must be
// present. Keyword tokens are expanded in every section before any
// function token is probed.
func ParseBytes(data []byte, r *Resolver) (*Manifest, error) {
	logger := logging.GetLogger("manifest")

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Newf(errors.ErrManifestInvalid, "malformed manifest: %v", err)
	}
	if len(doc.Content) == 0 {
		return nil, errors.New(errors.ErrManifestInvalid, "malformed manifest: document is empty")
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, errors.New(errors.ErrManifestInvalid, "malformed manifest: top level must be a mapping")
	}

	m := &Manifest{}
	groups := map[string]*[]Section{GroupSave: &m.Save, GroupExport: &m.Export}
	seen := map[string]bool{}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i].Value, root.Content[i+1]
		target, ok := groups[key]
		if !ok {
			m.Warnings = append(m.Warnings, fmt.Sprintf("ignoring unknown top-level key %q", key))
			continue
		}
		if seen[key] {
			return nil, errors.Newf(errors.ErrManifestInvalid, "malformed manifest: duplicate %q key", key)
		}
		seen[key] = true

		sections, err := decodeGroup(key, value)
		if err != nil {
			return nil, err
		}
		*target = sections
	}

	for _, key := range []string{GroupSave, GroupExport} {
		if !seen[key] {
			return nil, errors.Newf(errors.ErrManifestInvalid, "malformed manifest: missing %q key", key)
		}
	}

	// Keywords across the whole manifest, then functions
	all := append(refs(m.Save), refs(m.Export)...)
	for _, s := range all {
		s.Location = r.ExpandKeywords(s.RawLocation)
	}
	for _, s := range all {
		resolved, unresolved := r.ExpandFunctions(s.Location)
		s.Location = resolved
		if len(unresolved) > 0 || HasToken(resolved) {
			s.Unresolved = true
			m.Warnings = append(m.Warnings,
				fmt.Sprintf("section %q: cannot resolve location %q, skipping it", s.Name, s.RawLocation))
			continue
		}
		if s.Location == "" || !filepath.IsAbs(s.Location) {
			return nil, errors.Newf(errors.ErrManifestInvalid,
				"section %q: location %q does not resolve to an absolute path", s.Name, s.RawLocation).
				WithDetail("resolved", s.Location)
		}
		s.Location = filepath.Clean(s.Location)
	}

	for _, w := range m.Warnings {
		logger.Warn().Msg(w)
	}
	logger.Debug().Int("save", len(m.Save)).Int("export", len(m.Export)).Msg("Manifest parsed")

	return m, nil
}

func refs(sections []Section) []*Section {
	out := make([]*Section, len(sections))
	for i := range sections {
		out[i] = &sections[i]
	}
	return out
}

// decodeGroup decodes one group mapping. A null group is empty.
func decodeGroup(group string, node *yaml.Node) ([]Section, error) {
	if isNull(node) {
		return []Section{}, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, errors.Newf(errors.ErrManifestInvalid, "malformed manifest: %q must map section names to sections", group)
	}

	sections := make([]Section, 0, len(node.Content)/2)
	names := map[string]bool{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		// Section names become directories inside profiles and archives
		if err := paths.ValidateProfileName(name); err != nil {
			return nil, errors.Newf(errors.ErrManifestInvalid, "%s: invalid section name %q", group, name)
		}
		if names[name] {
			return nil, errors.Newf(errors.ErrManifestInvalid, "%s: duplicate section %q", group, name)
		}
		names[name] = true

		section, err := decodeSection(group, name, node.Content[i+1])
		if err != nil {
			return nil, err
		}
		sections = append(sections, section)
	}
	return sections, nil
}

type rawSection struct {
	Location *string   `yaml:"location"`
	Entries  yaml.Node `yaml:"entries"`
}

func decodeSection(group, name string, node *yaml.Node) (Section, error) {
	if node.Kind != yaml.MappingNode {
		return Section{}, errors.Newf(errors.ErrManifestInvalid, "%s.%s: section must be a mapping", group, name)
	}

	var raw rawSection
	if err := node.Decode(&raw); err != nil {
		return Section{}, errors.Newf(errors.ErrManifestInvalid, "%s.%s: malformed section: %v", group, name, err)
	}
	if raw.Location == nil || *raw.Location == "" {
		return Section{}, errors.Newf(errors.ErrManifestInvalid, "%s.%s: location is required", group, name)
	}

	entries := []string{}
	if !isNull(&raw.Entries) {
		if raw.Entries.Kind != yaml.SequenceNode {
			return Section{}, errors.Newf(errors.ErrManifestInvalid, "%s.%s: entries must be a list", group, name)
		}
		if err := raw.Entries.Decode(&entries); err != nil {
			return Section{}, errors.Newf(errors.ErrManifestInvalid, "%s.%s: entries must be strings: %v", group, name, err)
		}
	}
	for _, e := range entries {
		if err := paths.ValidateEntry(e); err != nil {
			return Section{}, errors.Newf(errors.ErrManifestInvalid, "%s.%s: %s", group, name, errors.UserMessage(err))
		}
	}

	return Section{Name: name, RawLocation: *raw.Location, Entries: entries}, nil
}

// isNull is true for explicit nulls and for absent (zero) nodes.
func isNull(node *yaml.Node) bool {
	return node.Kind == 0 || (node.Kind == yaml.ScalarNode && node.Tag == "!!null")
}
