package artifact

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Store manages artifact IO rooted at a working directory.
type Store struct {
	root string
}

// NewStore creates a store rooted at root.
func NewStore(root string) *Store {
	if root == "" {
		root = "."
	}
	return &Store{root: root}
}

// Root returns the working root.
func (s *Store) Root() string {
	return s.root
}

// Path resolves a root-relative artifact path.
func (s *Store) Path(rel string) string {
	return filepath.Join(s.root, filepath.FromSlash(rel))
}

// Exists reports whether the artifact exists as a regular file.
func (s *Store) Exists(rel string) bool {
	info, err := os.Stat(s.Path(rel))
	return err == nil && !info.IsDir()
}

// ReadNode parses a YAML artifact into its document node.
// An empty document yields a null node rather than an error so that schema
// decoding can report the problem with a field path.
func (s *Store) ReadNode(rel string) (*yaml.Node, error) {
	data, err := os.ReadFile(s.Path(rel))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", rel, err)
	}
	return ParseNode(data, rel)
}

// ParseNode parses YAML bytes into a document node.
func ParseNode(data []byte, name string) (*yaml.Node, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}
	if node.Kind == 0 {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null"}, nil
	}
	return &node, nil
}

// ReadYAML decodes a YAML artifact into out.
func (s *Store) ReadYAML(rel string, out interface{}) error {
	data, err := os.ReadFile(s.Path(rel))
	if err != nil {
		return fmt.Errorf("reading %s: %w", rel, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parsing %s: %w", rel, err)
	}
	return nil
}

// ReadJSON decodes a JSON artifact into out.
func (s *Store) ReadJSON(rel string, out interface{}) error {
	data, err := os.ReadFile(s.Path(rel))
	if err != nil {
		return fmt.Errorf("reading %s: %w", rel, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parsing %s: %w", rel, err)
	}
	return nil
}

// ReadText returns a plain-text artifact.
func (s *Store) ReadText(rel string) (string, error) {
	data, err := os.ReadFile(s.Path(rel))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", rel, err)
	}
	return string(data), nil
}

// File is one artifact staged for writing.
type File struct {
	Path string
	Data []byte
}

// YAMLFile marshals v as a key-ordered YAML artifact.
func YAMLFile(rel string, v interface{}) (File, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return File{}, fmt.Errorf("marshaling %s: %w", rel, err)
	}
	if err := enc.Close(); err != nil {
		return File{}, fmt.Errorf("marshaling %s: %w", rel, err)
	}
	return File{Path: rel, Data: buf.Bytes()}, nil
}

// JSONFile marshals v as an indented JSON artifact.
func JSONFile(rel string, v interface{}) (File, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return File{}, fmt.Errorf("marshaling %s: %w", rel, err)
	}
	return File{Path: rel, Data: append(data, '\n')}, nil
}

// TextFile wraps plain text as an artifact.
func TextFile(rel, text string) File {
	return File{Path: rel, Data: []byte(text)}
}

// WriteYAML writes v as a YAML artifact.
func (s *Store) WriteYAML(rel string, v interface{}) error {
	f, err := YAMLFile(rel, v)
	if err != nil {
		return err
	}
	return s.Write(f)
}

// WriteJSON writes v as a JSON artifact.
func (s *Store) WriteJSON(rel string, v interface{}) error {
	f, err := JSONFile(rel, v)
	if err != nil {
		return err
	}
	return s.Write(f)
}

// WriteText writes a plain-text artifact.
func (s *Store) WriteText(rel, text string) error {
	return s.Write(TextFile(rel, text))
}

// Write replaces every file or none of them. Each file is staged to a temp
// file next to its target and every existing target is copied to a backup
// before the first rename. If any step fails, renamed targets are restored
// from their backups (or removed when they did not exist) and all temp files
// are deleted.
func (s *Store) Write(files ...File) error {
	staged := make([]string, 0, len(files))
	backups := make([]string, len(files))
	cleanup := func() {
		for _, tmp := range staged {
			if tmp != "" {
				os.Remove(tmp)
			}
		}
		for _, bak := range backups {
			if bak != "" {
				os.Remove(bak)
			}
		}
	}

	for _, f := range files {
		tmp, err := stageFile(s.Path(f.Path), f.Data)
		if err != nil {
			cleanup()
			return fmt.Errorf("staging %s: %w", f.Path, err)
		}
		staged = append(staged, tmp)
	}

	for i, f := range files {
		bak, err := backupFile(s.Path(f.Path))
		if err != nil {
			cleanup()
			return fmt.Errorf("backing up %s: %w", f.Path, err)
		}
		backups[i] = bak
	}

	for i, f := range files {
		if err := os.Rename(staged[i], s.Path(f.Path)); err != nil {
			s.rollback(files[:i], backups[:i])
			cleanup()
			return fmt.Errorf("renaming temp file for %s: %w", f.Path, err)
		}
		staged[i] = ""
	}
	cleanup()
	return nil
}

// rollback restores already renamed targets. A target without a backup did
// not exist before the write and is removed.
func (s *Store) rollback(files []File, backups []string) {
	for i, f := range files {
		target := s.Path(f.Path)
		if backups[i] == "" {
			os.Remove(target)
			continue
		}
		if err := os.Rename(backups[i], target); err == nil {
			backups[i] = ""
		}
	}
}

// stageFile writes data to a new temp file in target's directory.
func stageFile(target string, data []byte) (string, error) {
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", dir, err)
	}
	tmpFile, err := os.CreateTemp(dir, "."+filepath.Base(target)+"-*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmpFile.Chmod(0644); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("setting temp file mode: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("closing temp file: %w", err)
	}
	return tmpPath, nil
}

// backupFile copies an existing regular file at target to a temp file beside
// it and returns the copy's path, or "" when there is nothing to keep.
func backupFile(target string) (string, error) {
	info, err := os.Lstat(target)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && !info.Mode().IsRegular()) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(target)
	if err != nil {
		return "", err
	}
	return stageFile(target+".bak", data)
}

// IsNotExist reports whether err was caused by a missing artifact.
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
