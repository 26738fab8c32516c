// SPDX-License-Identifier: MIT

package treeio

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/bayestree/cliquetree"
)

// Encode writes the tree rooted at root to w as a YAML document.
func Encode(w io.Writer, root *cliquetree.Clique) error {
	doc, err := FromTree(root)
	if err != nil {
		return fmt.Errorf("treeio: encode: %w", err)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err = enc.Encode(doc); err != nil {
		return fmt.Errorf("treeio: encode: %w", err)
	}
	return enc.Close()
}

// Decode reads one YAML document from r and rebuilds its tree. Unknown
// fields are rejected.
func Decode(r io.Reader) (*cliquetree.Clique, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("treeio: decode: %w", ErrMissingRoot)
		}
		return nil, fmt.Errorf("treeio: decode: %w", err)
	}
	root, err := doc.Tree()
	if err != nil {
		return nil, fmt.Errorf("treeio: decode: %w", err)
	}
	return root, nil
}

// Marshal is Encode into a byte slice.
func Marshal(root *cliquetree.Clique) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, root); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal is Decode from a byte slice.
func Unmarshal(data []byte) (*cliquetree.Clique, error) {
	return Decode(bytes.NewReader(data))
}

// Save writes the tree to path, creating parent directories as needed.
func Save(path string, root *cliquetree.Clique) error {
	data, err := Marshal(root)
	if err != nil {
		return err
	}
	if err = os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("treeio: save: %w", err)
	}
	if err = os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("treeio: save: %w", err)
	}
	return nil
}

// Load reads the tree stored at path.
func Load(path string) (*cliquetree.Clique, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("treeio: load: %w", err)
	}
	return Unmarshal(data)
}
