// Package schemas embeds the JSON Schemas that describe the content files under data/.
package schemas

import (
	"embed"
	"fmt"
)

// Schema file names, one per content document kind.
const (
	CV       = "cv.schema.json"
	Site     = "site.schema.json"
	Projects = "projects.schema.json"
)

//go:embed *.schema.json
var files embed.FS

// Read returns the raw bytes of an embedded schema.
func Read(name string) ([]byte, error) {
	data, err := files.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded schema %s: %w", name, err)
	}
	return data, nil
}

// Names lists every embedded schema.
func Names() []string {
	return []string{CV, Site, Projects}
}
