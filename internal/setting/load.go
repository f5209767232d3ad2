package setting

import (
	"encoding/json"
	"fmt"
	"os"
)

// File is the on-disk form of a RenderSetting. The background image is
// referenced by path and loaded by the caller.
type File struct {
	RenderSetting
	BackgroundImagePath string `json:"backgroundImage,omitempty"`
}

// Decode overlays the JSON document data onto the defaults. Keys that are
// absent keep their default value.
func Decode(data []byte) (File, error) {
	f := File{RenderSetting: Default()}
	if err := json.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("decode setting: %w", err)
	}
	if err := f.Validate(); err != nil {
		return File{}, err
	}
	return f, nil
}

// LoadFile reads and decodes the setting document at path.
func LoadFile(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read setting %s: %w", path, err)
	}
	return Decode(data)
}
