package imgui

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// WindowSettings is the persisted placement of a named window.
type WindowSettings struct {
	Name      string     `yaml:"name"`
	Pos       [2]float32 `yaml:"pos"`
	Size      [2]float32 `yaml:"size"`
	Collapsed bool       `yaml:"collapsed,omitempty"`
}

type settingsFile struct {
	Windows []WindowSettings `yaml:"windows"`
}

// WindowSettings returns the stored settings for name, creating an entry
// with def when none exists.
func (c *Context) WindowSettings(name string, def WindowSettings) *WindowSettings {
	if ws, ok := c.settings[name]; ok {
		return ws
	}
	def.Name = name
	ws := &def
	c.settings[name] = ws
	c.settingsDirty = true
	return ws
}

// MarkSettingsDirty schedules a save on Shutdown.
func (c *Context) MarkSettingsDirty() { c.settingsDirty = true }

func (c *Context) LoadIniSettingsFromDisk(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return c.LoadIniSettingsFromMemory(data)
}

func (c *Context) LoadIniSettingsFromMemory(data []byte) error {
	var f settingsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse settings: %w", err)
	}
	for _, ws := range f.Windows {
		if ws.Name == "" {
			continue
		}
		ws := ws
		c.settings[ws.Name] = &ws
	}
	return nil
}

// SaveIniSettingsToMemory serializes settings sorted by window name.
func (c *Context) SaveIniSettingsToMemory() ([]byte, error) {
	f := settingsFile{Windows: make([]WindowSettings, 0, len(c.settings))}
	for _, ws := range c.settings {
		f.Windows = append(f.Windows, *ws)
	}
	sort.Slice(f.Windows, func(i, j int) bool { return f.Windows[i].Name < f.Windows[j].Name })
	return yaml.Marshal(&f)
}

func (c *Context) SaveIniSettingsToDisk(path string) error {
	data, err := c.SaveIniSettingsToMemory()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write settings %q: %w", path, err)
	}
	c.settingsDirty = false
	return nil
}
