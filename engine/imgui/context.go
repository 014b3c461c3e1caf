package imgui

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/hubastard/imbridge/engine/text"
)

// ErrInvalidFrame is returned by NewFrame when IO holds values the frame
// cannot start with.
var ErrInvalidFrame = errors.New("imgui: invalid frame input")

const defaultIniFilename = "imgui.ini"

// Context owns IO, the font atlas and the per-frame draw lists.
type Context struct {
	io    *IO
	fonts *FontAtlas

	iniFilename    string
	settings       map[string]*WindowSettings
	settingsLoaded bool
	settingsDirty  bool

	background *DrawList
	foreground *DrawList
	lists      map[string]*DrawList
	order      []*DrawList // named lists in first-use order this frame

	inFrame    bool
	frameCount int
	drawData   DrawData
}

func CreateContext() *Context {
	return &Context{
		io:          newIO(),
		fonts:       &FontAtlas{},
		iniFilename: defaultIniFilename,
		settings:    make(map[string]*WindowSettings),
		background:  newDrawList("##Background"),
		foreground:  newDrawList("##Foreground"),
		lists:       make(map[string]*DrawList),
	}
}

func (c *Context) IO() *IO { return c.io }
func (c *Context) Fonts() *FontAtlas { return c.fonts }
func (c *Context) IniFilename() string { return c.iniFilename }
func (c *Context) FrameCount() int { return c.frameCount }

// SetIniFilename sets where window settings persist. Empty disables
// persistence.
func (c *Context) SetIniFilename(name string) { c.iniFilename = name }

// NewFrame validates IO, updates derived input state and resets every
// draw list. The font atlas must have been built (renderers do this).
func (c *Context) NewFrame() error {
	io := c.io
	switch {
	case !c.fonts.IsBuilt():
		return fmt.Errorf("%w: font atlas not built", ErrInvalidFrame)
	case io.DisplaySize[0] < 0 || io.DisplaySize[1] < 0:
		return fmt.Errorf("%w: display size %v", ErrInvalidFrame, io.DisplaySize)
	case !(io.DeltaTime > 0):
		return fmt.Errorf("%w: delta time %v", ErrInvalidFrame, io.DeltaTime)
	}
	if io.DisplayFramebufferScale[0] <= 0 || io.DisplayFramebufferScale[1] <= 0 {
		io.DisplayFramebufferScale = [2]float32{1, 1}
	}
	if io.FontGlobalScale <= 0 {
		io.FontGlobalScale = 1
	}

	if !c.settingsLoaded {
		c.settingsLoaded = true
		if c.iniFilename != "" {
			if err := c.LoadIniSettingsFromDisk(c.iniFilename); err != nil {
				slog.Warn("imgui: load settings", "file", c.iniFilename, "err", err)
			}
		}
	}

	io.updateMouse()

	c.background.reset(c)
	c.foreground.reset(c)
	for _, dl := range c.order {
		dl.reset(c)
	}
	c.order = c.order[:0]

	c.frameCount++
	c.inFrame = true
	return nil
}

// DrawList returns the named list for this frame, creating it on first
// use. Lists render in first-use order between background and foreground.
func (c *Context) DrawList(name string) *DrawList {
	dl, ok := c.lists[name]
	if !ok {
		dl = newDrawList(name)
		c.lists[name] = dl
	}
	for _, o := range c.order {
		if o == dl {
			return dl
		}
	}
	dl.reset(c)
	c.order = append(c.order, dl)
	return dl
}

func (c *Context) BackgroundDrawList() *DrawList { return c.background }
func (c *Context) ForegroundDrawList() *DrawList { return c.foreground }

// Font returns the default face, or nil before the atlas is built.
func (c *Context) Font() *text.Font { return c.fonts.Font(0) }

// CalcTextSize measures s at size pixels (0 selects the font size).
func (c *Context) CalcTextSize(s string, size float32) (w, h float32) {
	f := c.Font()
	if f == nil {
		return 0, 0
	}
	if size <= 0 {
		size = f.SizePx * c.io.FontGlobalScale
	}
	return text.MeasureText(f, s, size)
}

// Render ends the frame and returns its draw data. The result stays
// valid until the next NewFrame. Calling Render outside a frame returns
// draw data with Valid unset.
func (c *Context) Render() *DrawData {
	dd := &c.drawData
	*dd = DrawData{CmdLists: dd.CmdLists[:0]}
	if !c.inFrame {
		return dd
	}
	c.inFrame = false

	add := func(dl *DrawList) {
		dl.finish()
		if len(dl.CmdBuffer) == 0 {
			return
		}
		dd.CmdLists = append(dd.CmdLists, dl)
		dd.TotalVtxCount += len(dl.VtxBuffer)
		dd.TotalIdxCount += len(dl.IdxBuffer)
	}
	add(c.background)
	for _, dl := range c.order {
		add(dl)
	}
	add(c.foreground)

	io := c.io
	dd.Valid = true
	dd.DisplaySize = io.DisplaySize
	dd.FramebufferScale = io.DisplayFramebufferScale

	io.inputQueue = io.inputQueue[:0]
	return dd
}

// Shutdown persists window settings when an ini filename is set and
// releases the font atlas.
func (c *Context) Shutdown() error {
	var err error
	if c.iniFilename != "" && c.settingsDirty {
		err = c.SaveIniSettingsToDisk(c.iniFilename)
	}
	c.fonts.Clear()
	return err
}
