package platform

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/hubastard/imbridge/engine/core"
)

var keyTable = map[glfw.Key]core.Key{
	glfw.KeySpace:        core.KeySpace,
	glfw.KeyApostrophe:   core.KeyApostrophe,
	glfw.KeyComma:        core.KeyComma,
	glfw.KeyMinus:        core.KeyMinus,
	glfw.KeyPeriod:       core.KeyPeriod,
	glfw.KeySlash:        core.KeySlash,
	glfw.KeySemicolon:    core.KeySemicolon,
	glfw.KeyEqual:        core.KeyEqual,
	glfw.KeyLeftBracket:  core.KeyLeftBracket,
	glfw.KeyBackslash:    core.KeyBackslash,
	glfw.KeyRightBracket: core.KeyRightBracket,
	glfw.KeyGraveAccent:  core.KeyGraveAccent,
	glfw.KeyEscape:       core.KeyEscape,
	glfw.KeyEnter:        core.KeyEnter,
	glfw.KeyTab:          core.KeyTab,
	glfw.KeyBackspace:    core.KeyBackspace,
	glfw.KeyInsert:       core.KeyInsert,
	glfw.KeyDelete:       core.KeyDelete,
	glfw.KeyRight:        core.KeyRight,
	glfw.KeyLeft:         core.KeyLeft,
	glfw.KeyDown:         core.KeyDown,
	glfw.KeyUp:           core.KeyUp,
	glfw.KeyPageUp:       core.KeyPageUp,
	glfw.KeyPageDown:     core.KeyPageDown,
	glfw.KeyHome:         core.KeyHome,
	glfw.KeyEnd:          core.KeyEnd,
	glfw.KeyCapsLock:     core.KeyCapsLock,
	glfw.KeyKPEnter:      core.KeyKPEnter,
	glfw.KeyLeftShift:    core.KeyLeftShift,
	glfw.KeyLeftControl:  core.KeyLeftControl,
	glfw.KeyLeftAlt:      core.KeyLeftAlt,
	glfw.KeyLeftSuper:    core.KeyLeftSuper,
	glfw.KeyRightShift:   core.KeyRightShift,
	glfw.KeyRightControl: core.KeyRightControl,
	glfw.KeyRightAlt:     core.KeyRightAlt,
	glfw.KeyRightSuper:   core.KeyRightSuper,
	glfw.KeyMenu:         core.KeyMenu,
}

func translateKey(k glfw.Key) core.Key {
	switch {
	case k >= glfw.Key0 && k <= glfw.Key9:
		return core.Key0 + core.Key(k-glfw.Key0)
	case k >= glfw.KeyA && k <= glfw.KeyZ:
		return core.KeyA + core.Key(k-glfw.KeyA)
	case k >= glfw.KeyF1 && k <= glfw.KeyF12:
		return core.KeyF1 + core.Key(k-glfw.KeyF1)
	}
	if ck, ok := keyTable[k]; ok {
		return ck
	}
	return core.KeyUnknown
}

func translateAction(a glfw.Action) core.Action {
	switch a {
	case glfw.Press:
		return core.ActionPress
	case glfw.Repeat:
		return core.ActionRepeat
	default:
		return core.ActionRelease
	}
}

func translateMods(m glfw.ModifierKey) core.Mod {
	var out core.Mod
	if m&glfw.ModShift != 0 {
		out |= core.ModShift
	}
	if m&glfw.ModControl != 0 {
		out |= core.ModCtrl
	}
	if m&glfw.ModAlt != 0 {
		out |= core.ModAlt
	}
	if m&glfw.ModSuper != 0 {
		out |= core.ModSuper
	}
	return out
}
