package ui

import (
	"github.com/hubastard/imbridge/engine/colors"
	"github.com/hubastard/imbridge/engine/imgui"
)

// ===== Label =====

type LabelProps struct {
	ID       int
	Text     string
	FontSize float32
	Color    colors.Color
	Sizing   Sizing
}

func Label(p LabelProps) {
	ctx := current
	// Measure during "record" phase
	w, h := ctx.R.Measure(p.Text, p.FontSize)

	sz := p.Sizing
	if sz.WMode == SizeFixed {
		w = sz.WVal
	}
	if sz.HMode == SizeFixed {
		h = sz.HVal
	}

	if p.Color == colors.Transparent {
		p.Color = colors.White
	}

	iCmd := emit(ctx, cmd{
		kind:     cmdLabel,
		id:       p.ID,
		text:     p.Text,
		fontSize: p.FontSize,
		color:    p.Color,
	})

	addItem(ctx, item{kind: cmdLabel, iCmd: iCmd, w: w, h: h})
}

// ===== Button =====

type ButtonProps struct {
	ID       int
	Text     string
	FontSize float32
	TextCol  colors.Color
	Bg       colors.Color
	Padding  Insets4
	// Sizing modes: Fit (by default), Px, or Expand
	Sizing *Sizing
}

// Button records a button and reports whether it was clicked. Clicks are
// detected while painting, so they surface on the frame after release.
func Button(p ButtonProps) (clicked bool) {
	ctx := current
	tw, th := ctx.R.Measure(p.Text, p.FontSize)
	w := tw + p.Padding.L + p.Padding.R
	h := th + p.Padding.T + p.Padding.B

	sz := Fit()
	if p.Sizing != nil {
		sz = *p.Sizing
	}
	if sz.WMode == SizeFixed {
		w = sz.WVal
	}
	if sz.HMode == SizeFixed {
		h = sz.HVal
	}

	if p.TextCol == colors.Transparent {
		p.TextCol = colors.White
	}

	iCmd := emit(ctx, cmd{
		kind:     cmdButton,
		id:       p.ID,
		text:     p.Text,
		fontSize: p.FontSize,
		color:    p.TextCol,
		bg:       p.Bg,
	})

	addItem(ctx, item{kind: cmdButton, iCmd: iCmd, w: w, h: h})

	st := ctx.state[p.ID]
	if st.clicked {
		st.clicked = false
		ctx.state[p.ID] = st
		return true
	}
	return false
}

// ===== Image =====

type ImageProps struct {
	ID      int
	Texture imgui.TextureID
	W, H    float32
}

func Image(p ImageProps) {
	ctx := current
	iCmd := emit(ctx, cmd{kind: cmdImage, id: p.ID, tex: p.Texture})
	addItem(ctx, item{kind: cmdImage, iCmd: iCmd, w: p.W, h: p.H})
}

// ===== Internal: record & resolve =====

func emit(ctx *Ctx, c cmd) int {
	if len(ctx.cmds) == cap(ctx.cmds) {
		return -1
	}
	ctx.cmds = append(ctx.cmds, c)
	return len(ctx.cmds) - 1
}

func resolveWidget(ctx *Ctx, c *cmd) {
	switch c.kind {
	case cmdBgQuad:
		ctx.R.DrawRect(c.x, c.y, c.w, c.h, c.bg)
	case cmdLabel:
		ctx.R.DrawText(c.x, c.y, c.text, c.fontSize, c.color)
	case cmdButton:
		resolveButton(ctx, c)
	case cmdImage:
		ctx.R.DrawImage(c.tex, c.x, c.y, c.w, c.h)
	case cmdClipPush:
		ctx.R.PushClip(c.x, c.y, c.w, c.h)
	case cmdClipPop:
		ctx.R.PopClip()
	}
}

func resolveButton(ctx *Ctx, c *cmd) {
	// hit-test
	hot := pointInCmd(c, ctx.I.MouseX, ctx.I.MouseY)
	st := ctx.state[c.id]

	// active = mouse down started inside
	if ctx.I.MousePressed && hot {
		st.active = true
	}
	if ctx.I.MouseReleased {
		if st.active && hot {
			st.clicked = true
		}
		st.active = false
	}
	st.hot = hot
	ctx.state[c.id] = st

	// simple visual feedback
	bg := c.bg
	if st.active {
		bg = bg.Scale(0.85)
	} else if st.hot {
		bg = bg.Scale(1.15)
	}
	if bg[3] > 0 {
		ctx.R.DrawRect(c.x, c.y, c.w, c.h, bg)
	}

	// draw label centered inside
	tw, th := ctx.R.Measure(c.text, c.fontSize)
	tx := c.x + (c.w-tw)*0.5
	ty := c.y + (c.h-th)*0.5
	ctx.R.DrawText(tx, ty, c.text, c.fontSize, c.color)
}

func pointInCmd(c *cmd, x, y float32) bool {
	return x >= c.x && x <= c.x+c.w && y >= c.y && y <= c.y+c.h
}
