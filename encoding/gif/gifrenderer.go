// Package gif renders stacks of CRBM feature maps (filters or
// reconstruction chains) as frames of an animated grayscale GIF.
package gif

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io"
	"math"

	"github.com/golang/freetype/truetype"
	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/math/fixed"
	"gorgonia.org/tensor"
)

var regular *truetype.Font

const (
	dpi             = 144.0
	fontsize        = 12.0
	lineheight      = 1.2
	dummyLongString = `Epoch 100000, free energy -100000.000`

	zoom   = 6 // pixels per tensor cell
	gutter = 2 // pixels between maps
)

func init() {
	var err error
	if regular, err = truetype.Parse(gomono.TTF); err != nil {
		panic(err)
	}
}

var grayPalette = func() color.Palette {
	p := make(color.Palette, 256)
	for i := range p {
		p[i] = color.Gray{uint8(i)}
	}
	return p
}()

// Frame is one renderable snapshot of a layer.
type Frame interface {
	Planes() *tensor.Dense // (n, h, w) stack of maps to draw
	Epoch() int
	Caption() string
}

// Encoder accumulates frames into an animated GIF.
type Encoder struct {
	H, W int
	font.Drawer

	out *gif.GIF
	io.Writer
	face font.Face

	padH, padW  int // padding so everything don't start at the topleft
	initialized bool
}

// NewEncoder returns an Encoder. Assign Writer before calling Flush.
func NewEncoder() *Encoder {
	return &Encoder{
		H:    -1,
		W:    -1,
		padH: 10,
		padW: 10,

		Drawer: font.Drawer{
			Src: image.Black,
		},
		out: &gif.GIF{LoopCount: -1},
	}
}

// Encode renders one frame: the maps laid out in a near-square grid, the
// epoch and caption lines underneath. Values are normalized to the gray
// ramp per frame.
func (enc *Encoder) Encode(fr Frame) error {
	t := fr.Planes()
	shp := t.Shape()
	if len(shp) != 3 {
		return errors.Errorf("gif: want a (n, h, w) stack, got %v", shp)
	}
	n, ph, pw := shp[0], shp[1], shp[2]
	cols := int(math.Ceil(math.Sqrt(float64(n))))
	rows := (n + cols - 1) / cols

	dy := int(math.Ceil(fontsize * lineheight * dpi / 72))
	if !enc.initialized {
		// lazy init of specifications
		enc.face = truetype.NewFace(regular, &truetype.Options{
			Size:    fontsize,
			DPI:     dpi,
			Hinting: font.HintingFull,
		})
		enc.Drawer.Src = image.Black
		enc.Drawer.Face = enc.face

		gridW := cols*(pw*zoom+gutter) + gutter
		gridH := rows*(ph*zoom+gutter) + gutter
		textW := font.MeasureString(enc.Face, dummyLongString).Ceil()

		enc.W = maxInt(gridW, textW) + 2*enc.padW
		enc.H = gridH + 2*dy + 2*enc.padH
		enc.initialized = true
	}

	im := image.NewPaletted(image.Rect(0, 0, enc.W, enc.H), grayPalette)
	draw.Draw(im, im.Bounds(), image.White, image.ZP, draw.Src)

	data := t.Data().([]float32)
	lo, hi := data[0], data[0]
	for _, x := range data {
		if x < lo {
			lo = x
		}
		if x > hi {
			hi = x
		}
	}
	if hi == lo {
		hi = lo + 1
	}

	for p := 0; p < n; p++ {
		ox := enc.padW + (p%cols)*(pw*zoom+gutter) + gutter
		oy := enc.padH + (p/cols)*(ph*zoom+gutter) + gutter
		plane := data[p*ph*pw : (p+1)*ph*pw]
		for y := 0; y < ph; y++ {
			for x := 0; x < pw; x++ {
				g := uint8(255 * (plane[y*pw+x] - lo) / (hi - lo))
				for yy := 0; yy < zoom; yy++ {
					for xx := 0; xx < zoom; xx++ {
						im.SetColorIndex(ox+x*zoom+xx, oy+y*zoom+yy, g)
					}
				}
			}
		}
	}

	enc.Dst = im
	y := enc.padH + rows*(ph*zoom+gutter) + gutter + dy
	enc.Dot = fixed.P(enc.padW, y)
	enc.DrawString(fmt.Sprintf("Epoch %d", fr.Epoch()))
	y += dy
	enc.Dot = fixed.P(enc.padW, y)
	enc.DrawString(fr.Caption())

	enc.out.Image = append(enc.out.Image, im)
	enc.out.Delay = append(enc.out.Delay, 10)
	return nil
}

// Flush writes the gif into the writer
func (enc *Encoder) Flush() error { return gif.EncodeAll(enc.Writer, enc.out) }

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
