package gif

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io"
	"math"
	"strings"

	"github.com/chewxy/math32"
	neural "github.com/flexus404/Neural-Network"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/math/fixed"
)

var regular *truetype.Font

const (
	dpi        = 144.0
	fontsize   = 12.0
	lineheight = 1.2
	barWidth   = 20 // characters of the error bar at error 1.0
)

func init() {
	var err error
	if regular, err = truetype.Parse(gomono.TTF); err != nil {
		panic(err)
	}
}

var globPalette = color.Palette{
	color.Gray{0},
	color.Gray{253},
}

// Encoder renders the training progress of an ensemble, one frame per epoch.
// It implements neural.ProgressEncoder.
type Encoder struct {
	H, W int
	font.Drawer

	out *gif.GIF
	io.Writer
	face font.Face

	maxH, maxW  int // maxHeight and maxWidth
	padH, padW  int // padding so everything don't start at the topleft
	initialized bool
}

// NewEncoder makes an encoder that writes into w when flushed. Frames are at most h by w pixels.
func NewEncoder(out io.Writer, h, w int) *Encoder {
	return &Encoder{
		H:      -1,
		W:      -1,
		Writer: out,
		maxH:   h,
		maxW:   w,
		padH:   10,
		padW:   10,

		Drawer: font.Drawer{
			Src: image.Black,
		},
		out: &gif.GIF{LoopCount: -1},
	}
}

func lines(ms neural.MetaState) []string {
	errs := ms.Errors()
	best := ms.Best()
	retVal := []string{
		ms.Name(),
		fmt.Sprintf("Epoch %d", ms.Epoch()),
	}
	for i, e := range errs {
		mark := ' '
		if i == best {
			mark = '*'
		}
		retVal = append(retVal, fmt.Sprintf("%c%3d %8.6f %s", mark, i, e, bar(e)))
	}
	return retVal
}

func bar(e float32) string {
	if math32.IsNaN(e) || math32.IsInf(e, 0) {
		return "diverged"
	}
	n := int(math.Round(float64(math32.Min(e, 1)) * barWidth))
	if n < 0 {
		n = 0
	}
	return strings.Repeat("#", n)
}

// Encode renders the current state of the ensemble as a frame.
func (enc *Encoder) Encode(ms neural.MetaState) error {
	text := lines(ms)
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

		var maxW int
		longest := fmt.Sprintf("*%3d %8.6f %s", 0, 0.0, strings.Repeat("#", barWidth))
		for _, s := range append(text, longest) {
			maxW = maxInt(maxW, font.MeasureString(enc.Face, s).Ceil())
		}
		w := maxW + 2*enc.padW
		h := (len(text)+1)*dy + 2*enc.padH

		w = minInt(w, enc.maxW)
		h = minInt(h, enc.maxH)

		if w == enc.maxW {
			enc.padW = 0
		}
		if h == enc.maxH {
			enc.padH = 0
		}

		enc.H = h
		enc.W = w
		enc.initialized = true
	}

	im := image.NewPaletted(image.Rect(0, 0, enc.W, enc.H), globPalette)
	draw.Draw(im, im.Bounds(), image.White, image.Point{}, draw.Src)
	enc.Dst = im
	y := enc.padH + dy
	for _, s := range text {
		enc.Dot = fixed.P(enc.padW, y)
		enc.DrawString(s)
		y += dy
	}
	enc.out.Image = append(enc.out.Image, im)
	enc.out.Delay = append(enc.out.Delay, 10)
	return nil
}

// Flush writes the gif into the writer. The last frame is held longer.
func (enc *Encoder) Flush() error {
	if len(enc.out.Image) == 0 {
		return nil
	}
	enc.out.Delay[len(enc.out.Delay)-1] = 300
	return gif.EncodeAll(enc.Writer, enc.out)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
