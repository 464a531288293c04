// Package logo prepares user-supplied logo images for embedding in a QR code.
package logo

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/nfnt/resize"
	_ "golang.org/x/image/webp"
)

const (
	DefaultMaxSize = 150        // px, longest side
	MaxEncodedSize = 100 * 1024 // bytes of payload before base64
)

// base64 inflates by roughly 4/3 plus the data URL header.
const base64Overhead = 1.37

// ErrDecode is returned when the input is not an image in a supported format.
var ErrDecode = errors.New("logo: failed to load image")

// Result is a compressed logo ready to store in a style config.
type Result struct {
	DataURL        string
	OriginalWidth  int
	OriginalHeight int
	NewWidth       int
	NewHeight      int
	WasCompressed  bool
}

// Notice describes the result for display, e.g. "Logo resized from 800x600 to 150x113 (12 kB)".
func (r *Result) Notice() string {
	size := humanize.Bytes(uint64(len(r.DataURL)))
	if !r.WasCompressed {
		return fmt.Sprintf("Logo added (%dx%d, %s)", r.NewWidth, r.NewHeight, size)
	}
	return fmt.Sprintf("Logo resized from %dx%d to %dx%d (%s)",
		r.OriginalWidth, r.OriginalHeight, r.NewWidth, r.NewHeight, size)
}

// Compress decodes an image, scales it down so neither side exceeds maxSize and encodes it
// as a data URL. PNG is tried first; when that is too large JPEG is used with decreasing
// quality.
func Compress(r io.Reader, maxSize int) (*Result, error) {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	b := src.Bounds()
	res := &Result{OriginalWidth: b.Dx(), OriginalHeight: b.Dy()}
	res.NewWidth, res.NewHeight = fit(b.Dx(), b.Dy(), maxSize)
	res.WasCompressed = res.NewWidth != res.OriginalWidth || res.NewHeight != res.OriginalHeight

	img := src
	if res.WasCompressed {
		img = resize.Resize(uint(res.NewWidth), uint(res.NewHeight), src, resize.Lanczos3)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	res.DataURL = DataURL("image/png", buf.Bytes())

	limit := int(MaxEncodedSize * base64Overhead)
	for quality := 90; len(res.DataURL) > limit && quality >= 50; quality -= 10 {
		buf.Reset()
		if err := jpeg.Encode(&buf, flatten(img), &jpeg.Options{Quality: quality}); err != nil {
			return nil, err
		}
		res.DataURL = DataURL("image/jpeg", buf.Bytes())
	}
	return res, nil
}

// fit scales w x h down to fit in a box x box square, keeping the aspect ratio.
func fit(w, h, box int) (int, int) {
	if w <= box && h <= box {
		return w, h
	}
	ratio := math.Min(float64(box)/float64(w), float64(box)/float64(h))
	nw := int(math.Round(float64(w) * ratio))
	nh := int(math.Round(float64(h) * ratio))
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	return nw, nh
}

// flatten draws img over white; JPEG has no alpha channel.
func flatten(img image.Image) image.Image {
	out := image.NewRGBA(img.Bounds())
	draw.Draw(out, out.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Over)
	return out
}

// DataURL builds a base64 data URL.
func DataURL(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// Load decodes a logo given either as a data URL or as a file path.
func Load(src string) (image.Image, error) {
	var r io.Reader
	if strings.HasPrefix(src, "data:") {
		comma := strings.IndexByte(src, ',')
		if comma < 0 || !strings.Contains(src[:comma], ";base64") {
			return nil, fmt.Errorf("%w: malformed data url", ErrDecode)
		}
		r = base64.NewDecoder(base64.StdEncoding, strings.NewReader(src[comma+1:]))
	} else {
		f, err := os.Open(src)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return img, nil
}
