package service

import (
	"context"
	"io"

	"github.com/Badsnus/qrgen-studio/internal/domain/dto"
	"github.com/Badsnus/qrgen-studio/internal/domain/entity"
	"github.com/Badsnus/qrgen-studio/pkg/logger/types"
	qr "github.com/Badsnus/qrgen-studio/pkg/qrcode"
)

// Renderer is the rendering collaborator. Each call is independent of the previous ones.
type Renderer interface {
	Render(ctx context.Context, req dto.RenderRequest) (RenderedImage, error)
}

// RenderedImage is one drawing. Ready is closed once asynchronous assets (the logo) have
// been loaded or given up on.
type RenderedImage interface {
	Ready() <-chan struct{}
	Encode(w io.Writer, format qr.Format) error
}

type qrRenderer struct {
	renderer *qr.Renderer
}

// NewQRRenderer adapts the pkg/qrcode renderer to Renderer.
func NewQRRenderer(logger *types.Logger) Renderer {
	return qrRenderer{renderer: qr.NewRenderer(logger)}
}

func (r qrRenderer) Render(ctx context.Context, req dto.RenderRequest) (RenderedImage, error) {
	img, err := r.renderer.Render(ctx, req.Options())
	if err != nil {
		return nil, err
	}
	return img, nil
}

// BuildRenderRequest resolves a style into render options for the given payload and size.
// Both the preview and the export go through here, so a paid export looks exactly like the
// preview it was bought from.
func BuildRenderRequest(style entity.StyleConfig, data string, size int) dto.RenderRequest {
	return dto.RenderRequest{
		Data:       data,
		Size:       size,
		Background: style.EffectiveBackground(),
		DotPattern: style.DotPattern,
		DotFill:    style.EffectiveDotColor(),
		CornerSquare: dto.Corner{
			Style: style.CornerStyle,
			Color: style.EffectiveCornerColor(entity.LayerCornerSquare),
		},
		CornerDot: dto.Corner{
			Style: style.CornerStyle,
			Color: style.EffectiveCornerColor(entity.LayerCornerDot),
		},
		Logo: style.Logo,
	}
}
