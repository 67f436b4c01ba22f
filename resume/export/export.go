// Package export turns a résumé view model into a downloadable A4 PDF.
package export

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"curriculum-backend/internal/shared/telemetry"
	"curriculum-backend/internal/shared/util"
	"curriculum-backend/resume/render"
	"curriculum-backend/resume/viewmodel"
)

const ContentTypePDF = "application/pdf"

var ErrUnknownTemplate = errors.New("unknown template")

// Artifact is a rendered export ready to be handed to the user.
type Artifact struct {
	FileName    string
	ContentType string
	Bytes       []byte
	Pages       int
}

// PDF renders vm with the template templateID. An unknown id yields ErrUnknownTemplate and no
// artifact.
func PDF(ctx context.Context, templateID string, vm *viewmodel.Resume) (Artifact, error) {
	if err := ctx.Err(); err != nil {
		return Artifact{}, err
	}
	tpl, ok := render.Lookup(templateID)
	if !ok {
		telemetry.Warn("export.unknown_template", map[string]any{"template": templateID})
		return Artifact{}, fmt.Errorf("%w: %q", ErrUnknownTemplate, templateID)
	}

	start := time.Now()
	if vm == nil {
		vm = &viewmodel.Resume{}
	}
	name := FileName(vm.ProfileInfo.FullName)

	body, pages, err := build(tpl, vm, strings.TrimSuffix(name, ".pdf"))
	if err != nil {
		telemetry.Error("export.failed", map[string]any{
			"template": tpl.ID,
			"error":    err.Error(),
		})
		return Artifact{}, err
	}

	telemetry.Info("export.rendered", map[string]any{
		"template":    tpl.ID,
		"pages":       pages,
		"bytes":       len(body),
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return Artifact{
		FileName:    name,
		ContentType: ContentTypePDF,
		Bytes:       body,
		Pages:       pages,
	}, nil
}

func build(tpl render.Template, vm *viewmodel.Resume, title string) (body []byte, pages int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("render %s: %v", tpl.ID, r)
		}
	}()

	root := tpl.PDFTree(vm)
	doc, m := newDocument(title)
	eng := &engine{m: m}
	eng.layout(root)

	top, bottom := pageMargins(root)
	laid := paginate(eng.ops, top, bottom)
	body, err = serialize(doc, laid)
	if err != nil {
		return nil, 0, err
	}
	return body, len(laid), nil
}

// FileName is the download name for a résumé owned by fullName.
func FileName(fullName string) string {
	base, err := util.SanitizeFileName(strings.TrimSpace(fullName))
	if err != nil {
		base = "resume"
	}
	return base + ".pdf"
}
