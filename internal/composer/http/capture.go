package http

import (
	"fmt"
	"strings"

	"github.com/swapnilyadv/CloneX/internal/composer"
	"github.com/swapnilyadv/CloneX/internal/projects/domain"
)

// payloadFrom validates a capture request and builds its typed payload.
// Kind-specific rules live here, in front of the registry.
func (h *Handler) payloadFrom(req attachReq) (composer.Payload, error) {
	if err := h.validate.Struct(req); err != nil {
		return nil, err
	}

	switch domain.AttachmentKind(req.Kind) {
	case domain.KindDesignLink:
		if err := h.validate.Var(req.Value, "url,startsnotwith=javascript:"); err != nil {
			return nil, fmt.Errorf("value must be a link")
		}
		return composer.DesignLink{URL: strings.TrimSpace(req.Value)}, nil
	case domain.KindReferenceCode:
		if strings.TrimSpace(req.Value) == "" {
			return nil, fmt.Errorf("value must name a file")
		}
		return composer.ReferenceCode{Ref: req.Value}, nil
	case domain.KindImage:
		if err := h.validate.Var(req.Value, "datauri"); err != nil {
			return nil, fmt.Errorf("value must be a data URI")
		}
		return composer.Image{Data: req.Value, Preview: req.Preview}, nil
	case domain.KindStyleGuide:
		if strings.TrimSpace(req.Value) == "" {
			return nil, fmt.Errorf("style guide text is empty")
		}
		return composer.StyleGuide{Text: req.Value}, nil
	}
	return nil, fmt.Errorf("unknown kind %q", req.Kind)
}
