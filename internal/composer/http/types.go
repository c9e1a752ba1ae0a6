package http

import (
	"github.com/go-playground/validator/v10"

	"github.com/swapnilyadv/CloneX/internal/composer"
	"github.com/swapnilyadv/CloneX/internal/projects/domain"
)

// Handler exposes the signed-in user's draft.
type Handler struct {
	sessions *composer.Sessions
	validate *validator.Validate
}

func New(sessions *composer.Sessions) *Handler {
	return &Handler{
		sessions: sessions,
		validate: validator.New(),
	}
}

type promptReq struct {
	Prompt string `json:"prompt"`
}

type modelReq struct {
	Model string `json:"model"`
}

type attachReq struct {
	Kind    string `json:"kind" validate:"required,oneof=design-link reference-code image style-guide"`
	Value   string `json:"value" validate:"required"`
	Name    string `json:"name" validate:"required,max=200"`
	Preview string `json:"preview,omitempty" validate:"omitempty,datauri"`
}

type attachmentView struct {
	ID      string                `json:"id"`
	Kind    domain.AttachmentKind `json:"kind"`
	Value   string                `json:"value"`
	Name    string                `json:"name"`
	Preview string                `json:"preview,omitempty"`
}

type draftView struct {
	Prompt      string           `json:"prompt"`
	Model       domain.Model     `json:"model"`
	Attachments []attachmentView `json:"attachments"`
	InFlight    bool             `json:"in_flight"`
	CanSubmit   bool             `json:"can_submit"`
}

func toAttachmentView(a composer.Attachment) attachmentView {
	return attachmentView{
		ID:      a.ID,
		Kind:    a.Kind(),
		Value:   a.Payload.Value(),
		Name:    a.Name,
		Preview: a.Preview(),
	}
}

func toDraftView(d composer.Draft) draftView {
	items := make([]attachmentView, 0, len(d.Attachments))
	for _, a := range d.Attachments {
		items = append(items, toAttachmentView(a))
	}
	return draftView{
		Prompt:      d.Prompt,
		Model:       d.Model,
		Attachments: items,
		InFlight:    d.InFlight,
		CanSubmit:   d.CanSubmit,
	}
}
