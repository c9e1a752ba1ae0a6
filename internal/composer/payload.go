package composer

import "github.com/swapnilyadv/CloneX/internal/projects/domain"

// Payload is the kind-specific value of a staged attachment.
// Each variant carries exactly the shape its kind allows.
type Payload interface {
	Kind() domain.AttachmentKind
	Value() string
}

// DesignLink points at an external design file.
type DesignLink struct {
	URL string
}

func (DesignLink) Kind() domain.AttachmentKind { return domain.KindDesignLink }
func (p DesignLink) Value() string             { return p.URL }

// ReferenceCode is a filename or opaque reference to an uploaded codebase.
type ReferenceCode struct {
	Ref string
}

func (ReferenceCode) Kind() domain.AttachmentKind { return domain.KindReferenceCode }
func (p ReferenceCode) Value() string             { return p.Ref }

// Image is a data-encoded image. Preview is a local rendering hint and is
// never persisted.
type Image struct {
	Data    string
	Preview string
}

func (Image) Kind() domain.AttachmentKind { return domain.KindImage }
func (p Image) Value() string             { return p.Data }

// StyleGuide is pasted free text.
type StyleGuide struct {
	Text string
}

func (StyleGuide) Kind() domain.AttachmentKind { return domain.KindStyleGuide }
func (p StyleGuide) Value() string             { return p.Text }

// Attachment is one staged item in a draft.
type Attachment struct {
	ID      string
	Name    string
	Payload Payload
}

func (a Attachment) Kind() domain.AttachmentKind { return a.Payload.Kind() }

// Preview returns the rendering hint for image attachments, or "".
func (a Attachment) Preview() string {
	if img, ok := a.Payload.(Image); ok {
		return img.Preview
	}
	return ""
}
