package domain

import "time"

// AttachmentKind names the shape of an attachment's value.
type AttachmentKind string

const (
	KindDesignLink    AttachmentKind = "design-link"
	KindReferenceCode AttachmentKind = "reference-code"
	KindImage         AttachmentKind = "image"
	KindStyleGuide    AttachmentKind = "style-guide"
)

// Valid reports whether k is one of the known kinds.
func (k AttachmentKind) Valid() bool {
	switch k {
	case KindDesignLink, KindReferenceCode, KindImage, KindStyleGuide:
		return true
	}
	return false
}

// Attachment is the persisted form of a staged attachment.
// Preview data never reaches this type.
type Attachment struct {
	Kind  AttachmentKind `json:"kind"`
	Value string         `json:"value"`
	Name  string         `json:"name"`
}

// Project represents a single build project owned by a user.
// It is intentionally storage-agnostic and used across repository and HTTP layers.
type Project struct {
	ID          string       `json:"id"`
	OwnerID     string       `json:"owner_id"`
	Name        string       `json:"name"`
	Prompt      string       `json:"prompt"`
	Model       Model        `json:"model"`
	Attachments []Attachment `json:"attachments"`
	Starred     bool         `json:"starred"`
	CreatedAt   time.Time    `json:"created_at"`
}

// CreateProjectRequest is the payload handed to the project store on submit.
type CreateProjectRequest struct {
	Name        string       `json:"name"`
	Prompt      string       `json:"prompt"`
	Model       Model        `json:"model"`
	Attachments []Attachment `json:"attachments"`
}
