package composer

import "github.com/swapnilyadv/CloneX/internal/projects/domain"

// Sanitize reduces staged attachments to their persisted form.
// Preview data is a local rendering aid and is always dropped here.
func Sanitize(items []Attachment) []domain.Attachment {
	out := make([]domain.Attachment, 0, len(items))
	for _, a := range items {
		out = append(out, domain.Attachment{
			Kind:  a.Kind(),
			Value: a.Payload.Value(),
			Name:  a.Name,
		})
	}
	return out
}

// BuildRequest assembles the create payload for a draft. The prompt is stored
// verbatim; only the derived name is truncated.
func BuildRequest(prompt string, model domain.Model, items []Attachment) domain.CreateProjectRequest {
	return domain.CreateProjectRequest{
		Name:        domain.DeriveName(prompt),
		Prompt:      prompt,
		Model:       model,
		Attachments: Sanitize(items),
	}
}
