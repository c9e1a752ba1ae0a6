package domain

// Model identifies a generation model a project is built with.
type Model string

const (
	ModelGPT4     Model = "GPT-4"
	ModelGPT4o    Model = "GPT-4o"
	ModelDeepSeek Model = "DeepSeek"
	ModelClaude   Model = "Claude"
	ModelCustom   Model = "Custom"
)

// DefaultModel is the balanced model a fresh draft starts with.
const DefaultModel = ModelGPT4o

var catalogue = []Model{ModelGPT4, ModelGPT4o, ModelDeepSeek, ModelClaude, ModelCustom}

// Models returns the selectable models in display order.
func Models() []Model {
	out := make([]Model, len(catalogue))
	copy(out, catalogue)
	return out
}

// Known reports whether m is in the catalogue.
func (m Model) Known() bool {
	for _, c := range catalogue {
		if c == m {
			return true
		}
	}
	return false
}
