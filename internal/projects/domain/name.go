package domain

// NameLimit is the number of characters of the prompt kept in a project name.
const NameLimit = 40

const ellipsis = "…"

// DeriveName builds a display name from a prompt: the prompt itself when it fits,
// otherwise its first NameLimit characters followed by an ellipsis.
// Counting is done in runes so multi-byte prompts are never split mid-character.
func DeriveName(prompt string) string {
	r := []rune(prompt)
	if len(r) <= NameLimit {
		return prompt
	}
	return string(r[:NameLimit]) + ellipsis
}
