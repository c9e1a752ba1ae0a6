package domain

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestDeriveName(t *testing.T) {
	t.Run("short prompts are kept as-is", func(t *testing.T) {
		for _, p := range []string{"", "Build a todo app", strings.Repeat("x", NameLimit)} {
			assert.Equal(t, p, DeriveName(p))
		}
	})

	t.Run("long prompts are cut to the limit plus an ellipsis", func(t *testing.T) {
		for _, n := range []int{NameLimit + 1, 60, 500} {
			p := strings.Repeat("A", n)
			name := DeriveName(p)
			assert.Equal(t, strings.Repeat("A", NameLimit)+"…", name)
			assert.Equal(t, NameLimit+1, utf8.RuneCountInString(name))
		}
	})

	t.Run("multi-byte characters are not split", func(t *testing.T) {
		p := strings.Repeat("日", 45)
		name := DeriveName(p)
		assert.True(t, utf8.ValidString(name))
		assert.Equal(t, strings.Repeat("日", NameLimit)+"…", name)
	})
}

func TestModels(t *testing.T) {
	assert.True(t, DefaultModel.Known())
	assert.Contains(t, Models(), DefaultModel)
	assert.False(t, Model("GPT-9").Known())
	assert.False(t, Model("").Known())

	list := Models()
	list[0] = "mutated"
	assert.Equal(t, ModelGPT4, Models()[0])
}

func TestAttachmentKind_Valid(t *testing.T) {
	for _, k := range []AttachmentKind{KindDesignLink, KindReferenceCode, KindImage, KindStyleGuide} {
		assert.True(t, k.Valid(), string(k))
	}
	assert.False(t, AttachmentKind("figma").Valid())
}
