package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Astronomy & Physics", "astronomy-and-physics"},
		{"Topic A", "topic-a"},
		{"  Leading and trailing  ", "leading-and-trailing"},
		{"Art, Design / Craft", "art-design-craft"},
		{"What's up?!", "whats-up"},
		{"(Bio)chemistry", "biochemistry"},
		{"multi---dash__under", "multi-dash-under"},
		{"Café Crème", "cafe-creme"},
		{"Ünïcödé", "unicode"},
		{"R&D", "randd"},
		{"100% fun", "100percent-fun"},
		{"", ""},
		{"!!!", ""},
		{"already-slugged", "already-slugged"},
		{"ℌistory", "history"},
		{"ᴬrt", "art"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Make(tt.in))
		})
	}
}

func TestMake_PunctuationVariantsCollapse(t *testing.T) {
	assert.Equal(t, Make("Astronomy & Physics"), Make("astronomy and physics"))
	assert.Equal(t, Make("Astronomy & Physics"), Make("Astronomy  &  Physics."))
	assert.Equal(t, Make("Science-Fiction"), Make("science fiction"))
	assert.Equal(t, Make("Real numbers"), Make("ℝeal numbers"))
}

func TestMake_Idempotent(t *testing.T) {
	inputs := []string{
		"Astronomy & Physics",
		"Café Crème",
		"  __weird--spacing__  ",
		"İstanbul",
		"Straße 5",
		"日本語 テキスト",
		"a.b.c",
		"ℌistory",
		"ᴬrt",
		"ℝeal numbers",
		"Ⅻ Roman",
	}
	for _, in := range inputs {
		once := Make(in)
		assert.Equal(t, once, Make(once), "input %q", in)
	}
}
