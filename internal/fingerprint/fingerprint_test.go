package fingerprint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompute_Deterministic(t *testing.T) {
	text := "Sample text"
	assert.Equal(t, Compute(text), Compute(text))
	assert.Len(t, Compute(text), Size)
}

func TestCompute_DistinctContent(t *testing.T) {
	assert.NotEqual(t, Compute("Sample text"), Compute("Sample text."))
	assert.NotEqual(t, Compute("sample text"), Compute("Sample text"))
}

func TestCompute_IgnoresSurroundingWhitespace(t *testing.T) {
	assert.Equal(t, Compute("Sample text"), Compute("  Sample text\n"))
}

func TestCompute_KeepsInnerWhitespace(t *testing.T) {
	assert.NotEqual(t, Compute("Sample text"), Compute("Sample  text"))
}

func TestCompute_UnicodeComposition(t *testing.T) {
	composed := "caf\u00e9"
	decomposed := "cafe\u0301"
	assert.NotEqual(t, composed, decomposed)
	assert.Equal(t, Compute(composed), Compute(decomposed))
}

func TestCompute_EmptyString(t *testing.T) {
	// sha256 of the empty string
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", Compute(""))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "a b", Normalize("\t a b \n"))
}
