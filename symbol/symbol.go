/*
Package symbol derives the C identifiers used by a compiled sprite.

Every identifier is rooted at the sanitized sprite name, which is the
original name with each run of non-word characters collapsed to a single
underscore. Distinct names may sanitize to the same identifier, for example
"a!b" and "a_b"; nothing in this package tries to disambiguate them.
*/
package symbol

import (
	"fmt"
	"regexp"
)

var nonWord = regexp.MustCompile(`\W+`)

// Sanitize converts name into a valid C identifier.
func Sanitize(name string) string {
	return nonWord.ReplaceAllString(name, "_")
}

// Names derives every symbol for one sprite.
type Names struct {
	name string
}

// New returns the Names for the sprite called name. The name is sanitized
// first.
func New(name string) Names {
	return Names{
		name: Sanitize(name),
	}
}

// Name returns the sanitized sprite name
func (n Names) Name() string {
	return n.name
}

// Sprite returns the symbol of the sprite definition
func (n Names) Sprite() string {
	return "sprite_" + n.name
}

// Image returns the symbol of the image descriptor for frame
func (n Names) Image(frame int) string {
	return fmt.Sprintf("%s_image%d", n.Sprite(), frame)
}

// ImageData returns the symbol of the pixel array for frame
func (n Names) ImageData(frame int) string {
	return n.Image(frame) + "_data"
}

// Frame returns the symbol of the frame descriptor for frame
func (n Names) Frame(frame int) string {
	return fmt.Sprintf("%s_frame%d", n.Sprite(), frame)
}

// Frames returns the symbol of the frame pointer array
func (n Names) Frames() string {
	return n.Sprite() + "_frames"
}
