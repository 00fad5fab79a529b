package shape

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lixenwraith/particle-morph/parameter"
)

// Kind enumerates target distributions
type Kind uint8

const (
	KindGalaxy Kind = iota
	KindHeart
	KindSaturn
	KindFlower
	KindText
)

var kindNames = [...]string{
	KindGalaxy: "galaxy",
	KindHeart:  "heart",
	KindSaturn: "saturn",
	KindFlower: "flower",
	KindText:   "text",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// Shape is a Kind plus the string payload for KindText
type Shape struct {
	Kind Kind
	Text string
}

// Text returns a text shape for s
func Text(s string) Shape {
	return Shape{Kind: KindText, Text: s}
}

func (s Shape) String() string {
	if s.Kind == KindText {
		return fmt.Sprintf("text(%q)", s.Text)
	}
	return s.Kind.String()
}

// ErrUnknownShape is returned by ParseShape for identifiers outside the selection set
var ErrUnknownShape = errors.New("unknown shape")

// textPrefix selects an arbitrary text shape, e.g. "text:Hello"
const textPrefix = "text:"

// ParseShape maps a selection identifier to a Shape
// "love" is the fixed text shape; "text:<s>" selects arbitrary text
func ParseShape(id string) (Shape, error) {
	trimmed := strings.TrimSpace(id)
	if len(trimmed) >= len(textPrefix) && strings.EqualFold(trimmed[:len(textPrefix)], textPrefix) {
		return Text(trimmed[len(textPrefix):]), nil
	}

	switch strings.ToLower(trimmed) {
	case "galaxy":
		return Shape{Kind: KindGalaxy}, nil
	case "heart":
		return Shape{Kind: KindHeart}, nil
	case "saturn":
		return Shape{Kind: KindSaturn}, nil
	case "flower":
		return Shape{Kind: KindFlower}, nil
	case "love":
		return Text(parameter.LoveText), nil
	}
	return Shape{}, fmt.Errorf("%w: %q", ErrUnknownShape, id)
}

// Selectable lists the identifiers offered to the selection UI, in display order
var Selectable = []string{"galaxy", "heart", "saturn", "flower", "love"}
