package synthtext

import (
	"errors"

	"github.com/gosynth/synthtext/fontkit"
	"github.com/gosynth/synthtext/reliability"
)

// Sentinel errors for the layout engine.
var (
	// ErrEmptyText is returned when a layout is requested for an empty
	// string.
	ErrEmptyText = errors.New("synthtext: empty text")

	// ErrNoUsableFont is returned when no candidate font is eligible and
	// able to render the requested text.
	ErrNoUsableFont = errors.New("synthtext: no usable font for text")
)

// ClassifyReason maps an opaque error from the external rendering engine
// to a reliability reason code: engine-originated failures (font parsing,
// broken glyph tables) classify as render_error, anything else as
// unknown_error.
//
// The caller records the failure and re-raises the error unchanged; this
// module never swallows failures it did not originate.
func ClassifyReason(err error) string {
	var ee *fontkit.EngineError
	if errors.As(err, &ee) {
		return reliability.ReasonRender
	}
	return reliability.ReasonUnknown
}
