package keyframe

import (
	"github.com/tphakala/go-keyframe-reducer/internal/layout"
	"github.com/tphakala/go-keyframe-reducer/internal/parallel"
)

// Processing defaults
const (
	DefaultBlockSize = parallel.DefaultBlockSize // Animations per parallel task
	DefaultTolerance = 0.01                      // Absolute value error used by the CLI
)

// Key record sizes in bytes
const (
	KeySizeRuntime         = layout.RuntimeSize
	KeySizeEditor          = layout.EditorSize
	KeySizeRuntimeWeighted = layout.RuntimeWeightedSize
	KeySizeEditorWeighted  = layout.EditorWeightedSize
)
