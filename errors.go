package budgetfill

import "errors"

// Source-level failures abort the whole request. Per-item problems never
// surface as errors; they are counted in Stats instead.
var (
	// ErrCatalogUnavailable is returned when the reference catalog cannot be
	// opened or read, or lacks a required column.
	ErrCatalogUnavailable = errors.New("catalog unavailable")

	// ErrNoValidSelections is returned when every submitted selection was
	// dropped. Callers should present it as a warning, not a failure.
	ErrNoValidSelections = errors.New("no valid selections")

	// ErrTemplateLoad is returned when the output template cannot be opened.
	ErrTemplateLoad = errors.New("template load failure")

	// ErrTemplateLayout is returned when the template does not match the
	// configured layout.
	ErrTemplateLayout = errors.New("template layout mismatch")

	// ErrInvalidLayout is returned by Layout.Validate.
	ErrInvalidLayout = errors.New("invalid layout")
)
