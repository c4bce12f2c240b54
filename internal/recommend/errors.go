package recommend

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRiskLevel      = errors.New("invalid risk level")
	ErrInvalidTemplate       = errors.New("invalid template")
	ErrMissingTierTemplates  = errors.New("risk tier has no templates")
	ErrTipPoolTooSmall       = errors.New("tip pool too small")
	ErrEmptyMotivationalPool = errors.New("motivational pool is empty")
	ErrFixedPhrasing         = errors.New("fallback and prefix phrasing cannot be overridden")
)

func invalidRiskLevel(raw string) error {
	return fmt.Errorf("%w: %q", ErrInvalidRiskLevel, raw)
}
