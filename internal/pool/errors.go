package pool

import (
	"fmt"

	"github.com/hordeloop/engine/internal/core/errs"
)

var (
	ErrInvalidCount      = fmt.Errorf("%w: negative initial pool size", errs.ErrConfig)
	ErrDuplicateTemplate = fmt.Errorf("%w: template already has a pool", errs.ErrConfig)
	ErrUnknownTemplate   = fmt.Errorf("%w: no pool registered for template", errs.ErrLookup)
	ErrNotAcquired       = fmt.Errorf("%w: instance was not acquired from this registry", errs.ErrLookup)
	ErrNotInUse          = fmt.Errorf("%w: instance is not in use in this pool", errs.ErrState)

	errNilFactory = fmt.Errorf("%w: nil factory", errs.ErrConfig)
)
