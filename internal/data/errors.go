package data

import (
	"fmt"

	"github.com/hordeloop/engine/internal/core/errs"
)

var (
	errMissingID   = fmt.Errorf("%w: missing id", errs.ErrConfig)
	errUnknownKind = fmt.Errorf("%w: unknown kind", errs.ErrConfig)
	errDuplicateID = fmt.Errorf("%w: duplicate id", errs.ErrConfig)
)
