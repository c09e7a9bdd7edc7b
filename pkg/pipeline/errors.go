package pipeline

import (
	"github.com/pkg/errors"
)

var (
	ErrBuilderMustBeSet    = errors.New("builder must be set")
	ErrInputMustBeSet      = errors.New("input must be set")
	ErrBuilderFinished     = errors.New("builder already finished")
	ErrSelectorInputs      = errors.New("selector inputs do not match the switch configuration")
	ErrCacheDirUnavailable = errors.New("cache directory unavailable")
)
