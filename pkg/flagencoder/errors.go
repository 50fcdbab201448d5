package flagencoder

import (
	"errors"

	"github.com/lintang-b-s/flagencoder/pkg/encodedvalue"
)

var (
	ErrBitBudgetExceeded   = encodedvalue.ErrBitBudgetExceeded
	ErrInvalidOption       = errors.New("invalid encoder option")
	ErrInvalidVocabulary   = errors.New("invalid restriction vocabulary")
	ErrUnknownProfile      = errors.New("unknown vehicle profile")
	ErrUnsupportedKey      = errors.New("unsupported extension key")
	ErrIncompatibleVersion = errors.New("incompatible encoder version")
	ErrAlreadyDefined      = errors.New("encoder bits already defined")
)
