package dtl

import "github.com/pkg/errors"

var (
	//ErrInvalidConfig is returned when training parameters are out of range.
	ErrInvalidConfig = errors.New("invalid config")
	//ErrInvalidInput is returned for empty or malformed datasets and for queries
	//that do not match the training dimensionality.
	ErrInvalidInput = errors.New("invalid input")
)

func invalidInput(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidInput, format, args...)
}

func invalidConfig(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidConfig, format, args...)
}
