package types

import "errors"

var (
	ErrFileNotFound       = errors.New("input file not found")
	ErrSchemaMismatch     = errors.New("required column missing")
	ErrParse              = errors.New("value could not be parsed")
	ErrEmptyDataset       = errors.New("dataset is empty")
	ErrServiceUnavailable = errors.New("market data service unavailable")
	ErrInvalidConfig      = errors.New("invalid configuration")
	ErrUnsupportedReport  = errors.New("unsupported report type")
)
