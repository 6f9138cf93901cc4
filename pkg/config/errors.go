package config

import "errors"

var (
	ErrParsingConfig   = errors.New("config: failed to parse environment")
	ErrLoadingEnvFile  = errors.New("config: failed to load env file")
	ErrNilPointer      = errors.New("config: nil pointer")
	ErrConfigNotLoaded = errors.New("config: not loaded")
)
