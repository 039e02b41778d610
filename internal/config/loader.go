package config

import (
	"errors"
	"flag"
	"os"

	"github.com/Lumerin-protocol/presale-minter/internal/lib"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/omeid/uconfig/flat"
)

const (
	TagEnv  = "env"
	TagFlag = "flag"
	TagDesc = "desc"
)

var (
	ErrEnvLoad          = errors.New("cannot load .env file")
	ErrEnvParse         = errors.New("cannot parse env variable")
	ErrFlagParse        = errors.New("cannot parse flag")
	ErrConfigInvalid    = errors.New("invalid config struct")
	ErrConfigValidation = errors.New("config validation error")
)

// Defaultable is implemented by config structs that fill missing values after parsing
type Defaultable interface {
	SetDefaults()
}

// LoadConfig fills cfg from .env file, environment variables and command line flags, in this order
// of precedence from lowest to highest, then applies defaults and validates the result
func LoadConfig(cfg interface{}, osArgs *[]string) error {
	// .env is optional, variables already present in the environment are not overridden
	err := godotenv.Load()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return lib.WrapError(ErrEnvLoad, err)
	}

	args := os.Args
	if osArgs != nil {
		args = *osArgs
	}

	err = loadFromSources(cfg, os.LookupEnv, args)
	if err != nil {
		return err
	}

	if d, ok := cfg.(Defaultable); ok {
		d.SetDefaults()
	}

	err = validator.New().Struct(cfg)
	if err != nil {
		return lib.WrapError(ErrConfigValidation, err)
	}

	return nil
}

func loadFromSources(cfg interface{}, lookupEnv func(string) (string, bool), args []string) error {
	// recursively iterates over each field of the nested struct
	fields, err := flat.View(cfg)
	if err != nil {
		return lib.WrapError(ErrConfigInvalid, err)
	}

	flagset := flag.NewFlagSet("", flag.ContinueOnError)

	for _, field := range fields {
		envName, ok := field.Tag(TagEnv)
		if !ok {
			continue
		}

		if envValue, ok := lookupEnv(envName); ok && envValue != "" {
			err := field.Set(envValue)
			if err != nil {
				return lib.WrapError(ErrEnvParse, errors.New(envName+": "+err.Error()))
			}
		}

		flagName, ok := field.Tag(TagFlag)
		if !ok {
			continue
		}
		flagDesc, _ := field.Tag(TagDesc)

		// writes flag value to variable
		flagset.Var(field, flagName, flagDesc)
	}

	if len(args) == 0 {
		return nil
	}

	// flags override env variables
	err = flagset.Parse(args[1:])
	if err != nil {
		return lib.WrapError(ErrFlagParse, err)
	}

	return nil
}
