package shoplog

import (
	"github.com/ninja-software/log_helpers"
	"github.com/rs/zerolog"
)

var L *zerolog.Logger

func New(environment, level string) *zerolog.Logger {
	l := log_helpers.LoggerInitZero(environment, level)
	l.Info().Msg("zerolog initialised")
	L = l
	return l
}
