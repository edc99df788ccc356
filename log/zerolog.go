package log

import "github.com/rs/zerolog"

// ZerologAdapter bridges a zerolog.Logger into the SDK Logger interface.
type ZerologAdapter struct {
	l zerolog.Logger
}

// NewZerolog wraps a zerolog.Logger. Level filtering stays with zerolog;
// SetLogLevel on the client has no effect on this adapter.
func NewZerolog(l zerolog.Logger) *ZerologAdapter {
	return &ZerologAdapter{l: l}
}

func (z *ZerologAdapter) Debugf(format string, args ...any) { z.l.Debug().Msgf(format, args...) }
func (z *ZerologAdapter) Infof(format string, args ...any)  { z.l.Info().Msgf(format, args...) }
func (z *ZerologAdapter) Warnf(format string, args ...any)  { z.l.Warn().Msgf(format, args...) }
func (z *ZerologAdapter) Errorf(format string, args ...any) { z.l.Error().Msgf(format, args...) }
