package archive

import (
	"fmt"

	"github.com/refmetry/uncert/endian"
	"github.com/refmetry/uncert/errs"
	"github.com/refmetry/uncert/format"
	"github.com/refmetry/uncert/internal/options"
)

type config struct {
	compression format.CompressionType
	engine      endian.EndianEngine
	bigEndian   bool
}

func defaultEncodeConfig() *config {
	return &config{
		compression: format.CompressionZstd,
		engine:      endian.GetLittleEndianEngine(),
	}
}

// Option is a functional option for Encode.
type Option = options.Option[*config]

// WithCompression selects the payload compression (default Zstd).
func WithCompression(c format.CompressionType) Option {
	return options.New(func(cfg *config) error {
		if !c.Valid() {
			return fmt.Errorf("%w: %d", errs.ErrInvalidCompressionType, uint8(c))
		}
		cfg.compression = c

		return nil
	})
}

// WithLittleEndian encodes the archive in little-endian byte order (default).
func WithLittleEndian() Option {
	return options.NoError(func(cfg *config) {
		cfg.engine = endian.GetLittleEndianEngine()
		cfg.bigEndian = false
	})
}

// WithBigEndian encodes the archive in big-endian byte order.
func WithBigEndian() Option {
	return options.NoError(func(cfg *config) {
		cfg.engine = endian.GetBigEndianEngine()
		cfg.bigEndian = true
	})
}
