package archive

import (
	"fmt"

	"github.com/arloliu/wavepeek/endian"
	"github.com/arloliu/wavepeek/errs"
	"github.com/arloliu/wavepeek/format"
	"github.com/arloliu/wavepeek/internal/options"
	"github.com/arloliu/wavepeek/section"
)

// EncoderConfig holds the layout choices of a snapshot.
type EncoderConfig struct {
	engine               endian.EndianEngine
	timestampEncoding    format.EncodingType
	timestampCompression format.CompressionType
	valueCompression     format.CompressionType
	namesCompression     format.CompressionType
	unitTime             int64
}

func newEncoderConfig() *EncoderConfig {
	return &EncoderConfig{
		engine:               endian.Little(),
		timestampEncoding:    section.DefaultTimestampEncoding,
		timestampCompression: section.DefaultTimestampCompression,
		valueCompression:     section.DefaultValueCompression,
		namesCompression:     section.DefaultNamesCompression,
	}
}

// EncoderOption configures NewEncoder.
type EncoderOption = options.Option[*EncoderConfig]

// WithLittleEndian writes fixed-size fields little-endian (the default).
func WithLittleEndian() EncoderOption {
	return options.NoError(func(c *EncoderConfig) { c.engine = endian.Little() })
}

// WithBigEndian writes fixed-size fields big-endian.
func WithBigEndian() EncoderOption {
	return options.NoError(func(c *EncoderConfig) { c.engine = endian.Big() })
}

// WithTimestampEncoding selects raw or delta-of-delta timestamps.
func WithTimestampEncoding(enc format.EncodingType) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		if !enc.Valid() {
			return fmt.Errorf("invalid timestamp encoding: %s", enc)
		}
		c.timestampEncoding = enc

		return nil
	})
}

// WithTimestampCompression selects the codec of the timestamp payload.
func WithTimestampCompression(ct format.CompressionType) EncoderOption {
	return compressionOption("timestamp", ct, func(c *EncoderConfig) { c.timestampCompression = ct })
}

// WithValueCompression selects the codec of the value payload.
func WithValueCompression(ct format.CompressionType) EncoderOption {
	return compressionOption("value", ct, func(c *EncoderConfig) { c.valueCompression = ct })
}

// WithNamesCompression selects the codec of the names payload.
func WithNamesCompression(ct format.CompressionType) EncoderOption {
	return compressionOption("names", ct, func(c *EncoderConfig) { c.namesCompression = ct })
}

// WithCompression applies one codec to every payload.
func WithCompression(ct format.CompressionType) EncoderOption {
	return compressionOption("snapshot", ct, func(c *EncoderConfig) {
		c.timestampCompression = ct
		c.valueCompression = ct
		c.namesCompression = ct
	})
}

// WithUnitTime records the session unit time in the header. Zero means unknown.
func WithUnitTime(unit int64) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		if unit < 0 {
			return fmt.Errorf("%w: %d", errs.ErrInvalidUnitTime, unit)
		}
		c.unitTime = unit

		return nil
	})
}

func compressionOption(target string, ct format.CompressionType, set func(*EncoderConfig)) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		if !ct.Valid() {
			return fmt.Errorf("invalid %s compression: %s", target, ct)
		}
		set(c)

		return nil
	})
}
