package decode

// Default decoder configuration constants.
const defaultMaxRows = 100_000

// Option applies a configuration option to the Decoder.
type Option func(*Decoder)

// WithProgress sets a callback receiving read progress during decoding.
func WithProgress(fn ProgressFunc) Option {
	return func(d *Decoder) {
		d.progress = fn
	}
}

// WithMaxRows caps the number of rows read from a single file.
func WithMaxRows(n int) Option {
	return func(d *Decoder) {
		if n > 0 {
			d.maxRows = n
		}
	}
}
