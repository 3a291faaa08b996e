package chunk

import "errors"

// ErrFormat may be returned by Formattable values which do not support a
// format string. Rendering then falls back to the value's default form.
var ErrFormat = errors.New("chunk: unsupported format")
