// Package format renders parsed diaries and parse failures.
package format

import (
	"encoding"

	"github.com/dhamidi/diary/diary"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(doc *diary.Document) error
}
