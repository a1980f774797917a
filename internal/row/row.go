// Package row implements the fixed-width record codec: a pure
// serialize/deserialize pair over a caller-supplied byte buffer. It carries
// no knowledge of pages, B-trees, or files.
package row

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// Field widths. UsernameMax/EmailMax bound the text a caller may supply;
// the on-disk field is one byte wider to hold the NUL terminator.
const (
	IDSize       = 4
	UsernameMax  = 32
	UsernameSize = UsernameMax + 1
	EmailMax     = 255
	EmailSize    = EmailMax + 1

	IDOffset       = 0
	UsernameOffset = IDOffset + IDSize
	EmailOffset    = UsernameOffset + UsernameSize

	// Size is the total on-disk width of a serialized row: 4 + 33 + 256 = 293.
	Size = IDSize + UsernameSize + EmailSize
)

// Row is the sole record shape this engine stores: a monotone key plus two
// bounded text columns.
type Row struct {
	ID       uint32
	Username string
	Email    string
}

// TooLong reports whether r's text columns exceed the widths a caller must
// validate before insertion. The codec itself performs no validation.
func (r Row) TooLong() bool {
	return len(r.Username) > UsernameMax || len(r.Email) > EmailMax
}

// Serialize writes r into dst at offset 0. dst must be at least Size bytes.
func Serialize(r Row, dst []byte) {
	binary.LittleEndian.PutUint32(dst[IDOffset:IDOffset+IDSize], r.ID)

	usernameField := dst[UsernameOffset : UsernameOffset+UsernameSize]
	for i := range usernameField {
		usernameField[i] = 0
	}
	copy(usernameField, r.Username)

	emailField := dst[EmailOffset : EmailOffset+EmailSize]
	for i := range emailField {
		emailField[i] = 0
	}
	copy(emailField, r.Email)
}

// Deserialize reads a Row from src, the inverse of Serialize. src must be at
// least Size bytes.
func Deserialize(src []byte) Row {
	id := binary.LittleEndian.Uint32(src[IDOffset : IDOffset+IDSize])
	username := nulTerminated(src[UsernameOffset : UsernameOffset+UsernameSize])
	email := nulTerminated(src[EmailOffset : EmailOffset+EmailSize])
	return Row{ID: id, Username: username, Email: email}
}

func nulTerminated(field []byte) string {
	if i := strings.IndexByte(string(field), 0); i >= 0 {
		return string(field[:i])
	}
	return string(field)
}

// String renders r in the select-output format: "(id, username, email)".
func (r Row) String() string {
	return fmt.Sprintf("(%d, %s, %s)", r.ID, r.Username, r.Email)
}
