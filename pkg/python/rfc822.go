// This file deals with the `Key: value` header format shared by Python packaging
// metadata files (PKG-INFO, METADATA, WHEEL); Python parses these with
// `email.parser`.

package python

import (
	"bufio"
	"io"
	"net/textproto"
	"strings"
)

// ReadMetadata parses an RFC 822 style `Key: value` packaging metadata file,
// returning its headers and discarding any body (such as a PKG-INFO long
// description).
func ReadMetadata(reader io.Reader) (textproto.MIMEHeader, error) {
	// textproto.Reader.ReadMIMEHeader() expects a blank line to mark the end of the header and
	// the start of the body.  But in files like WHEEL there is no body, so the blank line
	// should be optional.  So use an io.MultiReader to add a few trailing CRLFs to keep
	// ReadMIMEHeader happy no matter what the file's trailing newline situation is.
	kvReader := textproto.NewReader(bufio.NewReader(io.MultiReader(
		reader,
		strings.NewReader("\r\n\r\n\r\n"),
	)))
	return kvReader.ReadMIMEHeader()
}
