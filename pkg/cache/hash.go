package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

// Hash returns the hex SHA-256 digest of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// artifactKey lays out "artifact:<sourceHash>:<format>" followed by the
// options that change the bytes, e.g. "artifact:ab12...:png:2x:native".
func artifactKey(sourceHash string, opts ArtifactKeyOpts) string {
	var b strings.Builder
	b.WriteString("artifact:")
	b.WriteString(sourceHash)
	b.WriteByte(':')
	b.WriteString(opts.Format)
	if opts.Scale != 0 {
		b.WriteByte(':')
		b.WriteString(strconv.FormatFloat(opts.Scale, 'g', -1, 64))
		b.WriteByte('x')
	}
	if opts.Native {
		b.WriteString(":native")
	}
	return b.String()
}
