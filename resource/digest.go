package resource

import (
	"encoding/hex"
	"io"

	"github.com/minio/highwayhash"
)

var key = []byte("0123456789ABCDEF0123456789ABCDEF")

// digest computes a keyed 256-bit content digest over the full byte stream.
func digest(reader io.Reader) (string, error) {
	hash, err := highwayhash.New(key)
	if err != nil {
		return "", err
	}
	if _, err = io.Copy(hash, reader); err != nil {
		return "", err
	}
	return hex.EncodeToString(hash.Sum(nil)), nil
}
