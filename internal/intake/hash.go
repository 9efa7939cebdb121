package intake

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"

	"luft/internal/services"
)

// hashBufferSize matches the chunked read size used elsewhere in processing.
const hashBufferSize = 4096

// FileHash computes the SHA-256 digest of a file, streaming in fixed-size
// chunks so large captures never load into memory.
func FileHash(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", services.Wrap(services.ErrIngest, "intake", "hash", "open "+path, err)
	}
	defer file.Close()

	digest := sha256.New()
	buf := make([]byte, hashBufferSize)
	if _, err := io.CopyBuffer(digest, file, buf); err != nil {
		return "", services.Wrap(services.ErrIngest, "intake", "hash", "read "+path, err)
	}
	return hex.EncodeToString(digest.Sum(nil)), nil
}
