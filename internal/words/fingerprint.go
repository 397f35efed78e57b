package words

import (
	"github.com/cespare/xxhash/v2"

	"github.com/verte-zerg/tagcloud/internal/model"
)

// Fingerprint hashes a word list so callers can detect unchanged input.
func Fingerprint(ws []model.Word) uint64 {
	d := xxhash.New()
	for _, w := range ws {
		_, _ = d.WriteString(w.Text)
		_, _ = d.Write([]byte{0})
		_, _ = d.WriteString(w.Tag)
		_, _ = d.Write([]byte{1})
	}
	return d.Sum64()
}
