package artifacts

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/pkg/errors"
)

// Schema is the ordered list of column names the model and scaler were fit on.
type Schema struct {
	columns []string
}

func NewSchema(columns []string) (Schema, error) {
	if len(columns) == 0 {
		return Schema{}, errors.New("feature schema is empty")
	}
	seen := make(map[string]struct{}, len(columns))
	for i, c := range columns {
		if c == "" {
			return Schema{}, errors.Errorf("feature schema column %d has an empty name", i)
		}
		if _, ok := seen[c]; ok {
			return Schema{}, errors.Errorf("feature schema column %q is duplicated", c)
		}
		seen[c] = struct{}{}
	}
	cols := make([]string, len(columns))
	copy(cols, columns)
	return Schema{columns: cols}, nil
}

func (s Schema) Len() int { return len(s.columns) }

// Columns returns a copy of the column names in schema order.
func (s Schema) Columns() []string {
	out := make([]string, len(s.columns))
	copy(out, s.columns)
	return out
}

// Fingerprint identifies the schema by content, so cached or stored results
// can be told apart after the artifacts are regenerated.
func (s Schema) Fingerprint() string {
	sum := sha256.Sum256([]byte(strings.Join(s.columns, "\x00")))
	return hex.EncodeToString(sum[:8])
}
