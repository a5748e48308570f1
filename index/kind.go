package index

import (
	"fmt"
	"strings"
)

// Kind names an index implementation.
type Kind string

const (
	KindAuto   Kind = "auto"
	KindFlat   Kind = "flat"
	KindCover  Kind = "cover"
	KindSQLite Kind = "sqlite"
)

const (
	autoCoverMinDocs = 4000
	autoCoverMinDim  = 64
)

// ParseKind resolves a configured kind name; empty selects KindFlat.
func ParseKind(name string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(name))); k {
	case "":
		return KindFlat, nil
	case KindAuto, KindFlat, KindCover, KindSQLite:
		return k, nil
	default:
		return "", fmt.Errorf("index: unsupported kind %q", name)
	}
}

// Resolve turns KindAuto into a concrete kind for the given corpus shape.
// A brute-force scan wins on small collections; the cover tree only pays off
// once there are enough points to prune.
func (k Kind) Resolve(docs, dim int) Kind {
	if k != KindAuto {
		return k
	}
	if docs >= autoCoverMinDocs && dim >= autoCoverMinDim {
		return KindCover
	}
	return KindFlat
}
