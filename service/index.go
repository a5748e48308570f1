package service

import (
	"github.com/go-logr/logr"
	"github.com/viant/kbvec/config"
	"github.com/viant/kbvec/index"
	"github.com/viant/kbvec/index/cover"
	"github.com/viant/kbvec/index/flat"
	"github.com/viant/kbvec/index/sqlite"
	"github.com/viant/kbvec/retriever"
)

// IndexFactory returns a retriever.IndexFactory for cfg. KindAuto is
// resolved once the corpus size and dimension are known.
func IndexFactory(cfg *config.Index, logger logr.Logger) (retriever.IndexFactory, error) {
	kind, err := index.ParseKind(cfg.Kind)
	if err != nil {
		return nil, err
	}
	return func(docs, dim int) (index.Index, error) {
		resolved := kind.Resolve(docs, dim)
		logger.V(1).Info("creating index", "kind", string(resolved), "documents", docs, "dimension", dim)
		switch resolved {
		case index.KindCover:
			return cover.New(cover.WithBase(float32(cfg.CoverBase))), nil
		case index.KindSQLite:
			return sqlite.New(sqlite.WithDSN(cfg.DSN)), nil
		default:
			return flat.New(), nil
		}
	}, nil
}
