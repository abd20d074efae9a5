package sqlfx

import (
	"github.com/sirupsen/logrus"
	"go.uber.org/fx"

	"github.com/yurykabanov/logrotator/pkg/domain"
	"github.com/yurykabanov/logrotator/pkg/http/handler"
	"github.com/yurykabanov/logrotator/pkg/storage"
)

// RunsRepository opens the journal when it is enabled. Without a journal runs
// are only logged.
func RunsRepository(lc fx.Lifecycle, config *SqliteConfig, logger *logrus.Logger) (
	domain.RunRepository,
	handler.RunRepository,
	error,
) {
	if !config.Enabled {
		repo := storage.NopRunRepository{}
		return repo, repo, nil
	}

	db, err := OpenSqliteDatabase(config, logger)
	if err != nil {
		return nil, nil, err
	}

	CloseSqliteDatabase(lc, db)

	repo := storage.NewRunRepository(db)

	return repo, repo, nil
}
