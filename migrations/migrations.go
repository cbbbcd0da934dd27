package migrations

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"github.com/m04kA/SMC-MarketplaceService/pkg/dbmetrics"
)

//go:embed *.sql
var files embed.FS

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

// Apply выполняет все встроенные SQL файлы по порядку имен
// Скрипты идемпотентны (IF NOT EXISTS), повторный запуск безопасен
func Apply(ctx context.Context, db dbmetrics.DBExecutor, log Logger) error {
	names, err := fs.Glob(files, "*.sql")
	if err != nil {
		return fmt.Errorf("migrations: list files: %w", err)
	}
	sort.Strings(names)

	for _, name := range names {
		script, err := files.ReadFile(name)
		if err != nil {
			return fmt.Errorf("migrations: read %s: %w", name, err)
		}

		log.Info("Applying migration %s", name)
		if _, err := db.ExecContext(ctx, string(script)); err != nil {
			return fmt.Errorf("migrations: apply %s: %w", name, err)
		}
	}

	return nil
}
