package db

import (
	"cmp"
	"fmt"
	"io/fs"
	"slices"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

const createSchemaMigrationsSQL = `
CREATE TABLE IF NOT EXISTS schema_migrations (
  version INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// migration is one NNNN_name.sql file split into statements.
type migration struct {
	version    int
	name       string
	statements []string
}

// migrate applies, in version order, every migration in files that is not
// recorded in schema_migrations yet. Each migration runs in its own
// transaction together with its schema_migrations row.
func migrate(database *gorm.DB, files fs.FS) error {
	if err := database.Exec(createSchemaMigrationsSQL).Error; err != nil {
		return fmt.Errorf("create schema_migrations table: %w", err)
	}

	migrations, err := loadMigrations(files)
	if err != nil {
		return err
	}

	var applied []int
	if err := database.Raw(`SELECT version FROM schema_migrations`).Scan(&applied).Error; err != nil {
		return fmt.Errorf("load applied migrations: %w", err)
	}

	for _, pending := range migrations {
		if slices.Contains(applied, pending.version) {
			continue
		}
		if err := pending.apply(database); err != nil {
			return err
		}
	}
	return nil
}

func loadMigrations(files fs.FS) ([]migration, error) {
	names, err := fs.Glob(files, "*.sql")
	if err != nil {
		return nil, fmt.Errorf("list migrations: %w", err)
	}

	migrations := make([]migration, 0, len(names))
	seen := make(map[int]string, len(names))
	for _, name := range names {
		prefix, _, found := strings.Cut(name, "_")
		version, err := strconv.Atoi(prefix)
		if !found || err != nil || version <= 0 {
			return nil, fmt.Errorf("migration %s: name must look like 0001_description.sql", name)
		}
		if previous, duplicate := seen[version]; duplicate {
			return nil, fmt.Errorf("migration version %d used by %s and %s", version, previous, name)
		}
		seen[version] = name

		content, err := fs.ReadFile(files, name)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}
		statements := splitSQLStatements(string(content))
		if len(statements) == 0 {
			return nil, fmt.Errorf("migration %s has no statements", name)
		}

		migrations = append(migrations, migration{version: version, name: name, statements: statements})
	}

	slices.SortFunc(migrations, func(a, b migration) int {
		return cmp.Compare(a.version, b.version)
	})
	return migrations, nil
}

// apply runs the statements. An ADD COLUMN for a column that already exists is
// skipped, so databases whose schema was patched by hand still upgrade.
func (m migration) apply(database *gorm.DB) error {
	return database.Transaction(func(tx *gorm.DB) error {
		for _, statement := range m.statements {
			if table, column, ok := addedColumn(statement); ok && tx.Migrator().HasColumn(table, column) {
				continue
			}
			if err := tx.Exec(statement).Error; err != nil {
				return fmt.Errorf("migration %s: %q: %w", m.name, statement, err)
			}
		}
		if err := tx.Exec(`INSERT INTO schema_migrations(version, name) VALUES (?, ?)`, m.version, m.name).Error; err != nil {
			return fmt.Errorf("record migration %s: %w", m.name, err)
		}
		return nil
	})
}

func splitSQLStatements(sqlText string) []string {
	statements := make([]string, 0)
	for _, part := range strings.Split(sqlText, ";") {
		if statement := strings.TrimSpace(part); statement != "" {
			statements = append(statements, statement)
		}
	}
	return statements
}

// addedColumn recognises "ALTER TABLE t ADD [COLUMN] c ..." and returns t and c.
func addedColumn(statement string) (string, string, bool) {
	fields := strings.Fields(statement)
	if len(fields) < 5 ||
		!strings.EqualFold(fields[0], "ALTER") ||
		!strings.EqualFold(fields[1], "TABLE") ||
		!strings.EqualFold(fields[3], "ADD") {
		return "", "", false
	}

	column := fields[4]
	if strings.EqualFold(column, "COLUMN") {
		if len(fields) < 6 {
			return "", "", false
		}
		column = fields[5]
	}
	return unquoteIdentifier(fields[2]), unquoteIdentifier(column), true
}

func unquoteIdentifier(identifier string) string {
	return strings.Trim(identifier, "\"`[]")
}
