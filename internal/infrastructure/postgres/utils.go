package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Códigos SQLSTATE que los repositorios traducen a errores de dominio.
const (
	sqlstateUniqueViolation     = "23505"
	sqlstateForeignKeyViolation = "23503"
)

func sqlstate(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation detecta una violación de constraint único.
func isUniqueViolation(err error) bool {
	return sqlstate(err) == sqlstateUniqueViolation
}

// isForeignKeyViolation detecta una fila referenciada por otros registros
// (o una referencia a una fila inexistente).
func isForeignKeyViolation(err error) bool {
	return sqlstate(err) == sqlstateForeignKeyViolation
}
