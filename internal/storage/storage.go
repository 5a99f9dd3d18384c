package storage

import (
	"errors"

	"github.com/lib/pq"
)

var (
	// ErrForeignKeyViolation — запись связана с другой таблицей (удаление
	// занятой строки или вставка ссылки на несуществующую)
	ErrForeignKeyViolation = errors.New("foreign key violation")
)

// код ошибки postgres foreign_key_violation
const pgForeignKeyViolation = "23503"

// translateError переводит известные ошибки драйвера в ошибки пакета
func translateError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pgForeignKeyViolation {
		return ErrForeignKeyViolation
	}
	return err
}

// rowScanner общий интерфейс для *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}
