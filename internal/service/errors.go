package service

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"

	"examcraft/internal/domain"
)

// storeError wraps a repository failure. Domain errors pass through, lost
// connections become STORE_UNAVAILABLE and anything else is INTERNAL_ERROR.
func storeError(message string, err error) error {
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		return err
	}
	var validationErrs domain.ValidationErrors
	if errors.As(err, &validationErrs) {
		return err
	}
	if isUnavailable(err) {
		return domain.NewStoreUnavailableError(err)
	}
	return domain.NewInternalError(message, err)
}

func isUnavailable(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return true
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}
