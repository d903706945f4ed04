package database

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrNoRecord is returned by update helpers when the filter matched nothing.
var ErrNoRecord = errors.New("no record found")

// Query is the shared filter/sort/paginate base embedded by every entity
// query. Pages are 1-based; pageSize 0 disables windowing. The window is
// items[(page-1)*pageSize : page*pageSize] over the ordered filtered set,
// so an out-of-range page yields an empty result, not an error.
type Query[T any] struct {
	db       *gorm.DB
	page     int
	pageSize int
	order    string
}

func (q *Query[T]) window(tx *gorm.DB) *gorm.DB {
	if q.order != "" {
		tx = tx.Order(q.order)
	}

	if q.pageSize > 0 {
		page := q.page
		if page < 1 {
			page = 1
		}

		tx = tx.Offset((page - 1) * q.pageSize).Limit(q.pageSize)
	}

	return tx
}

func (q *Query[T]) get(tx *gorm.DB) []*T {
	var res []*T

	err := q.window(tx).Find(&res).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}

	return res
}

func (q *Query[T]) one(tx *gorm.DB) *T {
	res := new(T)

	err := tx.Take(&res).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}

	return res
}

// count runs over the filtered but unordered and unwindowed set.
func (q *Query[T]) count(tx *gorm.DB) int64 {
	var n int64

	tx.Count(&n)

	return n
}

func (q *Query[T]) updateOrError(tx *gorm.DB, updates map[string]any) error {
	tx.Updates(updates)

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return ErrNoRecord
	}

	return nil
}

// IsUniqueViolation reports whether err is a store-level uniqueness
// constraint failure. The store is the authority for duplicate detection;
// check-then-act callers map this to their conflict error.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func substring(s string) string {
	return "%" + strings.ToLower(s) + "%"
}
