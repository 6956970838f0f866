package database

import (
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/migrator"
	"gorm.io/gorm/schema"
)

// SQLiteDialector 金额列在 SQLite 上按 text 建表
// numeric / decimal(p,s) 在 SQLite 是 NUMERIC 亲和性，decimal 字符串会被转成 REAL，只剩 15 位有效数字
type SQLiteDialector struct {
	*sqlite.Dialector
}

func NewSQLiteDialector(dsn string) gorm.Dialector {
	return SQLiteDialector{Dialector: &sqlite.Dialector{DSN: dsn}}
}

func (d SQLiteDialector) DataTypeOf(field *schema.Field) string {
	if isDecimalType(string(field.DataType)) {
		return "text"
	}
	return d.Dialector.DataTypeOf(field)
}

// Migrator 建表时走上面的 DataTypeOf
func (d SQLiteDialector) Migrator(db *gorm.DB) gorm.Migrator {
	return sqlite.Migrator{Migrator: migrator.Migrator{Config: migrator.Config{
		DB:                          db,
		Dialector:                   d,
		CreateIndexAfterCreateTable: true,
	}}}
}

func isDecimalType(dataType string) bool {
	t := strings.ToLower(strings.TrimSpace(dataType))
	return t == "numeric" || strings.HasPrefix(t, "numeric(") || t == "decimal" || strings.HasPrefix(t, "decimal(")
}
