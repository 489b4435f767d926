// Package users provides the persistence layer for the kiosk roster.
//
// # Overview
//
// Repository describes the queries the UserStore needs: list, get, create,
// rename, delete and set balance. Two implementations exist, both bound to a
// dbx.DBTX so they can run on a *sql.DB or inside a *sql.Tx:
//
//   - SQLiteRepository: the default local table (modernc.org/sqlite)
//   - PostgresRepository: the same table on PostgreSQL (pgx stdlib)
//
// # Errors
//
// Missing rows are reported as common.ErrorNotFound and primary key
// conflicts as common.ErrDuplicateUser. Everything else is a wrapped driver
// error.
package users
