package database

import (
	"log"

	"github.com/surrealdb/surrealdb.go"
)

// queryOne runs a statement expected to yield at most one row. No match is
// (nil, nil), not an error.
func queryOne[T any](db *surrealdb.DB, sql string, params map[string]interface{}) (*T, error) {
	res, err := db.Query(sql, params)
	if err != nil {
		log.Println(err)
		return nil, err
	}

	rows, err := surrealdb.SmartUnmarshal[[]T](res, err)
	if err != nil {
		log.Println(err)
		return nil, err
	}

	if len(rows) == 0 {
		return nil, nil
	}

	return &rows[0], nil
}

// queryAll runs a statement yielding any number of rows.
func queryAll[T any](db *surrealdb.DB, sql string, params map[string]interface{}) ([]T, error) {
	res, err := db.Query(sql, params)
	if err != nil {
		log.Println(err)
		return nil, err
	}

	rows, err := surrealdb.SmartUnmarshal[[]T](res, err)
	if err != nil {
		log.Println(err)
		return nil, err
	}

	return rows, nil
}

// queryOnly runs a CREATE ONLY / UPDATE ONLY statement and unmarshals the
// single document it returns.
func queryOnly[T any](db *surrealdb.DB, sql string, params map[string]interface{}) (*T, error) {
	res, err := db.Query(sql, params)
	if err != nil {
		log.Println(err)
		return nil, err
	}

	row, err := surrealdb.SmartUnmarshal[T](res, err)
	if err != nil {
		log.Println(err)
		return nil, err
	}

	return &row, nil
}

func exec(db *surrealdb.DB, sql string, params map[string]interface{}) error {
	if _, err := db.Query(sql, params); err != nil {
		log.Println(err)
		return err
	}
	return nil
}
