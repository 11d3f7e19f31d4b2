package database

import (
	surrealdb "github.com/surrealdb/surrealdb.go"
)

type countRow struct {
	Count int64 `json:"count"`
}

// firstRow unwraps the first record of the first statement result, or nil
// when the query matched nothing.
func firstRow[T any](res *[]surrealdb.QueryResult[[]T]) *T {
	if res == nil || len(*res) == 0 || len((*res)[0].Result) == 0 {
		return nil
	}
	return &(*res)[0].Result[0]
}

// allRows unwraps every record of the first statement result.
func allRows[T any](res *[]surrealdb.QueryResult[[]T]) []T {
	if res == nil || len(*res) == 0 {
		return nil
	}
	return (*res)[0].Result
}
