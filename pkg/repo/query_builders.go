package repo

import (
	"fmt"
	"strings"
)

// Insert builds an INSERT statement with positional placeholders and an
// optional RETURNING clause.
func Insert(tableName string, fields []string, returning ...string) string {
	placeholders := make([]string, 0, len(fields))
	for i := range fields {
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+1))
	}
	q := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		tableName,
		strings.Join(fields, ", "),
		strings.Join(placeholders, ", "),
	)
	if len(returning) > 0 {
		q += " RETURNING " + strings.Join(returning, ", ")
	}
	return q
}

// Update builds an UPDATE statement assigning fields to $1..$n, followed by
// the given WHERE predicates (which reference later placeholders themselves).
func Update(tableName string, fields []string, where ...string) string {
	assignments := make([]string, 0, len(fields))
	for i, f := range fields {
		assignments = append(assignments, fmt.Sprintf("%s = $%d", f, i+1))
	}
	q := fmt.Sprintf("UPDATE %s SET %s", tableName, strings.Join(assignments, ", "))
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	return q
}

// BatchInsertQueryN appends one parenthesized value tuple per row to the given
// prefix ("INSERT INTO t (a, b) VALUES") and returns the flattened args.
func BatchInsertQueryN(prefix string, rows [][]interface{}) (string, []interface{}) {
	if len(rows) == 0 {
		return prefix, nil
	}
	args := make([]interface{}, 0, len(rows)*len(rows[0]))
	tuples := make([]string, 0, len(rows))
	i := 1
	for _, row := range rows {
		placeholders := make([]string, 0, len(row))
		for _, v := range row {
			placeholders = append(placeholders, fmt.Sprintf("$%d", i))
			args = append(args, v)
			i++
		}
		tuples = append(tuples, "("+strings.Join(placeholders, ", ")+")")
	}
	return prefix + " " + strings.Join(tuples, ", "), args
}

// Join concatenates non-empty query fragments with single spaces.
func Join(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}

// JoinWhere renders a WHERE clause from predicates joined with AND.
func JoinWhere(conditions ...string) string {
	if len(conditions) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(conditions, " AND ")
}

// Exists wraps a query into a SELECT EXISTS probe.
func Exists(query string) string {
	return fmt.Sprintf("SELECT EXISTS (%s)", query)
}

// FormatLimitOffset renders LIMIT/OFFSET, omitting non-positive parts.
func FormatLimitOffset(limit, offset int) string {
	if limit > 0 && offset > 0 {
		return fmt.Sprintf("LIMIT %d OFFSET %d", limit, offset)
	}
	if limit > 0 {
		return fmt.Sprintf("LIMIT %d", limit)
	}
	if offset > 0 {
		return fmt.Sprintf("OFFSET %d", offset)
	}
	return ""
}
