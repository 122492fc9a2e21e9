package updates

import "errors"

// ErrSinCampos is returned when an update is rendered with zero fields.
var ErrSinCampos = errors.New("no se proporcionaron campos para actualizar")

// Builder accumulates (column, value) pairs for a partial UPDATE and renders
// a single parameterized statement. Columns appear in Set call order, so a
// field explicitly set to its zero value is still written.
type Builder struct {
	assignments []string
	values      []interface{}
}

// Set adds a parameterized column assignment.
func (b *Builder) Set(column string, value interface{}) *Builder {
	b.assignments = append(b.assignments, column+" = ?")
	b.values = append(b.values, value)
	return b
}

// SetExpr adds a raw assignment, e.g. "FECHA_ACTUALIZACION = CURRENT_TIMESTAMP".
func (b *Builder) SetExpr(expr string) *Builder {
	b.assignments = append(b.assignments, expr)
	return b
}

// Empty reports whether no assignment has been added.
func (b *Builder) Empty() bool {
	return len(b.assignments) == 0
}

// Render produces the UPDATE statement and its arguments, the row id last.
// Fails with ErrSinCampos before touching storage when nothing was set.
func (b *Builder) Render(table, pkColumn string, id interface{}) (string, []interface{}, error) {
	if b.Empty() {
		return "", nil, ErrSinCampos
	}
	query := "UPDATE " + table + " SET " + b.assignments[0]
	for _, a := range b.assignments[1:] {
		query += ", " + a
	}
	query += " WHERE " + pkColumn + " = ?"
	args := append(append([]interface{}{}, b.values...), id)
	return query, args, nil
}
