package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"unimitr-backend/internal/domain"
	"unimitr-backend/internal/logger"
	"unimitr-backend/internal/repository"
)

// column pairs a stored column with the expression used to read it.
// DATE and TIME columns are read as text so they round-trip as strings.
type column struct {
	name string
	read string
}

func col(name string) column     { return column{name: name, read: name} }
func textCol(name string) column { return column{name: name, read: name + "::text"} }

// resourceTable describes the descriptive columns of one resource table.
// fields returns pointers to the matching struct fields, in column order,
// and serves both as scan destinations and as query arguments.
type resourceTable[R domain.Resource] struct {
	name    string
	columns []column
	newRow  func() R
	fields  func(R) []any
}

// actionTable describes one action table. extra holds the columns beyond
// the common submission columns.
type actionTable[A domain.Action] struct {
	name   string
	parent string
	extra  []column
	newRow func() A
	fields func(A) []any
}

type rowScanner interface {
	Scan(dest ...any) error
}

type workflowRepository[R domain.Resource, A domain.Action] struct {
	db *sql.DB
	rt resourceTable[R]
	at actionTable[A]

	resourceCols string
	actionCols   string
}

func newWorkflowRepository[R domain.Resource, A domain.Action](db *sql.DB, rt resourceTable[R], at actionTable[A]) repository.WorkflowRepository[R, A] {
	reads := func(cols []column) []string {
		out := make([]string, len(cols))
		for i, c := range cols {
			out[i] = c.read
		}
		return out
	}
	return &workflowRepository[R, A]{
		db: db,
		rt: rt,
		at: at,
		resourceCols: strings.Join(append(
			[]string{"id", "status", "created_by", "created_at", "updated_at"}, reads(rt.columns)...), ", "),
		actionCols: strings.Join(append(
			[]string{"id", at.parent, "full_name", "student_id", "email", "phone", "status", "created_at"}, reads(at.extra)...), ", "),
	}
}

func placeholders(from, n int) string {
	p := make([]string, n)
	for i := range p {
		p[i] = fmt.Sprintf("$%d", from+i)
	}
	return strings.Join(p, ", ")
}

func names(cols []column) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.name
	}
	return out
}

func (w *workflowRepository[R, A]) scanResource(row rowScanner) (R, error) {
	r := w.rt.newRow()
	m := r.Core()
	dest := append([]any{&m.ID, &m.Status, &m.CreatedBy, &m.CreatedAt, &m.UpdatedAt}, w.rt.fields(r)...)
	if err := row.Scan(dest...); err != nil {
		var zero R
		return zero, err
	}
	return r, nil
}

func (w *workflowRepository[R, A]) scanAction(row rowScanner) (A, error) {
	a := w.at.newRow()
	s := a.Core()
	var parentID int64
	dest := append([]any{&s.ID, &parentID, &s.FullName, &s.StudentID, &s.Email, &s.Phone, &s.Status, &s.CreatedAt}, w.at.fields(a)...)
	if err := row.Scan(dest...); err != nil {
		var zero A
		return zero, err
	}
	a.SetParentID(parentID)
	return a, nil
}

func (w *workflowRepository[R, A]) Create(ctx context.Context, r R) error {
	m := r.Core()
	cols := append([]string{"status", "created_by"}, names(w.rt.columns)...)
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s) RETURNING id, created_at, updated_at`,
		w.rt.name, strings.Join(cols, ", "), placeholders(1, len(cols)))
	args := append([]any{m.Status, m.CreatedBy}, w.rt.fields(r)...)

	logger.DatabaseCall("insert", query, "table", w.rt.name)
	err := w.db.QueryRowContext(ctx, query, args...).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	logger.DatabaseResult("insert", 1, err, "table", w.rt.name)
	return translate(err)
}

func (w *workflowRepository[R, A]) GetByID(ctx context.Context, id int64) (R, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, w.resourceCols, w.rt.name)
	r, err := w.scanResource(w.db.QueryRowContext(ctx, query, id))
	if err != nil {
		var zero R
		return zero, translate(err)
	}
	return r, nil
}

func (w *workflowRepository[R, A]) List(ctx context.Context, status domain.Status) ([]R, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s`, w.resourceCols, w.rt.name)
	var args []any
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY updated_at DESC, id DESC`

	logger.DatabaseCall("select", query, "table", w.rt.name)
	rows, err := w.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.DatabaseResult("select", 0, err, "table", w.rt.name)
		return nil, err
	}
	defer rows.Close()

	out := []R{}
	for rows.Next() {
		r, err := w.scanResource(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	logger.DatabaseResult("select", int64(len(out)), rows.Err(), "table", w.rt.name)
	return out, rows.Err()
}

func (w *workflowRepository[R, A]) Update(ctx context.Context, r R) error {
	m := r.Core()
	sets := []string{"status = $1"}
	for i, c := range w.rt.columns {
		sets = append(sets, fmt.Sprintf("%s = $%d", c.name, i+2))
	}
	idArg := len(w.rt.columns) + 2
	query := fmt.Sprintf(`UPDATE %s SET %s, updated_at = NOW() WHERE id = $%d RETURNING updated_at`,
		w.rt.name, strings.Join(sets, ", "), idArg)
	args := append(append([]any{m.Status}, w.rt.fields(r)...), m.ID)

	logger.DatabaseCall("update", query, "table", w.rt.name, "id", m.ID)
	err := w.db.QueryRowContext(ctx, query, args...).Scan(&m.UpdatedAt)
	logger.DatabaseResult("update", 1, err, "table", w.rt.name)
	return translate(err)
}

// Delete relies on ON DELETE CASCADE to remove the resource's actions.
func (w *workflowRepository[R, A]) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, w.rt.name)
	logger.DatabaseCall("delete", query, "table", w.rt.name, "id", id)
	res, err := w.db.ExecContext(ctx, query, id)
	if err != nil {
		logger.DatabaseResult("delete", 0, err, "table", w.rt.name)
		return err
	}
	return affected(res)
}

func (w *workflowRepository[R, A]) SetStatus(ctx context.Context, id int64, status domain.Status) (R, error) {
	query := fmt.Sprintf(`UPDATE %s SET status = $1, updated_at = NOW() WHERE id = $2 RETURNING %s`,
		w.rt.name, w.resourceCols)
	logger.DatabaseCall("update", query, "table", w.rt.name, "id", id, "status", status)
	r, err := w.scanResource(w.db.QueryRowContext(ctx, query, status, id))
	if err != nil {
		var zero R
		return zero, translate(err)
	}
	return r, nil
}

func (w *workflowRepository[R, A]) CreateAction(ctx context.Context, a A) error {
	s := a.Core()
	cols := append([]string{w.at.parent, "full_name", "student_id", "email", "phone", "status"}, names(w.at.extra)...)
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s) RETURNING id, created_at`,
		w.at.name, strings.Join(cols, ", "), placeholders(1, len(cols)))
	args := append([]any{a.ParentID(), s.FullName, s.StudentID, s.Email, s.Phone, s.Status}, w.at.fields(a)...)

	logger.DatabaseCall("insert", query, "table", w.at.name)
	err := w.db.QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.CreatedAt)
	logger.DatabaseResult("insert", 1, err, "table", w.at.name)
	return translate(err)
}

func (w *workflowRepository[R, A]) GetAction(ctx context.Context, resourceID, actionID int64) (A, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1 AND %s = $2`, w.actionCols, w.at.name, w.at.parent)
	a, err := w.scanAction(w.db.QueryRowContext(ctx, query, actionID, resourceID))
	if err != nil {
		var zero A
		return zero, translate(err)
	}
	return a, nil
}

func (w *workflowRepository[R, A]) queryActions(ctx context.Context, query string, arg any) ([]A, error) {
	logger.DatabaseCall("select", query, "table", w.at.name)
	rows, err := w.db.QueryContext(ctx, query, arg)
	if err != nil {
		logger.DatabaseResult("select", 0, err, "table", w.at.name)
		return nil, err
	}
	defer rows.Close()

	out := []A{}
	for rows.Next() {
		a, err := w.scanAction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	logger.DatabaseResult("select", int64(len(out)), rows.Err(), "table", w.at.name)
	return out, rows.Err()
}

func (w *workflowRepository[R, A]) ListActions(ctx context.Context, resourceID int64) ([]A, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY created_at DESC, id DESC`,
		w.actionCols, w.at.name, w.at.parent)
	return w.queryActions(ctx, query, resourceID)
}

func (w *workflowRepository[R, A]) ListActionsByEmail(ctx context.Context, email string) ([]A, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE LOWER(email) = LOWER($1) ORDER BY created_at DESC, id DESC`,
		w.actionCols, w.at.name)
	return w.queryActions(ctx, query, email)
}

func (w *workflowRepository[R, A]) SetActionStatus(ctx context.Context, actionID int64, status domain.Status) (A, error) {
	query := fmt.Sprintf(`UPDATE %s SET status = $1 WHERE id = $2 RETURNING %s`, w.at.name, w.actionCols)
	logger.DatabaseCall("update", query, "table", w.at.name, "id", actionID, "status", status)
	a, err := w.scanAction(w.db.QueryRowContext(ctx, query, status, actionID))
	if err != nil {
		var zero A
		return zero, translate(err)
	}
	return a, nil
}
