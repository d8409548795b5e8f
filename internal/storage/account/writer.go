package account

import (
	"context"
	"database/sql"
	"errors"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"
)

// Writer issues one statement per call against exec, which is either the
// pooled database or a transaction.
type Writer struct {
	exec bob.Executor
	Reader
}

// Ensure Writer implements IAccountTable at compile time.
var _ IAccountTable = (*Writer)(nil)

func NewWriter(exec bob.Executor) *Writer {
	return &Writer{
		exec: exec,
		Reader: Reader{
			exec: exec,
		},
	}
}

// Insert creates a new account and returns the stored row, including the
// generated id and date_joined.
func (w *Writer) Insert(ctx context.Context, create *AccountCreate) (*Account, error) {
	query := psql.Insert(
		im.Into(TableName, "name", "email", "address", "phone_number"),
		im.Values(
			psql.Arg(create.Name),
			psql.Arg(create.Email),
			psql.Arg(create.Address),
			psql.Arg(create.PhoneNumber),
		),
		im.Returning(accountColumns...),
	)

	row, err := bob.One(ctx, w.exec, query, scan.StructMapper[accountRow]())
	if err != nil {
		return nil, err
	}
	return rowToAccount(row), nil
}

// Update overwrites the mutable columns of the account and returns the
// stored row, or nil when the id does not exist.
func (w *Writer) Update(ctx context.Context, id int64, update *AccountUpdate) (*Account, error) {
	query := psql.Update(
		um.Table(TableName),
		um.SetCol("name").ToArg(update.Name),
		um.SetCol("email").ToArg(update.Email),
		um.SetCol("address").ToArg(update.Address),
		um.SetCol("phone_number").ToArg(update.PhoneNumber),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
		um.Returning(accountColumns...),
	)

	row, err := bob.One(ctx, w.exec, query, scan.StructMapper[accountRow]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rowToAccount(row), nil
}

// Delete removes the account and reports whether a row existed.
func (w *Writer) Delete(ctx context.Context, id int64) (bool, error) {
	query := psql.Delete(
		dm.From(TableName),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)

	result, err := bob.Exec(ctx, w.exec, query)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
