// Package shift_repo stores shifts, purchases and positions in PostgreSQL.
package shift_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/shopspring/decimal"

	"backoffice/internal/core/apperror"
	"backoffice/internal/core/id"
	"backoffice/internal/domain/filter"
	"backoffice/internal/domain/shift"
	"backoffice/internal/infrastructure/storage/postgres"
)

const (
	shiftTable    = "pos_shifts"
	purchaseTable = "pos_purchases"
	positionTable = "pos_positions"
)

var _ shift.Repository = (*Repo)(nil)

// filterColumns maps shift filter fields to the aliased shift table.
var filterColumns = postgres.Columns{
	shift.FieldID:         "s.id",
	shift.FieldShopNumber: "s.shop_number",
	shift.FieldCashNumber: "s.cash_number",
	shift.FieldCloseTime:  "s.close_time",
}

var (
	shiftColumns    = postgres.ExtractDBColumns[shift.Shift]()
	purchaseColumns = postgres.ExtractDBColumns[shift.Purchase]()
	positionColumns = postgres.ExtractDBColumns[shift.Position]()
)

// Repo implements shift.Repository.
type Repo struct {
	txm      *postgres.TxManager
	inserter *postgres.BatchInserter
	batch    *postgres.BatchExecutor
}

// NewRepo creates a new shift repository.
func NewRepo(txm *postgres.TxManager) *Repo {
	return &Repo{
		txm:      txm,
		inserter: postgres.NewBatchInserter(txm),
		batch:    postgres.NewBatchExecutor(txm),
	}
}

func builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// shallowQuery selects shift rows only.
func shallowQuery(pred filter.Predicate) (squirrel.SelectBuilder, error) {
	q := builder().
		Select(qualify("s", shiftColumns)...).
		From(shiftTable + " s").
		OrderBy("s.close_time", "s.shift_number", "s.id")
	return postgres.ApplyFilters(q, pred, filterColumns)
}

// deepQuery left-joins purchases and positions: one row per position,
// one row per empty purchase, one row per shift without purchases.
func deepQuery(pred filter.Predicate) (squirrel.SelectBuilder, error) {
	cols := make([]string, 0, len(shiftColumns)+len(purchaseColumns)+len(positionColumns))
	cols = append(cols, alias("s", "s", shiftColumns)...)
	cols = append(cols, alias("p", "p", purchaseColumns)...)
	cols = append(cols, alias("l", "l", positionColumns)...)

	q := builder().
		Select(cols...).
		From(shiftTable + " s").
		LeftJoin(purchaseTable + " p ON p.shift_id = s.id").
		LeftJoin(positionTable + " l ON l.purchase_id = p.id").
		OrderBy("s.close_time", "s.shift_number", "s.id", "p.purchase_time", "p.id", "l.line_no")
	return postgres.ApplyFilters(q, pred, filterColumns)
}

// QueryShallow implements shift.Reader.
func (r *Repo) QueryShallow(ctx context.Context, pred filter.Predicate) ([]shift.Shift, error) {
	q, err := shallowQuery(pred)
	if err != nil {
		return nil, err
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build shallow query: %w", err)
	}

	var rows []shift.Shift
	err = r.txm.ReadOnly(ctx, func(ctx context.Context) error {
		return pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &rows, sql, args...)
	})
	if err != nil {
		return nil, fmt.Errorf("query shifts: %w", err)
	}
	return rows, nil
}

// graphRecord is a flat deep-join row; purchase and position columns are
// nullable because of the left joins.
type graphRecord struct {
	SID         id.ID               `db:"s_id"`
	SNumber     int                 `db:"s_shift_number"`
	SShop       int                 `db:"s_shop_number"`
	SCash       int                 `db:"s_cash_number"`
	SOpenTime   time.Time           `db:"s_open_time"`
	SCloseTime  *time.Time          `db:"s_close_time"`
	STotal      decimal.Decimal     `db:"s_total"`
	PID         *id.ID              `db:"p_id"`
	PShiftID    *id.ID              `db:"p_shift_id"`
	PTime       *time.Time          `db:"p_purchase_time"`
	PTotal      decimal.NullDecimal `db:"p_total"`
	LID         *id.ID              `db:"l_id"`
	LPurchaseID *id.ID              `db:"l_purchase_id"`
	LLineNo     *int                `db:"l_line_no"`
	LBarcode    *string             `db:"l_barcode"`
	LArticle    *string             `db:"l_article"`
	LName       *string             `db:"l_name"`
	LPrice      decimal.NullDecimal `db:"l_price"`
}

func (g graphRecord) toRow() shift.GraphRow {
	row := shift.GraphRow{
		Shift: shift.Shift{
			ID:         g.SID,
			Number:     g.SNumber,
			ShopNumber: g.SShop,
			CashNumber: g.SCash,
			OpenTime:   g.SOpenTime,
			CloseTime:  g.SCloseTime,
			Total:      g.STotal,
		},
	}
	if g.PID == nil {
		return row
	}

	p := &shift.Purchase{ID: *g.PID, Total: g.PTotal.Decimal}
	if g.PShiftID != nil {
		p.ShiftID = *g.PShiftID
	}
	if g.PTime != nil {
		p.PurchaseTime = *g.PTime
	}
	row.Purchase = p
	if g.LID == nil {
		return row
	}

	pos := &shift.Position{ID: *g.LID, Price: g.LPrice.Decimal}
	if g.LPurchaseID != nil {
		pos.PurchaseID = *g.LPurchaseID
	}
	if g.LLineNo != nil {
		pos.LineNo = *g.LLineNo
	}
	pos.Barcode = deref(g.LBarcode)
	pos.Article = deref(g.LArticle)
	pos.Name = deref(g.LName)
	row.Position = pos
	return row
}

// QueryDeep implements shift.Reader.
func (r *Repo) QueryDeep(ctx context.Context, pred filter.Predicate) ([]shift.GraphRow, error) {
	q, err := deepQuery(pred)
	if err != nil {
		return nil, err
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build deep query: %w", err)
	}

	var records []graphRecord
	err = r.txm.ReadOnly(ctx, func(ctx context.Context) error {
		return pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &records, sql, args...)
	})
	if err != nil {
		return nil, fmt.Errorf("query shift graph: %w", err)
	}

	rows := make([]shift.GraphRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, rec.toRow())
	}
	return rows, nil
}

// Create inserts the shift and its purchases in one batch, then copies positions.
func (r *Repo) Create(ctx context.Context, s *shift.Shift) error {
	return r.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		queries, err := insertQueries(s)
		if err != nil {
			return err
		}
		if _, err := r.batch.ExecuteBatch(ctx, queries); err != nil {
			return fmt.Errorf("insert shift: %w", err)
		}

		rows := positionRows(s)
		if _, err := r.inserter.CopyFromSlice(ctx, positionTable, positionColumns, rows); err != nil {
			return fmt.Errorf("copy positions: %w", err)
		}
		return nil
	})
}

func insertQueries(s *shift.Shift) ([]postgres.BatchQuery, error) {
	queries := make([]postgres.BatchQuery, 0, len(s.Purchases)+1)

	sql, args, err := builder().Insert(shiftTable).SetMap(postgres.StructToMap(s)).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build shift insert: %w", err)
	}
	queries = append(queries, postgres.BatchQuery{SQL: sql, Args: args})

	if len(s.Purchases) == 0 {
		return queries, nil
	}

	ins := builder().Insert(purchaseTable).Columns(purchaseColumns...)
	for i := range s.Purchases {
		p := postgres.StructToMap(&s.Purchases[i])
		values := make([]any, 0, len(purchaseColumns))
		for _, col := range purchaseColumns {
			values = append(values, p[col])
		}
		ins = ins.Values(values...)
	}
	sql, args, err = ins.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build purchase insert: %w", err)
	}
	return append(queries, postgres.BatchQuery{SQL: sql, Args: args}), nil
}

func positionRows(s *shift.Shift) [][]any {
	var rows [][]any
	for _, p := range s.Purchases {
		for i := range p.Positions {
			m := postgres.StructToMap(&p.Positions[i])
			row := make([]any, 0, len(positionColumns))
			for _, col := range positionColumns {
				row = append(row, m[col])
			}
			rows = append(rows, row)
		}
	}
	return rows
}

// DeletePositions implements shift.Repository.
func (r *Repo) DeletePositions(ctx context.Context, shiftID id.ID) (int64, error) {
	q := builder().
		Delete(positionTable).
		Where(squirrel.Expr("purchase_id IN (SELECT id FROM "+purchaseTable+" WHERE shift_id = ?)", shiftID))
	return r.exec(ctx, q)
}

// DeletePurchases implements shift.Repository.
func (r *Repo) DeletePurchases(ctx context.Context, shiftID id.ID) (int64, error) {
	q := builder().
		Delete(purchaseTable).
		Where(squirrel.Eq{"shift_id": shiftID})
	return r.exec(ctx, q)
}

// DeleteShift implements shift.Repository.
func (r *Repo) DeleteShift(ctx context.Context, shiftID id.ID) error {
	q := builder().
		Delete(shiftTable).
		Where(squirrel.Eq{"id": shiftID})
	n, err := r.exec(ctx, q)
	if err != nil {
		return err
	}
	if n == 0 {
		return apperror.NewNotFound("Shift", shiftID.String())
	}
	return nil
}

func (r *Repo) exec(ctx context.Context, q squirrel.DeleteBuilder) (int64, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete: %w", err)
	}
	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("execute delete: %w", err)
	}
	return tag.RowsAffected(), nil
}

func qualify(table string, cols []string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = table + "." + c
	}
	return out
}

func alias(table, prefix string, cols []string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = fmt.Sprintf("%s.%s AS %s_%s", table, c, prefix, c)
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
