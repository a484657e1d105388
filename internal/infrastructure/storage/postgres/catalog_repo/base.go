// Package catalog_repo provides PostgreSQL implementations for catalog repositories.
package catalog_repo

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"backoffice/internal/core/apperror"
	"backoffice/internal/core/id"
	"backoffice/internal/domain"
	"backoffice/internal/infrastructure/storage/postgres"
)

const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
)

// BaseCatalogRepo provides common CRUD operations for catalog entities.
// Embed this in specific catalog repositories.
type BaseCatalogRepo[T any] struct {
	txm          *postgres.TxManager
	tableName    string
	selectCols   []string
	searchCols   []string
	defaultOrder string
	newFn        func() T
}

// NewBaseCatalogRepo creates a new base catalog repository. Catalogs with a
// name column search and sort by it; others fall back to id.
func NewBaseCatalogRepo[T any](
	txm *postgres.TxManager,
	tableName string,
	selectCols []string,
	newFn func() T,
) *BaseCatalogRepo[T] {
	r := &BaseCatalogRepo[T]{
		txm:          txm,
		tableName:    tableName,
		selectCols:   selectCols,
		defaultOrder: "id",
		newFn:        newFn,
	}
	if slices.Contains(selectCols, "name") {
		r.searchCols = []string{"name"}
		r.defaultOrder = "name"
	}
	return r
}

// SearchOn replaces the columns matched by ListFilter.Search.
func (r *BaseCatalogRepo[T]) SearchOn(cols ...string) *BaseCatalogRepo[T] {
	r.searchCols = cols
	return r
}

// OrderByDefault replaces the sort column used when ListFilter.OrderBy is empty.
func (r *BaseCatalogRepo[T]) OrderByDefault(col string) *BaseCatalogRepo[T] {
	r.defaultOrder = col
	return r
}

// Builder returns a new squirrel builder with PostgreSQL placeholder format.
func (r *BaseCatalogRepo[T]) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *BaseCatalogRepo[T]) querier(ctx context.Context) postgres.Querier {
	return r.txm.GetQuerier(ctx)
}

// Create inserts a new entity using its "db" tags.
func (r *BaseCatalogRepo[T]) Create(ctx context.Context, entity T) error {
	data := postgres.StructToMap(entity)
	if len(data) == 0 {
		return fmt.Errorf("no db tags found in entity")
	}

	// Filter to only include columns that exist in DB
	filteredData := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if val, ok := data[col]; ok {
			filteredData[col] = val
		}
	}

	sql, args, err := r.Builder().
		Insert(r.tableName).
		SetMap(filteredData).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return apperror.NewConflict("record already exists").
				WithDetail("entity", r.tableName).
				WithDetail("constraint", pgErr.ConstraintName).
				WithCause(err)
		}
		return fmt.Errorf("insert %s: %w", r.tableName, err)
	}

	return nil
}

// Update modifies an existing entity with optimistic locking.
func (r *BaseCatalogRepo[T]) Update(ctx context.Context, entity T) error {
	data := postgres.StructToMap(entity)
	if len(data) == 0 {
		return fmt.Errorf("no db tags found in entity")
	}

	entityID, ok := data["id"]
	if !ok {
		return fmt.Errorf("entity has no 'id' field with db tag")
	}

	version, ok := data["version"].(int)
	if !ok {
		return fmt.Errorf("entity has no 'version' field or it is not an int")
	}

	// Exclude immutable fields from SET
	filteredData := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if col == "id" || col == "version" {
			continue
		}
		if val, ok := data[col]; ok {
			filteredData[col] = val
		}
	}

	sql, args, err := r.Builder().
		Update(r.tableName).
		SetMap(filteredData).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": entityID}).
		Where(squirrel.Eq{"version": version}). // optimistic lock: expect current version
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update %s: %w", r.tableName, err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewConcurrentModification(r.tableName, entityID)
	}

	return nil
}

// baseSelect creates a SELECT builder.
func (r *BaseCatalogRepo[T]) baseSelect() squirrel.SelectBuilder {
	return r.Builder().
		Select(r.selectCols...).
		From(r.tableName)
}

// GetByID retrieves entity by ID.
func (r *BaseCatalogRepo[T]) GetByID(ctx context.Context, entityID id.ID) (T, error) {
	entity, err := r.FindOne(ctx, r.baseSelect().Where(squirrel.Eq{"id": entityID}).Limit(1))
	if apperror.IsNotFound(err) {
		return entity, apperror.NewNotFound(r.tableName, entityID.String())
	}
	return entity, err
}

// List retrieves entities with filtering and pagination.
func (r *BaseCatalogRepo[T]) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[T], error) {
	result := domain.ListResult[T]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q, err := r.listQuery(filter)
	if err != nil {
		return result, err
	}

	// Count total (before pagination)
	countSQL, countArgs, err := r.Builder().
		Select("COUNT(*)").
		FromSelect(q, "sub").
		ToSql()
	if err != nil {
		return result, fmt.Errorf("build count query: %w", err)
	}

	querier := r.querier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count: %w", err)
	}

	orderBy, err := r.parseOrderBy(filter.OrderBy)
	if err != nil {
		return result, err
	}
	q = q.OrderBy(orderBy, "id ASC")

	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Select(ctx, querier, &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("list: %w", err)
	}

	return result, nil
}

// listQuery builds the unordered, unpaginated selection for filter.
func (r *BaseCatalogRepo[T]) listQuery(filter domain.ListFilter) (squirrel.SelectBuilder, error) {
	q := r.baseSelect()

	if !filter.IncludeDeleted {
		q = q.Where(squirrel.Eq{"deletion_mark": false})
	}

	if filter.Search != "" && len(r.searchCols) > 0 {
		pattern := "%" + filter.Search + "%"
		or := make(squirrel.Or, 0, len(r.searchCols))
		for _, col := range r.searchCols {
			or = append(or, squirrel.ILike{col: pattern})
		}
		q = q.Where(or)
	}

	if len(filter.IDs) > 0 {
		q = q.Where(squirrel.Eq{"id": filter.IDs})
	}

	// Whitelisted columns keep user input out of SQL.
	q, err := postgres.ApplyFilters(q, filter.AdvancedFilters, postgres.ColumnsOf(r.selectCols, ""))
	if err != nil {
		return q, apperror.NewValidation("invalid filter").WithDetail("error", err.Error())
	}
	return q, nil
}

// Exists checks if entity exists.
func (r *BaseCatalogRepo[T]) Exists(ctx context.Context, entityID id.ID) (bool, error) {
	sql, args, err := r.Builder().
		Select("1").
		From(r.tableName).
		Where(squirrel.Eq{"id": entityID}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var exists int
	err = r.querier(ctx).QueryRow(ctx, sql, args...).Scan(&exists)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("exists: %w", err)
	}

	return true, nil
}

// Delete performs physical removal from the database.
func (r *BaseCatalogRepo[T]) Delete(ctx context.Context, entityID id.ID) error {
	sql, args, err := r.Builder().
		Delete(r.tableName).
		Where(squirrel.Eq{"id": entityID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return apperror.NewConflict("cannot delete: record is referenced by other records").
				WithDetail("entity", r.tableName).
				WithDetail("id", entityID.String()).
				WithCause(err)
		}
		return fmt.Errorf("execute delete %s: %w", r.tableName, err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(r.tableName, entityID.String())
	}

	return nil
}

// SetDeletionMark sets or clears the deletion mark (soft delete).
func (r *BaseCatalogRepo[T]) SetDeletionMark(ctx context.Context, entityID id.ID, marked bool) error {
	sql, args, err := r.Builder().
		Update(r.tableName).
		Set("deletion_mark", marked).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": entityID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build set deletion mark: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("execute set deletion mark: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(r.tableName, entityID.String())
	}

	return nil
}

// FindOne executes a SELECT query and returns a single entity.
func (r *BaseCatalogRepo[T]) FindOne(ctx context.Context, q squirrel.SelectBuilder) (T, error) {
	entity := r.newFn()

	sql, args, err := q.ToSql()
	if err != nil {
		return entity, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.querier(ctx), entity, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return entity, apperror.NewNotFound(r.tableName, "matching query")
		}
		return entity, fmt.Errorf("find one in %s: %w", r.tableName, err)
	}

	return entity, nil
}

// findActive returns the live (unmarked) row matching eq.
func (r *BaseCatalogRepo[T]) findActive(ctx context.Context, eq squirrel.Eq) (T, error) {
	return r.FindOne(ctx, r.baseSelect().
		Where(eq).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1))
}

func (r *BaseCatalogRepo[T]) parseOrderBy(orderBy string) (string, error) {
	if orderBy == "" {
		return r.defaultOrder + " ASC", nil
	}

	// Support "-field" for DESC.
	direction := "ASC"
	field := orderBy
	if strings.HasPrefix(orderBy, "-") {
		direction = "DESC"
		field = strings.TrimPrefix(orderBy, "-")
	} else if strings.HasPrefix(orderBy, "+") {
		field = strings.TrimPrefix(orderBy, "+")
	}

	field = strings.TrimSpace(field)
	if field == "" || !slices.Contains(r.selectCols, field) {
		return "", apperror.NewValidation("invalid orderBy").WithDetail("orderBy", orderBy)
	}

	return field + " " + direction, nil
}
