package rules

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/kosmatoff/BMS-SchedulingService/internal/domain"
	"github.com/kosmatoff/BMS-SchedulingService/pkg/dbmetrics"
	"github.com/kosmatoff/BMS-SchedulingService/pkg/psqlbuilder"
)

// DBExecutor интерфейс выполнения запросов (реализуется *sql.DB и *dbmetrics.DB)
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий для работы с override'ами правил планирования.
// В таблице хранятся только отклонения от дефолтного набора правил;
// полный набор собирается через domain.DefaultRuleSet().MergeOverrides.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория правил
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByCompany получает сохраненные override'ы правил компании.
// Возвращает пустой слайс, если компания пользуется дефолтными правилами.
func (r *Repository) GetByCompany(ctx context.Context, companyID int64) ([]domain.SchedulingRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"rule_id",
		"name",
		"enabled",
		"value",
		"rule_type",
	).
		From("scheduling_rules").
		Where(squirrel.Eq{"company_id": companyID}).
		OrderBy("rule_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByCompany - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCompany - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	overrides := make([]domain.SchedulingRule, 0)
	for rows.Next() {
		var rule domain.SchedulingRule
		if err := rows.Scan(&rule.ID, &rule.Name, &rule.Enabled, &rule.Value, &rule.Type); err != nil {
			return nil, fmt.Errorf("%w: GetByCompany - scan rule: %v", ErrScanRow, err)
		}
		overrides = append(overrides, rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByCompany - rows error: %v", ErrScanRow, err)
	}

	return overrides, nil
}

// Upsert сохраняет override правила для компании
func (r *Repository) Upsert(ctx context.Context, companyID int64, rule domain.SchedulingRule) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("scheduling_rules").
		Columns(
			"company_id",
			"rule_id",
			"name",
			"enabled",
			"value",
			"rule_type",
		).
		Values(
			companyID,
			rule.ID,
			rule.Name,
			rule.Enabled,
			rule.Value,
			rule.Type,
		).
		Suffix("ON CONFLICT (company_id, rule_id) DO UPDATE SET enabled = EXCLUDED.enabled, value = EXCLUDED.value, updated_at = NOW()").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// DeleteByCompany удаляет все override'ы компании (возврат к дефолтным правилам)
func (r *Repository) DeleteByCompany(ctx context.Context, companyID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("scheduling_rules").
		Where(squirrel.Eq{"company_id": companyID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteByCompany - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteByCompany - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}
