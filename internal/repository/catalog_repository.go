package repository

import (
	"context"
	"fmt"

	"barkeep/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// catalogRepository implements the CatalogRepository interface using PostgreSQL.
type catalogRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCatalogRepository creates a new PostgreSQL-backed catalog repository.
func NewCatalogRepository(pool *pgxpool.Pool, logger zerolog.Logger) CatalogRepository {
	return &catalogRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "catalog").Logger(),
	}
}

// LoadCatalog reads a workspace inside a single read-only REPEATABLE READ
// transaction so every query sees the same point in time.
func (r *catalogRepository) LoadCatalog(ctx context.Context, workspaceID int64) (*model.WorkspaceCatalog, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})
	if err != nil {
		r.logger.Error().Err(err).Int64("workspace_id", workspaceID).Msg("failed to begin catalog transaction")
		return nil, fmt.Errorf("failed to begin catalog transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	categories, err := r.categories(ctx, tx, workspaceID)
	if err != nil {
		return nil, err
	}

	products, err := r.products(ctx, tx, workspaceID)
	if err != nil {
		return nil, err
	}

	recipes, err := r.recipes(ctx, tx, workspaceID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.Error().Err(err).Int64("workspace_id", workspaceID).Msg("failed to close catalog transaction")
		return nil, fmt.Errorf("failed to close catalog transaction: %w", err)
	}

	r.logger.Debug().
		Int64("workspace_id", workspaceID).
		Int("categories", len(categories)).
		Int("products", len(products)).
		Int("recipes", len(recipes)).
		Msg("catalog loaded")

	return &model.WorkspaceCatalog{
		WorkspaceID: workspaceID,
		Categories:  categories,
		Products:    products,
		Recipes:     recipes,
	}, nil
}

func (r *catalogRepository) categories(ctx context.Context, tx pgx.Tx, workspaceID int64) ([]model.Category, error) {
	query := `
		SELECT id, workspace_id, name, parent_id, group_id
		FROM categories
		WHERE workspace_id = $1
		ORDER BY id
	`

	rows, err := tx.Query(ctx, query, workspaceID)
	if err != nil {
		r.logger.Error().Err(err).Int64("workspace_id", workspaceID).Msg("failed to query categories")
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := []model.Category{}
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.WorkspaceID, &c.Name, &c.ParentID, &c.GroupID); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan category row")
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating category rows")
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

func (r *catalogRepository) products(ctx context.Context, tx pgx.Tx, workspaceID int64) ([]model.Product, error) {
	query := `
		SELECT id, workspace_id, category_id, name, in_stock_quantity
		FROM products
		WHERE workspace_id = $1
		ORDER BY id
	`

	rows, err := tx.Query(ctx, query, workspaceID)
	if err != nil {
		r.logger.Error().Err(err).Int64("workspace_id", workspaceID).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.WorkspaceID, &p.CategoryID, &p.Name, &p.InStockQuantity); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// recipes loads the workspace's recipes and attaches their steps in order.
func (r *catalogRepository) recipes(ctx context.Context, tx pgx.Tx, workspaceID int64) ([]model.Recipe, error) {
	query := `
		SELECT id, workspace_id, name
		FROM recipes
		WHERE workspace_id = $1
		ORDER BY id
	`

	rows, err := tx.Query(ctx, query, workspaceID)
	if err != nil {
		r.logger.Error().Err(err).Int64("workspace_id", workspaceID).Msg("failed to query recipes")
		return nil, fmt.Errorf("failed to query recipes: %w", err)
	}
	defer rows.Close()

	recipes := []model.Recipe{}
	index := make(map[int64]int)
	for rows.Next() {
		var rec model.Recipe
		if err := rows.Scan(&rec.ID, &rec.WorkspaceID, &rec.Name); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan recipe row")
			return nil, fmt.Errorf("failed to scan recipe: %w", err)
		}
		rec.Steps = []model.RecipeStep{}
		index[rec.ID] = len(recipes)
		recipes = append(recipes, rec)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating recipe rows")
		return nil, fmt.Errorf("error iterating recipes: %w", err)
	}

	stepQuery := `
		SELECT s.recipe_id, s.position, s.product_id, s.category_override_id, s.match_mode
		FROM recipe_steps s
		JOIN recipes r ON r.id = s.recipe_id
		WHERE r.workspace_id = $1
		ORDER BY s.recipe_id, s.position
	`

	stepRows, err := tx.Query(ctx, stepQuery, workspaceID)
	if err != nil {
		r.logger.Error().Err(err).Int64("workspace_id", workspaceID).Msg("failed to query recipe steps")
		return nil, fmt.Errorf("failed to query recipe steps: %w", err)
	}
	defer stepRows.Close()

	for stepRows.Next() {
		var (
			s    model.RecipeStep
			mode string
		)
		if err := stepRows.Scan(&s.RecipeID, &s.Position, &s.ProductID, &s.CategoryOverrideID, &mode); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan recipe step row")
			return nil, fmt.Errorf("failed to scan recipe step: %w", err)
		}
		s.MatchMode = model.MatchMode(mode)

		i, ok := index[s.RecipeID]
		if !ok {
			continue
		}
		recipes[i].Steps = append(recipes[i].Steps, s)
	}

	if err := stepRows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating recipe step rows")
		return nil, fmt.Errorf("error iterating recipe steps: %w", err)
	}

	return recipes, nil
}
