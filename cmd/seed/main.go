package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/praxis-platform/praxis-backend/internal/config"
	"github.com/praxis-platform/praxis-backend/internal/database"
	"github.com/praxis-platform/praxis-backend/internal/logger"
	"github.com/praxis-platform/praxis-backend/internal/model"
)

// roleSeed pairs a role with its initial permission names. "*" grants the
// entire catalog.
type roleSeed struct {
	name        string
	description string
	permissions []string
}

var roleSeeds = []roleSeed{
	{
		name:        "SUPERADMIN",
		description: "Full platform access",
		permissions: []string{"*"},
	},
	{
		name:        "DIRECTOR",
		description: "Training operations management",
		permissions: []string{
			"VIEW_DASHBOARD", "VIEW_ANALYTICS",
			"VIEW_USERS", "CREATE_USERS", "EDIT_USERS", "DELETE_USERS", "MANAGE_USERS",
			"VIEW_ROLES",
			"VIEW_TRAININGS", "CREATE_TRAININGS", "EDIT_TRAININGS", "DELETE_TRAININGS",
			"VIEW_CLASSES", "CREATE_CLASSES", "EDIT_CLASSES", "DELETE_CLASSES",
			"VIEW_STUDENTS", "CREATE_STUDENTS", "EDIT_STUDENTS", "DELETE_STUDENTS",
			"VIEW_CERTIFICATES", "CREATE_CERTIFICATES",
			"VIEW_REPORTS", "CREATE_REPORTS", "EDIT_REPORTS", "DELETE_REPORTS", "EXPORT_REPORTS",
		},
	},
	{
		name:        "FINANCIAL",
		description: "Financial operations",
		permissions: []string{
			"VIEW_DASHBOARD",
			"VIEW_FINANCIAL", "CREATE_FINANCIAL", "EDIT_FINANCIAL", "DELETE_FINANCIAL",
			"VIEW_FINANCIAL_REPORTS", "GENERATE_FINANCIAL_REPORTS",
			"VIEW_CASH_FLOW", "VIEW_ACCOUNTS_PAYABLE", "VIEW_ACCOUNTS_RECEIVABLE",
			"MANAGE_BANK_ACCOUNTS", "SETTLE_ACCOUNTS",
		},
	},
	{
		name:        "INSTRUCTOR",
		description: "Teaching staff",
		permissions: []string{
			"VIEW_PROFILE", "EDIT_PROFILE",
			"VIEW_OWN_TRAININGS", "EDIT_OWN_TRAININGS",
			"VIEW_OWN_CLASSES", "EDIT_OWN_CLASSES",
			"VIEW_STUDENTS",
			"VIEW_OWN_CERTIFICATES", "CREATE_OWN_CERTIFICATES",
		},
	},
	{
		name:        "STUDENT",
		description: "Trainee account",
		permissions: []string{"VIEW_PROFILE", "EDIT_PROFILE", "VIEW_OWN_CERTIFICATES"},
	},
	{
		name:        "CLIENT",
		description: "Campaign owner account",
		permissions: []string{"VIEW_PROFILE", "EDIT_PROFILE"},
	},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Invalid configuration: %v\n", err)
		return
	}
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	if err := seed(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("Seeding failed")
	}
	log.Info().Msg("Seeding complete")
}

// seed is idempotent: re-running updates descriptions and fills in missing
// links without duplicating anything.
func seed(ctx context.Context, pool *pgxpool.Pool) error {
	return pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		for _, p := range model.PermissionCatalog {
			if _, err := tx.Exec(ctx,
				`INSERT INTO permissions (name, description) VALUES ($1, $2)
				 ON CONFLICT (name) DO UPDATE SET description = EXCLUDED.description`,
				p.Name, p.Description,
			); err != nil {
				return fmt.Errorf("seed permission %s: %w", p.Name, err)
			}
		}

		for _, r := range roleSeeds {
			var roleID int
			if err := tx.QueryRow(ctx,
				`INSERT INTO roles (name, description) VALUES ($1, $2)
				 ON CONFLICT (name) DO UPDATE SET description = EXCLUDED.description
				 RETURNING id`,
				r.name, r.description,
			).Scan(&roleID); err != nil {
				return fmt.Errorf("seed role %s: %w", r.name, err)
			}

			if len(r.permissions) == 1 && r.permissions[0] == "*" {
				if _, err := tx.Exec(ctx,
					`INSERT INTO role_permissions (role_id, permission_id)
					 SELECT $1, id FROM permissions
					 ON CONFLICT DO NOTHING`, roleID,
				); err != nil {
					return fmt.Errorf("grant all to %s: %w", r.name, err)
				}
				continue
			}

			if _, err := tx.Exec(ctx,
				`INSERT INTO role_permissions (role_id, permission_id)
				 SELECT $1, id FROM permissions WHERE name = ANY($2)
				 ON CONFLICT DO NOTHING`,
				roleID, r.permissions,
			); err != nil {
				return fmt.Errorf("grant permissions to %s: %w", r.name, err)
			}
		}
		return nil
	})
}
