package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/bizdir/bizdirapi/internal/auth"
)

func init() {
	Migrations.MustRegister(up_20250901000002, down_20250901000002)
}

type policyLine struct {
	bun.BaseModel `bun:"table:casbin_rules"`

	Ptype string `bun:"ptype"`
	V0    string `bun:"v0"`
	V1    string `bun:"v1"`
	V2    string `bun:"v2"`
	V3    string `bun:"v3"`
}

// seedPolicies is the authoritative (strictest-revision) policy table:
// creation and deletion are admin-only everywhere; managers and guests get
// row-scoped update rights enforced by the repository scope filters on top
// of these gates.
func seedPolicies() []policyLine {
	lines := []policyLine{
		{Ptype: "p", V0: "admin", V1: auth.ObjectWildcard, V2: auth.ActionWildcard},
		{Ptype: "p", V0: "manager", V1: auth.ObjectWildcard, V2: auth.ActionQuery},
		{Ptype: "p", V0: "manager", V1: auth.ObjectWildcard, V2: auth.ActionUpdate},
		{Ptype: "p", V0: "guest", V1: auth.ObjectWildcard, V2: auth.ActionQuery},
		{Ptype: "p", V0: "guest", V1: auth.ObjectUser, V2: auth.ActionUpdate},
	}
	return lines
}

// SeedRBACPolicies inserts any missing policy gates. Safe to run repeatedly;
// also exposed to the `iam seed` command for repairing a stripped table.
func SeedRBACPolicies(ctx context.Context, db *bun.DB) error {
	for _, line := range seedPolicies() {
		_, err := db.NewInsert().
			Model(&line).
			On("CONFLICT DO NOTHING").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("seed policy %s/%s/%s: %w", line.V0, line.V1, line.V2, err)
		}
	}
	return nil
}

// up_20250901000002 seeds the role policy gates consumed by the enforcer.
func up_20250901000002(ctx context.Context, db *bun.DB) error {
	fmt.Print(" [up] seeding rbac policies...")
	if err := SeedRBACPolicies(ctx, db); err != nil {
		return err
	}
	fmt.Println(" OK")
	return nil
}

// down_20250901000002 removes the seeded policies.
func down_20250901000002(ctx context.Context, db *bun.DB) error {
	for _, line := range seedPolicies() {
		_, err := db.NewDelete().
			Model((*policyLine)(nil)).
			Where("ptype = ? AND v0 = ? AND v1 = ? AND v2 = ?", line.Ptype, line.V0, line.V1, line.V2).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("remove policy %s/%s/%s: %w", line.V0, line.V1, line.V2, err)
		}
	}
	return nil
}
