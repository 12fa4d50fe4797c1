// Package bunadapter persists Casbin policies through the shared bun
// connection. Trimmed from the github.com/msales/casbin-bun-adapter design:
// policies here are seeded by migration and read at startup, so only the
// core persist.Adapter surface plus batch writes is implemented.
package bunadapter

import (
	"context"
	"fmt"
	"strings"

	"github.com/casbin/casbin/v2/model"
	"github.com/casbin/casbin/v2/persist"
	"github.com/uptrace/bun"
)

// Adapter stores Casbin rules in the casbin_rules table.
type Adapter struct {
	db *bun.DB
}

var (
	_ persist.Adapter      = (*Adapter)(nil)
	_ persist.BatchAdapter = (*Adapter)(nil)
)

// NewAdapter creates a new Adapter using bun's database connection.
// Expects the casbin_rules table to exist (created by migration).
func NewAdapter(db *bun.DB) (*Adapter, error) {
	return &Adapter{db: db}, nil
}

// LoadPolicy loads all policy rules from the database.
func (a *Adapter) LoadPolicy(m model.Model) error {
	var rules []*CasbinRule

	if err := a.db.NewSelect().Model(&rules).Scan(context.Background()); err != nil {
		return fmt.Errorf("load policy from adapter db: %w", err)
	}

	for _, r := range rules {
		if err := persist.LoadPolicyLine(r.String(), m); err != nil {
			return fmt.Errorf("load policy line %q: %w", r.String(), err)
		}
	}

	return nil
}

// SavePolicy replaces all stored rules with the model's current policy.
func (a *Adapter) SavePolicy(m model.Model) error {
	var rules []*CasbinRule
	for _, section := range []string{"p", "g"} {
		for ptype, assertion := range m[section] {
			for _, rule := range assertion.Policy {
				rules = append(rules, newCasbinRule(ptype, rule))
			}
		}
	}

	err := a.db.RunInTx(context.Background(), nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().Model((*CasbinRule)(nil)).Where("1 = 1").Exec(ctx); err != nil {
			return err
		}
		for _, rule := range rules {
			if _, err := tx.NewInsert().Model(rule).On("CONFLICT DO NOTHING").Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save policy to adapter db: %w", err)
	}
	return nil
}

// AddPolicy adds a policy rule to the database.
func (a *Adapter) AddPolicy(_ string, ptype string, rule []string) error {
	return a.AddPolicies("", ptype, [][]string{rule})
}

// AddPolicies adds policy rules to the database.
func (a *Adapter) AddPolicies(_ string, ptype string, rules [][]string) error {
	err := a.db.RunInTx(context.Background(), nil, func(ctx context.Context, tx bun.Tx) error {
		for _, rule := range rules {
			if _, err := tx.NewInsert().Model(newCasbinRule(ptype, rule)).On("CONFLICT DO NOTHING").Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("add policy rules: %w", err)
	}
	return nil
}

// RemovePolicy removes a policy rule from the database.
func (a *Adapter) RemovePolicy(_ string, ptype string, rule []string) error {
	return a.RemovePolicies("", ptype, [][]string{rule})
}

// RemovePolicies removes policy rules from the database.
func (a *Adapter) RemovePolicies(_ string, ptype string, rules [][]string) error {
	err := a.db.RunInTx(context.Background(), nil, func(ctx context.Context, tx bun.Tx) error {
		for _, rule := range rules {
			r := newCasbinRule(ptype, rule)
			q := tx.NewDelete().Model((*CasbinRule)(nil)).Where("ptype = ?", r.Ptype)
			for col, v := range map[string]string{"v0": r.V0, "v1": r.V1, "v2": r.V2, "v3": r.V3} {
				if v != "" {
					q = q.Where("? = ?", bun.Ident(col), v)
				}
			}
			if _, err := q.Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("remove policy rules: %w", err)
	}
	return nil
}

// RemoveFilteredPolicy removes policy rules matching the field filter.
func (a *Adapter) RemoveFilteredPolicy(_ string, ptype string, fieldIndex int, fieldValues ...string) error {
	query := a.db.NewDelete().Model((*CasbinRule)(nil)).Where("ptype = ?", ptype)

	columns := []string{"v0", "v1", "v2", "v3"}
	for i, v := range fieldValues {
		idx := fieldIndex + i
		if idx >= len(columns) || v == "" {
			continue
		}
		query = query.Where("? = ?", bun.Ident(columns[idx]), v)
	}

	if _, err := query.Exec(context.Background()); err != nil {
		return fmt.Errorf("remove filtered policy: %w", err)
	}
	return nil
}

// CasbinRule is one stored policy line. A composite primary key across all
// fields stands in for a surrogate id.
type CasbinRule struct {
	bun.BaseModel `bun:"table:casbin_rules,alias:cr"`

	Ptype string `bun:",pk,type:varchar(100),notnull"` // 'p' (policy) or 'g' (grouping)
	V0    string `bun:",pk,type:varchar(255)"`         // role
	V1    string `bun:",pk,type:varchar(255)"`         // object type
	V2    string `bun:",pk,type:varchar(255)"`         // action
	V3    string `bun:",pk,type:varchar(255)"`         // reserved
}

func newCasbinRule(ptype string, rule []string) *CasbinRule {
	line := &CasbinRule{Ptype: ptype}

	if len(rule) > 0 {
		line.V0 = rule[0]
	}
	if len(rule) > 1 {
		line.V1 = rule[1]
	}
	if len(rule) > 2 {
		line.V2 = rule[2]
	}
	if len(rule) > 3 {
		line.V3 = rule[3]
	}

	return line
}

// String renders the rule in Casbin's CSV line format, preserving empty
// fields that appear before the last non-empty one.
func (r *CasbinRule) String() string {
	values := []string{r.V0, r.V1, r.V2, r.V3}
	lastNonEmpty := -1
	for i := len(values) - 1; i >= 0; i-- {
		if values[i] != "" {
			lastNonEmpty = i
			break
		}
	}

	parts := append([]string{r.Ptype}, values[:lastNonEmpty+1]...)
	return strings.Join(parts, ", ")
}
