package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	casbinbunadapter "github.com/bizdir/bizdirapi/internal/auth/bunadapter"
	"github.com/bizdir/bizdirapi/internal/db/models"
)

func init() {
	Migrations.MustRegister(up_20250901000001, down_20250901000001)
}

// tableSet lists every model table in creation order (parents first, so
// foreign-key references resolve on engines that check at create time).
var tableSet = []struct {
	name  string
	model any
}{
	{"users", (*models.User)(nil)},
	{"businesses", (*models.Business)(nil)},
	{"products", (*models.Product)(nil)},
	{"product_images", (*models.ProductImage)(nil)},
	{"reviews", (*models.Review)(nil)},
	{"complaints", (*models.Complaint)(nil)},
	{"quotes", (*models.Quote)(nil)},
	{"product_reviews", (*models.ProductReview)(nil)},
	{"product_complaints", (*models.ProductComplaint)(nil)},
	{"review_replies", (*models.ReviewReply)(nil)},
	{"complaint_replies", (*models.ComplaintReply)(nil)},
	{"quote_replies", (*models.QuoteReply)(nil)},
	{"job_listings", (*models.JobListing)(nil)},
	{"casbin_rules", (*casbinbunadapter.CasbinRule)(nil)},
}

// indexSet lists the lookup paths exercised by row-scoping filters and the
// denormalization hook.
var indexSet = []struct {
	name  string
	table string
	col   string
}{
	{"idx_businesses_manager_id", "businesses", "manager_id"},
	{"idx_products_business_id", "products", "business_id"},
	{"idx_product_images_product_id", "product_images", "product_id"},
	{"idx_reviews_business_id", "reviews", "business_id"},
	{"idx_complaints_business_id", "complaints", "business_id"},
	{"idx_quotes_business_id", "quotes", "business_id"},
	{"idx_product_reviews_product_id", "product_reviews", "product_id"},
	{"idx_product_complaints_product_id", "product_complaints", "product_id"},
	{"idx_review_replies_business_id", "review_replies", "business_id"},
	{"idx_complaint_replies_business_id", "complaint_replies", "business_id"},
	{"idx_quote_replies_business_id", "quote_replies", "business_id"},
	{"idx_job_listings_business_id", "job_listings", "business_id"},
}

// up_20250901000001 creates the full directory schema.
func up_20250901000001(ctx context.Context, db *bun.DB) error {
	for _, t := range tableSet {
		fmt.Printf(" [up] creating %s table...", t.name)
		_, err := db.NewCreateTable().
			Model(t.model).
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("create %s table: %w", t.name, err)
		}
		fmt.Println(" OK")
	}

	for _, idx := range indexSet {
		_, err := db.NewCreateIndex().
			Table(idx.table).
			Index(idx.name).
			Column(idx.col).
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("create index %s: %w", idx.name, err)
		}
	}

	return nil
}

// down_20250901000001 drops everything, children first.
func down_20250901000001(ctx context.Context, db *bun.DB) error {
	for i := len(tableSet) - 1; i >= 0; i-- {
		_, err := db.NewDropTable().
			Model(tableSet[i].model).
			IfExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("drop %s table: %w", tableSet[i].name, err)
		}
	}
	return nil
}
