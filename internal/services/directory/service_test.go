package directory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"

	"github.com/bizdir/bizdirapi/internal/auth"
	"github.com/bizdir/bizdirapi/internal/db/bunx"
	"github.com/bizdir/bizdirapi/internal/db/models"
	"github.com/bizdir/bizdirapi/internal/migrations"
	"github.com/bizdir/bizdirapi/internal/repository"
)

func newTestService(t *testing.T) (*Service, *bun.DB) {
	t.Helper()

	db, err := bunx.NewDB(":memory:", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	migrator := migrate.NewMigrator(db, migrations.Migrations)
	ctx := context.Background()
	require.NoError(t, migrator.Init(ctx))
	_, err = migrator.Migrate(ctx)
	require.NoError(t, err)

	return NewService(db), db
}

type world struct {
	manager1  auth.Principal
	manager2  auth.Principal
	guest     auth.Principal
	admin     auth.Principal
	business1 *models.Business
	business2 *models.Business
	product   *models.Product
}

func seedWorld(t *testing.T, svc *Service, db *bun.DB) *world {
	t.Helper()
	ctx := context.Background()
	users := repository.NewBunUserRepository(db)

	w := &world{}
	mk := func(name, email string, role models.Role) auth.Principal {
		u := &models.User{ID: bunx.NewUUIDv7(), Name: name, Email: email, PasswordHash: "x", Role: role}
		require.NoError(t, users.Create(ctx, u))
		return auth.Principal{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
	}
	w.admin = mk("Root", "root@example.com", models.RoleAdmin)
	w.manager1 = mk("Mara", "mara@example.com", models.RoleManager)
	w.manager2 = mk("Nico", "nico@example.com", models.RoleManager)
	w.guest = mk("Gus", "gus@example.com", models.RoleGuest)

	w.business1 = &models.Business{Name: "Acme Plumbing", ContactEmail: "acme@example.com", ManagerID: &w.manager1.ID}
	require.NoError(t, svc.CreateBusiness(ctx, w.business1))
	w.business2 = &models.Business{Name: "Zenith Roofing", ContactEmail: "zenith@example.com", ManagerID: &w.manager2.ID}
	require.NoError(t, svc.CreateBusiness(ctx, w.business2))

	w.product = &models.Product{BusinessID: &w.business1.ID, Name: "Faucet", PriceCents: 4999, Stock: 3}
	require.NoError(t, svc.CreateProduct(ctx, w.product))

	return w
}

func TestCreateBusiness_AssignsID(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	b := &models.Business{Name: "Solo", ContactEmail: "solo@example.com"}
	require.NoError(t, svc.CreateBusiness(ctx, b))
	assert.NotEmpty(t, b.ID)

	got, err := svc.GetBusiness(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Solo", got.Name)
}

func TestUpdateBusiness_OwnershipEnforced(t *testing.T) {
	svc, db := newTestService(t)
	w := seedWorld(t, svc, db)
	ctx := context.Background()

	w.business1.Description = "pipes and drains"
	require.NoError(t, svc.UpdateBusiness(ctx, w.manager1, w.business1), "owning manager may update")

	w.business1.Description = "hijacked"
	err := svc.UpdateBusiness(ctx, w.manager2, w.business1)
	assert.ErrorIs(t, err, auth.ErrPermissionDenied, "foreign manager is denied")

	err = svc.UpdateBusiness(ctx, w.guest, w.business1)
	assert.ErrorIs(t, err, auth.ErrPermissionDenied, "guests manage nothing")

	w.business1.Description = "admin override"
	require.NoError(t, svc.UpdateBusiness(ctx, w.admin, w.business1), "admin bypasses ownership")
}

func TestUpdateProduct_OwnershipViaBusinessChain(t *testing.T) {
	svc, db := newTestService(t)
	w := seedWorld(t, svc, db)
	ctx := context.Background()

	w.product.Stock = 10
	require.NoError(t, svc.UpdateProduct(ctx, w.manager1, w.product))

	err := svc.UpdateProduct(ctx, w.manager2, w.product)
	assert.ErrorIs(t, err, auth.ErrPermissionDenied)
}

func TestCreateReview_StampsAuthorFromSession(t *testing.T) {
	svc, db := newTestService(t)
	w := seedWorld(t, svc, db)
	ctx := context.Background()

	forged := w.manager2.ID
	review := &models.Review{BusinessID: &w.business1.ID, Rating: 2, Content: "slow", UserID: &forged}
	require.NoError(t, svc.CreateReview(ctx, w.guest, review))

	got, err := svc.GetReview(ctx, review.ID)
	require.NoError(t, err)
	require.NotNil(t, got.UserID)
	assert.Equal(t, w.guest.ID, *got.UserID, "author comes from the session, not the payload")
	assert.Equal(t, models.ModerationPending, got.ModerationStatus, "new reviews await moderation")
}

func TestCreateReviewReply_DenormalizesBusiness(t *testing.T) {
	svc, db := newTestService(t)
	w := seedWorld(t, svc, db)
	ctx := context.Background()

	review := &models.Review{BusinessID: &w.business1.ID, Rating: 4}
	require.NoError(t, svc.CreateReview(ctx, w.guest, review))

	forged := w.business2.ID
	reply := &models.ReviewReply{ReviewID: &review.ID, Content: "thanks", BusinessID: &forged}
	require.NoError(t, svc.CreateReviewReply(ctx, reply))

	got, err := svc.GetReviewReply(ctx, reply.ID)
	require.NoError(t, err)
	require.NotNil(t, got.BusinessID)
	assert.Equal(t, w.business1.ID, *got.BusinessID, "business id is copied from the parent, caller value discarded")
}

func TestCreateReviewReply_MissingParentStillCreates(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	missing := bunx.NewUUIDv7()
	reply := &models.ReviewReply{ReviewID: &missing, Content: "into the void"}
	require.NoError(t, svc.CreateReviewReply(ctx, reply), "a missing parent is logged, not fatal")

	got, err := svc.GetReviewReply(ctx, reply.ID)
	require.NoError(t, err)
	assert.Nil(t, got.BusinessID, "no parent means no denormalized business")
}

func TestCreateComplaintReply_DenormalizesBusiness(t *testing.T) {
	svc, db := newTestService(t)
	w := seedWorld(t, svc, db)
	ctx := context.Background()

	complaint := &models.Complaint{BusinessID: &w.business1.ID, Subject: "leak came back"}
	require.NoError(t, svc.CreateComplaint(ctx, w.guest, complaint))
	assert.Equal(t, models.ComplaintPending, complaint.Status)

	reply := &models.ComplaintReply{ComplaintID: &complaint.ID, Content: "on our way"}
	require.NoError(t, svc.CreateComplaintReply(ctx, reply))

	got, err := svc.GetComplaintReply(ctx, reply.ID)
	require.NoError(t, err)
	require.NotNil(t, got.BusinessID)
	assert.Equal(t, w.business1.ID, *got.BusinessID)
}

func TestCreateQuoteReply_MarksQuoteReplied(t *testing.T) {
	svc, db := newTestService(t)
	w := seedWorld(t, svc, db)
	ctx := context.Background()

	quote := &models.Quote{BusinessID: &w.business1.ID, Service: "repipe", Message: "how much"}
	require.NoError(t, svc.CreateQuote(ctx, w.guest, quote))
	assert.Equal(t, models.QuotePending, quote.Status)

	reply := &models.QuoteReply{QuoteID: &quote.ID, Content: "around 2400"}
	require.NoError(t, svc.CreateQuoteReply(ctx, reply))

	got, err := svc.GetQuote(ctx, quote.ID)
	require.NoError(t, err)
	assert.Equal(t, models.QuoteReplied, got.Status)

	gotReply, err := svc.GetQuoteReply(ctx, reply.ID)
	require.NoError(t, err)
	require.NotNil(t, gotReply.BusinessID)
	assert.Equal(t, w.business1.ID, *gotReply.BusinessID)
}

func TestUpdateReviewReply_PinsDenormalizedFields(t *testing.T) {
	svc, db := newTestService(t)
	w := seedWorld(t, svc, db)
	ctx := context.Background()

	review := &models.Review{BusinessID: &w.business1.ID, Rating: 3}
	require.NoError(t, svc.CreateReview(ctx, w.guest, review))
	reply := &models.ReviewReply{ReviewID: &review.ID, Content: "noted"}
	require.NoError(t, svc.CreateReviewReply(ctx, reply))

	tampered := w.business2.ID
	edit := &models.ReviewReply{ID: reply.ID, Content: "noted, fixed", BusinessID: &tampered}
	require.NoError(t, svc.UpdateReviewReply(ctx, w.manager1, edit))

	got, err := svc.GetReviewReply(ctx, reply.ID)
	require.NoError(t, err)
	assert.Equal(t, "noted, fixed", got.Content)
	require.NotNil(t, got.BusinessID)
	assert.Equal(t, w.business1.ID, *got.BusinessID, "update cannot move a reply to another business")
}

func TestUpdateReviewReply_ManagerScopedByDenormalizedBusiness(t *testing.T) {
	svc, db := newTestService(t)
	w := seedWorld(t, svc, db)
	ctx := context.Background()

	review := &models.Review{BusinessID: &w.business1.ID, Rating: 3}
	require.NoError(t, svc.CreateReview(ctx, w.guest, review))
	reply := &models.ReviewReply{ReviewID: &review.ID, Content: "ours"}
	require.NoError(t, svc.CreateReviewReply(ctx, reply))

	edit := &models.ReviewReply{ID: reply.ID, Content: "stolen"}
	err := svc.UpdateReviewReply(ctx, w.manager2, edit)
	assert.ErrorIs(t, err, auth.ErrPermissionDenied)
}

func TestListScoping(t *testing.T) {
	svc, db := newTestService(t)
	w := seedWorld(t, svc, db)
	ctx := context.Background()

	review1 := &models.Review{BusinessID: &w.business1.ID, Rating: 5}
	require.NoError(t, svc.CreateReview(ctx, w.guest, review1))
	review2 := &models.Review{BusinessID: &w.business2.ID, Rating: 1}
	require.NoError(t, svc.CreateReview(ctx, w.guest, review2))

	all, err := svc.ListReviews(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	scoped, err := svc.ListReviews(ctx, w.business1.ID)
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, review1.ID, scoped[0].ID)

	mine, err := svc.ListBusinesses(ctx, w.manager1.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, w.business1.ID, mine[0].ID)
}

func TestJobListing_Lifecycle(t *testing.T) {
	svc, db := newTestService(t)
	w := seedWorld(t, svc, db)
	ctx := context.Background()

	listing := &models.JobListing{BusinessID: &w.business1.ID, Title: "Apprentice Plumber", EmploymentType: models.EmploymentFullTime}
	require.NoError(t, svc.CreateJobListing(ctx, listing))
	assert.False(t, listing.CreatedAt.IsZero(), "insert hook stamps created_at")

	listing.SalaryRange = "45k-60k"
	require.NoError(t, svc.UpdateJobListing(ctx, w.manager1, listing))

	err := svc.UpdateJobListing(ctx, w.manager2, listing)
	assert.ErrorIs(t, err, auth.ErrPermissionDenied)

	bad := &models.JobListing{BusinessID: &w.business1.ID, Title: "Mystery", EmploymentType: "gig"}
	assert.Error(t, svc.CreateJobListing(ctx, bad))

	require.NoError(t, svc.DeleteJobListing(ctx, listing.ID))
	_, err = svc.GetJobListing(ctx, listing.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
