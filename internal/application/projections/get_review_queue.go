package projections

import (
	"context"
	"log/slog"

	storageApplication "academy/internal/adapters/storage/application"
	"academy/internal/domain/application"
	"academy/internal/domain/game"
)

// GetReviewQueueQuery carries input for the review queue projection.
type GetReviewQueueQuery struct {
	GameID string // optional filter
	Limit  int
	Offset int
}

// GetReviewQueueDeps holds dependencies for the review queue projection.
type GetReviewQueueDeps struct {
	Applications ApplicationStore
	Accounts     AccountStore
}

// QueueItem is one pending application enriched with applicant details.
type QueueItem struct {
	ApplicationID  string
	ApplicantName  string
	ApplicantEmail string
	GamerTag       string
	GameName       string
	Bio            string
	ProofURL       string
	CVURL          string
	SubmittedAt    string // RFC 3339 date portion
}

// ReviewQueueResult carries the moderator queue view.
type ReviewQueueResult struct {
	Items        []QueueItem
	PendingTotal int
}

// GetReviewQueue lists pending applications oldest first for moderators,
// joined with the applicant account and game catalog.
// PRE: Caller is a moderator or admin (enforced by handler)
// POST: Items are ordered by submission time ascending
func GetReviewQueue(ctx context.Context, query GetReviewQueueQuery, deps GetReviewQueueDeps) (ReviewQueueResult, error) {
	filter := storageApplication.ListFilter{
		Status: application.StatusPending,
		GameID: query.GameID,
		Limit:  query.Limit,
		Offset: query.Offset,
	}

	apps, err := deps.Applications.List(ctx, filter)
	if err != nil {
		return ReviewQueueResult{}, err
	}
	total, err := deps.Applications.Count(ctx, filter)
	if err != nil {
		return ReviewQueueResult{}, err
	}

	result := ReviewQueueResult{PendingTotal: total}
	for _, app := range apps {
		item := QueueItem{
			ApplicationID: app.ID,
			GamerTag:      app.GamerTag,
			GameName:      app.GameID,
			Bio:           app.Bio,
			ProofURL:      app.ProofURL,
			CVURL:         app.CVURL,
			SubmittedAt:   app.SubmittedAt.Format("2006-01-02"),
		}
		if g, gErr := game.GetByID(app.GameID); gErr == nil {
			item.GameName = g.Name
		}
		acct, aErr := deps.Accounts.GetByID(ctx, app.AccountID)
		if aErr != nil {
			// Queue still renders; the row just lacks identity details
			slog.Warn("review_queue_account_missing", "application_id", app.ID, "account_id", app.AccountID)
		} else {
			item.ApplicantName = acct.FirstName + " " + acct.LastName
			item.ApplicantEmail = acct.Email
		}
		result.Items = append(result.Items, item)
	}
	return result, nil
}
