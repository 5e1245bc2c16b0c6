package services

import (
	"SteamProfile/apperrors"
	"SteamProfile/constants/economy"
	models "SteamProfile/models/postgres"
	"SteamProfile/repositories"
	"context"
	"strings"
)

// Ratings go from 0 to 5 in half steps on the client; anything in range is kept
const (
	minReviewRating = 0
	maxReviewRating = 5
)

var voteCounters = map[string]string{
	economy.VoteHelpful: "helpful_votes",
	economy.VoteFunny:   "funny_votes",
}

type LocalReviewsService struct {
	store *repositories.Store
}

func NewReviewsService(store *repositories.Store) *LocalReviewsService {
	return &LocalReviewsService{store: store}
}

func validateReview(input ReviewInput) error {
	if input.GameID == 0 {
		return apperrors.NewValidation("Game id is required")
	}
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Content) == "" {
		return apperrors.NewValidation("Review title and content are required")
	}
	if input.Rating < minReviewRating || input.Rating > maxReviewRating {
		return apperrors.NewValidation("Rating must be between %d and %d", minReviewRating, maxReviewRating)
	}
	if input.HoursPlayed < 0 {
		return apperrors.NewValidation("Hours played cannot be negative")
	}
	return nil
}

// SubmitReview stores the user's review of a game. One review per user and game.
func (s *LocalReviewsService) SubmitReview(ctx context.Context, userID uint, input ReviewInput) (*models.Review, error) {
	if err := validateReview(input); err != nil {
		return nil, err
	}
	review := &models.Review{
		UserID:        userID,
		GameID:        input.GameID,
		Title:         strings.TrimSpace(input.Title),
		Content:       strings.TrimSpace(input.Content),
		IsRecommended: input.IsRecommended,
		Rating:        input.Rating,
		HoursPlayed:   input.HoursPlayed,
	}
	err := s.store.Reviews.Create(ctx, review)
	if apperrors.IsConflict(err) {
		return nil, apperrors.NewConflict("You already reviewed game %d", input.GameID)
	}
	if err != nil {
		return nil, err
	}
	return review, nil
}

func (s *LocalReviewsService) ownReview(ctx context.Context, store *repositories.Store, reviewID, userID uint) (*models.Review, error) {
	review, err := store.Reviews.Get(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review.UserID != userID {
		return nil, apperrors.NewForbidden("Review %d belongs to another user", reviewID)
	}
	return review, nil
}

func (s *LocalReviewsService) EditReview(ctx context.Context, reviewID, userID uint, input ReviewInput) (*models.Review, error) {
	review, err := s.ownReview(ctx, s.store, reviewID, userID)
	if err != nil {
		return nil, err
	}
	input.GameID = review.GameID
	if err := validateReview(input); err != nil {
		return nil, err
	}

	err = s.store.Reviews.Update(ctx, reviewID, map[string]interface{}{
		"title":          strings.TrimSpace(input.Title),
		"content":        strings.TrimSpace(input.Content),
		"is_recommended": input.IsRecommended,
		"rating":         input.Rating,
		"hours_played":   input.HoursPlayed,
	})
	if err != nil {
		return nil, err
	}
	return s.store.Reviews.Get(ctx, reviewID)
}

func (s *LocalReviewsService) DeleteReview(ctx context.Context, reviewID, userID uint) error {
	return s.store.Transaction(ctx, func(tx *repositories.Store) error {
		if _, err := s.ownReview(ctx, tx, reviewID, userID); err != nil {
			return err
		}
		return tx.Reviews.Delete(ctx, reviewID)
	})
}

func (s *LocalReviewsService) GetReviewsForGame(ctx context.Context, gameID uint, query ReviewQuery) ([]models.Review, error) {
	return s.store.Reviews.ListForGame(ctx, gameID, query.SortBy, query.Recommended)
}

func (s *LocalReviewsService) GetReviewsByUser(ctx context.Context, userID uint) ([]models.Review, error) {
	return s.store.Reviews.ListByUser(ctx, userID)
}

func (s *LocalReviewsService) GetReviewStatistics(ctx context.Context, gameID uint) (*models.ReviewStats, error) {
	return s.store.Reviews.Stats(ctx, gameID)
}

// ToggleVote adds the user's helpful or funny vote, or takes it back when it
// was already cast. The ledger row and the counter move together.
func (s *LocalReviewsService) ToggleVote(ctx context.Context, reviewID, userID uint, kind string) (*models.Review, error) {
	column, ok := voteCounters[kind]
	if !ok {
		return nil, apperrors.NewValidation("Unknown vote kind %q", kind)
	}

	var review *models.Review
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		current, err := tx.Reviews.Get(ctx, reviewID)
		if err != nil {
			return err
		}
		if current.UserID == userID {
			return apperrors.NewValidation("Cannot vote on your own review")
		}

		voted, err := tx.Reviews.HasVote(ctx, reviewID, userID, kind)
		if err != nil {
			return err
		}
		delta := 1
		if voted {
			// a concurrent toggle may have removed the row already
			removed, err := tx.Reviews.RemoveVote(ctx, reviewID, userID, kind)
			if err != nil {
				return err
			}
			delta = 0
			if removed {
				delta = -1
			}
		} else if err := tx.Reviews.AddVote(ctx, reviewID, userID, kind); err != nil {
			return err
		}
		if delta != 0 {
			if err := tx.Reviews.AdjustCounter(ctx, reviewID, column, delta); err != nil {
				return err
			}
		}
		review, err = tx.Reviews.Get(ctx, reviewID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return review, nil
}
