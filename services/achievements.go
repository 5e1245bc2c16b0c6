package services

import (
	"SteamProfile/apperrors"
	"SteamProfile/database"
	models "SteamProfile/models/postgres"
	"SteamProfile/repositories"
	"SteamProfile/utils"
	"context"
	"time"

	"go.uber.org/zap"
)

// achievementCounters are read in one round trip through DataLink
type achievementCounters struct {
	Friendships     int64 `db:"friendships"`
	OwnedGames      int64 `db:"owned_games"`
	ReviewsGiven    int64 `db:"reviews_given"`
	ReviewsReceived int64 `db:"reviews_received"`
	Posts           int64 `db:"posts"`
}

const achievementCountersQuery = `SELECT
	(SELECT COUNT(*) FROM friendships WHERE user_id = ? OR friend_id = ?) AS friendships,
	(SELECT COUNT(*) FROM owned_games WHERE user_id = ?) AS owned_games,
	(SELECT COUNT(*) FROM reviews WHERE user_id = ?) AS reviews_given,
	(SELECT COUNT(*) FROM review_votes JOIN reviews ON reviews.id = review_votes.review_id WHERE reviews.user_id = ?) AS reviews_received,
	(SELECT COUNT(*) FROM forum_posts WHERE author_id = ?) AS posts`

// LocalAchievementsService unlocks catalog achievements from activity counters
// and pays their points into the wallet
type LocalAchievementsService struct {
	store *repositories.Store
	link  *database.DataLink
}

func NewAchievementsService(store *repositories.Store, link *database.DataLink) *LocalAchievementsService {
	return &LocalAchievementsService{store: store, link: link}
}

func (s *LocalAchievementsService) GetAllAchievements(ctx context.Context) ([]models.Achievement, error) {
	return s.store.Achievements.List(ctx)
}

func (s *LocalAchievementsService) GetAchievementsWithStatus(ctx context.Context, userID uint) ([]models.AchievementStatus, error) {
	catalog, err := s.store.Achievements.List(ctx)
	if err != nil {
		return nil, err
	}
	unlocked, err := s.store.Achievements.ListUnlocked(ctx, userID)
	if err != nil {
		return nil, err
	}
	unlockedAt := make(map[uint]time.Time, len(unlocked))
	for _, u := range unlocked {
		unlockedAt[u.AchievementID] = u.UnlockedAt
	}

	statuses := make([]models.AchievementStatus, 0, len(catalog))
	for _, a := range catalog {
		status := models.AchievementStatus{Achievement: a}
		if at, ok := unlockedAt[a.ID]; ok {
			at := at
			status.Unlocked = true
			status.UnlockedAt = &at
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

func (s *LocalAchievementsService) GetUnlockedAchievements(ctx context.Context, userID uint) ([]models.AchievementStatus, error) {
	all, err := s.GetAchievementsWithStatus(ctx, userID)
	if err != nil {
		return nil, err
	}
	unlocked := []models.AchievementStatus{}
	for _, a := range all {
		if a.Unlocked {
			unlocked = append(unlocked, a)
		}
	}
	return unlocked, nil
}

// progress maps every achievement type to the user's current count
func (s *LocalAchievementsService) progress(ctx context.Context, user *models.User, now time.Time) (map[string]int64, error) {
	var c achievementCounters
	id := user.ID
	if err := s.link.ExecuteRow(ctx, &c, achievementCountersQuery, id, id, id, id, id, id); err != nil {
		return nil, err
	}

	years := int64(now.Year() - user.CreatedAt.Year())
	if now.YearDay() < user.CreatedAt.YearDay() {
		years--
	}
	if years < 0 {
		years = 0
	}
	developer := int64(0)
	if user.IsDeveloper {
		developer = 1
	}

	return map[string]int64{
		models.AchievementFriendships:     c.Friendships,
		models.AchievementOwnedGames:      c.OwnedGames,
		models.AchievementReviewsGiven:    c.ReviewsGiven,
		models.AchievementReviewsReceived: c.ReviewsReceived,
		models.AchievementPosts:           c.Posts,
		models.AchievementYearsOfActivity: years,
		models.AchievementDeveloper:       developer,
	}, nil
}

// UpdateAchievements unlocks everything the user now qualifies for and returns
// the newly unlocked achievements
func (s *LocalAchievementsService) UpdateAchievements(ctx context.Context, userID uint) ([]models.Achievement, error) {
	user, err := s.store.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	counts, err := s.progress(ctx, user, now)
	if err != nil {
		return nil, err
	}
	statuses, err := s.GetAchievementsWithStatus(ctx, userID)
	if err != nil {
		return nil, err
	}

	unlocked := []models.Achievement{}
	for _, status := range statuses {
		if status.Unlocked || counts[status.Type] < int64(status.Threshold) {
			continue
		}
		achievement := status.Achievement
		err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
			if err := tx.Achievements.Unlock(ctx, userID, achievement.ID, now); err != nil {
				return err
			}
			if _, err := tx.Wallets.GetOrCreate(ctx, userID); err != nil {
				return err
			}
			if achievement.Points <= 0 {
				return nil
			}
			return tx.Wallets.CreditPoints(ctx, userID, achievement.Points)
		})
		if apperrors.IsConflict(err) {
			// unlocked by a concurrent refresh
			continue
		}
		if err != nil {
			return unlocked, err
		}
		unlocked = append(unlocked, achievement)
	}

	if len(unlocked) > 0 {
		utils.GetLogger().Info("Achievements unlocked", zap.Uint("user_id", userID), zap.Int("count", len(unlocked)))
	}
	return unlocked, nil
}
