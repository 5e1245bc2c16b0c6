package proxy

import (
	models "SteamProfile/models/postgres"
	"context"
)

type AchievementsServiceProxy struct {
	*ServiceProxy
}

func NewAchievementsServiceProxy(base *ServiceProxy) *AchievementsServiceProxy {
	return &AchievementsServiceProxy{ServiceProxy: base}
}

func (p *AchievementsServiceProxy) GetAllAchievements(ctx context.Context) ([]models.Achievement, error) {
	achievements := []models.Achievement{}
	err := p.get(ctx, "/api/Achievements", nil, &achievements)
	return achievements, err
}

func (p *AchievementsServiceProxy) GetAchievementsWithStatus(ctx context.Context, userID uint) ([]models.AchievementStatus, error) {
	statuses := []models.AchievementStatus{}
	err := p.get(ctx, idPath("/api/Achievements/user/%d", userID), nil, &statuses)
	return statuses, err
}

func (p *AchievementsServiceProxy) GetUnlockedAchievements(ctx context.Context, userID uint) ([]models.AchievementStatus, error) {
	statuses := []models.AchievementStatus{}
	err := p.get(ctx, idPath("/api/Achievements/user/%d/unlocked", userID), nil, &statuses)
	return statuses, err
}

func (p *AchievementsServiceProxy) UpdateAchievements(ctx context.Context, userID uint) ([]models.Achievement, error) {
	unlocked := []models.Achievement{}
	err := p.post(ctx, idPath("/api/Achievements/user/%d/refresh", userID), nil, nil, &unlocked)
	return unlocked, err
}
