package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"library-service/internal/domain/entities"
	"library-service/internal/domain/repositories"
	"library-service/internal/infrastructure"
)

type UserStats struct {
	NumberOfUsers int64 `json:"number_of_users"`
}

type ResourceStats struct {
	NumberOfResources        int64 `json:"number_of_resources"`
	NumberOfReadResources    int64 `json:"number_of_read_resources"`
	NumberOfDroppedResources int64 `json:"number_of_dropped_resources"`
	NumberOfPendingResources int64 `json:"number_of_pending_resources"`
	NumberOfTaggedResources  int64 `json:"number_of_tagged_resources"`
}

type TagStats struct {
	NumberOfTags int64 `json:"number_of_tags"`
}

type GeneralStats struct {
	UserStats     UserStats     `json:"user_stats"`
	ResourceStats ResourceStats `json:"resource_stats"`
	TagStats      TagStats      `json:"tag_stats"`
}

// StatisticsService serves the public aggregate counts, cached in Redis for a
// short window since the endpoint needs no auth and hits several tables.
type StatisticsService struct {
	userRepo     repositories.UserRepository
	resourceRepo repositories.ResourceRepository
	tagRepo      repositories.TagRepository
	redisService *infrastructure.RedisService
	cacheTTL     time.Duration
}

func NewStatisticsService(
	userRepo repositories.UserRepository,
	resourceRepo repositories.ResourceRepository,
	tagRepo repositories.TagRepository,
	redisService *infrastructure.RedisService,
) *StatisticsService {
	return &StatisticsService{
		userRepo:     userRepo,
		resourceRepo: resourceRepo,
		tagRepo:      tagRepo,
		redisService: redisService,
		cacheTTL:     30 * time.Second,
	}
}

func (s *StatisticsService) General(ctx context.Context) (*GeneralStats, error) {
	if cached, err := s.redisService.GetStats(ctx); err == nil {
		var stats GeneralStats
		if err := json.Unmarshal(cached, &stats); err == nil {
			return &stats, nil
		}
	}

	stats, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(stats); err == nil {
		if err := s.redisService.SetStats(ctx, payload, s.cacheTTL); err != nil {
			log.Printf("failed to cache general stats: %v", err)
		}
	}

	return stats, nil
}

func (s *StatisticsService) compute(ctx context.Context) (*GeneralStats, error) {
	users, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	resources, err := s.resourceRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	read, err := s.resourceRepo.CountByStatus(ctx, entities.StatusRead)
	if err != nil {
		return nil, err
	}
	dropped, err := s.resourceRepo.CountByStatus(ctx, entities.StatusDropped)
	if err != nil {
		return nil, err
	}
	pending, err := s.resourceRepo.CountByStatus(ctx, entities.StatusPending)
	if err != nil {
		return nil, err
	}
	tagged, err := s.tagRepo.CountTaggedResources(ctx)
	if err != nil {
		return nil, err
	}
	tags, err := s.tagRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &GeneralStats{
		UserStats: UserStats{NumberOfUsers: users},
		ResourceStats: ResourceStats{
			NumberOfResources:        resources,
			NumberOfReadResources:    read,
			NumberOfDroppedResources: dropped,
			NumberOfPendingResources: pending,
			NumberOfTaggedResources:  tagged,
		},
		TagStats: TagStats{NumberOfTags: tags},
	}, nil
}
