// Package course serves programme catalogue lookups.
package course

import (
	"context"

	"github.com/acp/web/internal/domain/course"
)

// SystemTokenProvider issues system tokens scoped to a user
type SystemTokenProvider interface {
	GetSystemClientToken(ctx context.Context, username string) (string, error)
}

// CourseAPI is the subset of the programmes API serving courses
type CourseAPI interface {
	FindCourseByOffering(ctx context.Context, token, offeringID string) (*course.Course, error)
}

// CourseService reads courses
type CourseService struct {
	tokens SystemTokenProvider
	api    CourseAPI
}

// NewCourseService creates a new CourseService
func NewCourseService(tokens SystemTokenProvider, api CourseAPI) *CourseService {
	return &CourseService{tokens: tokens, api: api}
}

// GetCourseByOffering returns the course an offering belongs to
func (s *CourseService) GetCourseByOffering(ctx context.Context, username, offeringID string) (*course.Course, error) {
	token, err := s.tokens.GetSystemClientToken(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.api.FindCourseByOffering(ctx, token, offeringID)
}
