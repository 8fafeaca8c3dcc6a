package handler

import (
	"context"

	courseapp "github.com/acp/web/internal/application/course"
	personapp "github.com/acp/web/internal/application/person"
	pniapp "github.com/acp/web/internal/application/pni"
	referralapp "github.com/acp/web/internal/application/referral"
	"github.com/acp/web/internal/domain/course"
	"github.com/acp/web/internal/domain/person"
	"github.com/acp/web/internal/domain/pni"
	"github.com/acp/web/internal/domain/referral"
)

// ReferralService reads and updates referrals
type ReferralService interface {
	GetReferral(ctx context.Context, username, referralID string, opts referralapp.GetReferralOptions) (*referral.Referral, error)
	GetReferralStatusHistory(ctx context.Context, userToken, username, referralID string) ([]referral.StatusHistoryEntry, error)
	GetStatusTransitions(ctx context.Context, username, referralID string, opts referral.TransitionOptions) ([]referral.StatusTransition, error)
	UpdateReferralStatus(ctx context.Context, username, referralID string, update referral.StatusUpdate) error
}

// ReferenceDataService lists status categories and reasons
type ReferenceDataService interface {
	GetReferralStatusCodeCategories(ctx context.Context, username string, decision referral.StatusCode) ([]referral.StatusCategory, error)
	GetReferralStatusCodeReasons(ctx context.Context, username, categoryCode string, decision referral.StatusCode) ([]referral.StatusReason, error)
}

// CourseService looks up the course a referral is for
type CourseService interface {
	GetCourseByOffering(ctx context.Context, username, offeringID string) (*course.Course, error)
}

// PersonService looks up the referred person
type PersonService interface {
	GetPerson(ctx context.Context, username, prisonNumber string) (*person.Person, error)
}

// PniService fetches programme needs identifier scores
type PniService interface {
	GetPni(ctx context.Context, username, prisonNumber string) (*pni.Pni, error)
}

var (
	_ ReferralService      = (*referralapp.ReferralService)(nil)
	_ ReferenceDataService = (*referralapp.ReferenceDataService)(nil)
	_ CourseService        = (*courseapp.CourseService)(nil)
	_ PersonService        = (*personapp.PersonService)(nil)
	_ PniService           = (*pniapp.PniService)(nil)
)
