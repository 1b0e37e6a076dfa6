package service

import (
	"errors"

	"github.com/labstack/gommon/log"
	"gorm.io/gorm"

	"microblog/internal/contract"
	"microblog/internal/domain/entity"
	"microblog/internal/domain/sqlite/repository"
	"microblog/internal/utils/apierror"
)

type DefaultUserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *DefaultUserService {
	return &DefaultUserService{db: db}
}

// Follow inserts the directed edge from the acting identity to the target.
// The target must exist; duplicate edges are rejected by the unique index.
// Self-follows are permitted, only the pair constraint applies.
func (s *DefaultUserService) Follow(apiKey string, targetID int64) apierror.ErrorResponse {
	var apierr apierror.ErrorResponse

	err := s.db.Transaction(func(tx *gorm.DB) error {
		users := repository.NewUserRepository(tx)
		target, err := users.FindByID(targetID)
		if err != nil {
			return err
		}
		if target == nil {
			apierr = apierror.NoSuchUserError
			return errAbort
		}

		actorID, err := users.ResolveAPIKey(apiKey)
		if err != nil {
			return err
		}

		err = repository.NewFollowRepository(tx).Create(&entity.Follow{
			FollowerUserID:  actorID,
			FollowingUserID: targetID,
		})
		if isConstraintViolation(err) {
			apierr = apierror.AlreadyFollowingError
			return errAbort
		}
		return err
	})

	if apierr != nil {
		return apierr
	}
	if err != nil {
		log.Errorf("failed to follow user %d: %v", targetID, err)
		return apierror.InternalServerError
	}
	return nil
}

// Unfollow deletes the edge; zero affected rows means the edge never existed.
func (s *DefaultUserService) Unfollow(apiKey string, targetID int64) apierror.ErrorResponse {
	var apierr apierror.ErrorResponse

	err := s.db.Transaction(func(tx *gorm.DB) error {
		users := repository.NewUserRepository(tx)
		target, err := users.FindByID(targetID)
		if err != nil {
			return err
		}
		if target == nil {
			apierr = apierror.NoSuchUserError
			return errAbort
		}

		actorID, err := users.ResolveAPIKey(apiKey)
		if err != nil {
			return err
		}

		rows, err := repository.NewFollowRepository(tx).Delete(actorID, targetID)
		if err != nil {
			return err
		}
		if rows == 0 {
			apierr = apierror.NotFollowingError
			return errAbort
		}
		return nil
	})

	if apierr != nil {
		return apierr
	}
	if err != nil {
		log.Errorf("failed to unfollow user %d: %v", targetID, err)
		return apierror.InternalServerError
	}
	return nil
}

// GetProfileByID assembles a user's public profile: name plus follower and
// following lists resolved to short profiles. Assembly takes several queries,
// so it shares the one-transaction-per-request scope with the mutations.
func (s *DefaultUserService) GetProfileByID(userID int64) (*contract.ProfileResponse, apierror.ErrorResponse) {
	var profile *contract.ProfileResponse
	var apierr apierror.ErrorResponse

	err := s.db.Transaction(func(tx *gorm.DB) error {
		user, err := repository.NewUserRepository(tx).FindByID(userID)
		if err != nil {
			return err
		}
		if user == nil {
			apierr = apierror.NoSuchUserError
			return errAbort
		}

		profile, err = buildProfile(tx, user)
		return err
	})

	if apierr != nil {
		return nil, apierr
	}
	if err != nil {
		log.Errorf("failed to fetch profile of user %d: %v", userID, err)
		return nil, apierror.InternalServerError
	}
	return profile, nil
}

// GetOwnProfile is GetProfileByID for the identity behind the api key. An
// unresolvable key has no profile to show and surfaces as an internal error,
// never as 401.
func (s *DefaultUserService) GetOwnProfile(apiKey string) (*contract.ProfileResponse, apierror.ErrorResponse) {
	var profile *contract.ProfileResponse

	err := s.db.Transaction(func(tx *gorm.DB) error {
		users := repository.NewUserRepository(tx)
		userID, err := users.ResolveAPIKey(apiKey)
		if err != nil {
			return err
		}

		user, err := users.FindByID(userID)
		if err != nil {
			return err
		}
		if user == nil {
			log.Warnf("api key does not resolve to any user")
			return errAbort
		}

		profile, err = buildProfile(tx, user)
		return err
	})
	if err != nil {
		if !errors.Is(err, errAbort) {
			log.Errorf("failed to fetch own profile: %v", err)
		}
		return nil, apierror.InternalServerError
	}
	return profile, nil
}

func buildProfile(tx *gorm.DB, user *entity.User) (*contract.ProfileResponse, error) {
	follows := repository.NewFollowRepository(tx)

	followerIDs, err := follows.FollowerIDsOf(user.ID)
	if err != nil {
		return nil, err
	}
	followers, err := shortProfiles(tx, followerIDs)
	if err != nil {
		return nil, err
	}

	followingIDs, err := follows.FollowingIDsOf(user.ID)
	if err != nil {
		return nil, err
	}
	following, err := shortProfiles(tx, followingIDs)
	if err != nil {
		return nil, err
	}

	return &contract.ProfileResponse{
		ResultSuccess: contract.OK(),
		User: contract.UserProfile{
			ID:        user.ID,
			Name:      user.Name,
			Followers: followers,
			Following: following,
		},
	}, nil
}

func shortProfiles(tx *gorm.DB, ids []int64) ([]contract.UserShort, error) {
	users, err := repository.NewUserRepository(tx).FindAllInIDs(ids)
	if err != nil {
		return nil, err
	}

	shorts := make([]contract.UserShort, len(users))
	for i, user := range users {
		shorts[i] = contract.UserShort{ID: user.ID, Name: user.Name}
	}
	return shorts, nil
}
