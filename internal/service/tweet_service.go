package service

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
	"gorm.io/gorm"

	"microblog/internal/contract"
	"microblog/internal/domain/entity"
	"microblog/internal/domain/sqlite/repository"
	"microblog/internal/utils/apierror"
)

// errAbort rolls the surrounding transaction back once a business error has
// been recorded; the recorded error is what reaches the client.
var errAbort = errors.New("abort transaction")

// isConstraintViolation matches both flavors the store produces: a duplicate
// edge hits the unique index, an unresolved identity hits the users foreign
// key. Both are surfaced to the client as the same conflict, which keeps an
// invalid api key indistinguishable from a duplicate write.
func isConstraintViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated)
}

type DefaultTweetService struct {
	db       *gorm.DB
	Validate *validator.Validate
}

func NewTweetService(db *gorm.DB, validate *validator.Validate) *DefaultTweetService {
	return &DefaultTweetService{db: db, Validate: validate}
}

// CreateTweet stores a new tweet under the identity behind the api key and
// binds any pre-uploaded attachments to it, all in one transaction.
func (s *DefaultTweetService) CreateTweet(apiKey string, req *contract.CreateTweetRequest) (*contract.CreateTweetResponse, apierror.ErrorResponse) {
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	tweet := &entity.Tweet{
		Content:  *req.Content,
		DateTime: time.Now().UTC(),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		authorID, err := repository.NewUserRepository(tx).ResolveAPIKey(apiKey)
		if err != nil {
			return err
		}
		tweet.AuthorID = authorID

		if err := repository.NewTweetRepository(tx).Create(tweet); err != nil {
			return err
		}
		return repository.NewAttachmentRepository(tx).BindUnbound(req.TweetMediaIDs, tweet.ID)
	})
	if err != nil {
		log.Errorf("failed to create tweet: %v", err)
		return nil, apierror.InternalServerError
	}

	return &contract.CreateTweetResponse{ResultSuccess: contract.OK(), TweetID: tweet.ID}, nil
}

// DeleteTweet checks existence first, then authorship, producing the two
// distinct error outcomes. Deletion cascades by hand: likes are removed and
// attachments unlinked before the tweet row goes, all in one transaction.
func (s *DefaultTweetService) DeleteTweet(apiKey string, tweetID int64) apierror.ErrorResponse {
	var apierr apierror.ErrorResponse

	err := s.db.Transaction(func(tx *gorm.DB) error {
		tweets := repository.NewTweetRepository(tx)
		tweet, err := tweets.FindByID(tweetID)
		if err != nil {
			return err
		}
		if tweet == nil {
			apierr = apierror.NoSuchTweetError
			return errAbort
		}

		actorID, err := repository.NewUserRepository(tx).ResolveAPIKey(apiKey)
		if err != nil {
			return err
		}
		if tweet.AuthorID != actorID {
			apierr = apierror.NotTweetAuthorError
			return errAbort
		}

		if err := repository.NewLikeRepository(tx).DeleteByTweetID(tweetID); err != nil {
			return err
		}
		if err := repository.NewAttachmentRepository(tx).UnlinkByTweetID(tweetID); err != nil {
			return err
		}
		return tweets.Delete(tweet)
	})

	if apierr != nil {
		return apierr
	}
	if err != nil {
		log.Errorf("failed to delete tweet %d: %v", tweetID, err)
		return apierror.InternalServerError
	}
	return nil
}

// Like inserts the (tweet, user) edge. The tweet must exist; the unique index
// is what rejects a second like from the same user, even under races.
func (s *DefaultTweetService) Like(apiKey string, tweetID int64) apierror.ErrorResponse {
	var apierr apierror.ErrorResponse

	err := s.db.Transaction(func(tx *gorm.DB) error {
		tweet, err := repository.NewTweetRepository(tx).FindByID(tweetID)
		if err != nil {
			return err
		}
		if tweet == nil {
			apierr = apierror.NoSuchTweetError
			return errAbort
		}

		actorID, err := repository.NewUserRepository(tx).ResolveAPIKey(apiKey)
		if err != nil {
			return err
		}

		err = repository.NewLikeRepository(tx).Create(&entity.Like{TweetID: tweetID, UserID: actorID})
		if isConstraintViolation(err) {
			apierr = apierror.AlreadyLikedError
			return errAbort
		}
		return err
	})

	if apierr != nil {
		return apierr
	}
	if err != nil {
		log.Errorf("failed to like tweet %d: %v", tweetID, err)
		return apierror.InternalServerError
	}
	return nil
}

// Unlike removes the edge; zero affected rows means there was nothing to
// remove, which is a conflict, not a no-op.
func (s *DefaultTweetService) Unlike(apiKey string, tweetID int64) apierror.ErrorResponse {
	var apierr apierror.ErrorResponse

	err := s.db.Transaction(func(tx *gorm.DB) error {
		tweet, err := repository.NewTweetRepository(tx).FindByID(tweetID)
		if err != nil {
			return err
		}
		if tweet == nil {
			apierr = apierror.NoSuchTweetError
			return errAbort
		}

		actorID, err := repository.NewUserRepository(tx).ResolveAPIKey(apiKey)
		if err != nil {
			return err
		}

		rows, err := repository.NewLikeRepository(tx).Delete(tweetID, actorID)
		if err != nil {
			return err
		}
		if rows == 0 {
			apierr = apierror.NotLikedError
			return errAbort
		}
		return nil
	})

	if apierr != nil {
		return apierr
	}
	if err != nil {
		log.Errorf("failed to unlike tweet %d: %v", tweetID, err)
		return apierror.InternalServerError
	}
	return nil
}

// GetFeed assembles the viewer's timeline: own tweets plus followees' tweets,
// newest first, each enriched with author, attachment paths and likers.
// Reads share the one-transaction-per-request scope: the feed query and its
// preloads run as separate statements and must see one consistent snapshot.
func (s *DefaultTweetService) GetFeed(apiKey string) (*contract.FeedResponse, apierror.ErrorResponse) {
	var tweets []*entity.Tweet

	err := s.db.Transaction(func(tx *gorm.DB) error {
		viewerID, err := repository.NewUserRepository(tx).ResolveAPIKey(apiKey)
		if err != nil {
			return err
		}

		tweets, err = repository.NewTweetRepository(tx).FeedFor(viewerID)
		return err
	})
	if err != nil {
		log.Errorf("failed to fetch feed: %v", err)
		return nil, apierror.InternalServerError
	}

	resp := &contract.FeedResponse{
		ResultSuccess: contract.OK(),
		Tweets:        make([]contract.TweetResponse, len(tweets)),
	}
	for i, tweet := range tweets {
		resp.Tweets[i] = toTweetResponse(tweet)
	}
	return resp, nil
}

func toTweetResponse(tweet *entity.Tweet) contract.TweetResponse {
	attachments := make([]string, len(tweet.Attachments))
	for i, attachment := range tweet.Attachments {
		attachments[i] = attachment.Link
	}

	likes := make([]contract.UserLiker, len(tweet.Likes))
	for i, like := range tweet.Likes {
		likes[i] = contract.UserLiker{UserID: like.User.ID, Name: like.User.Name}
	}

	return contract.TweetResponse{
		ID:          tweet.ID,
		Content:     tweet.Content,
		Attachments: attachments,
		Author:      contract.UserShort{ID: tweet.Author.ID, Name: tweet.Author.Name},
		Likes:       likes,
	}
}
