package contract

const MaxTweetContentLength = 500

type CreateTweetRequest struct {
	// Content must be present on the wire, but an empty string is valid.
	Content       *string `json:"tweet_data" validate:"required,max=500"`
	TweetMediaIDs []int64 `json:"tweet_media_ids" validate:"omitempty,dive,gt=0"`
}

type CreateTweetResponse struct {
	ResultSuccess
	TweetID int64 `json:"tweet_id"`
}

// TweetResponse is one feed element: the tweet itself plus its author, the
// paths of its attachments and the short profiles of everyone who liked it.
type TweetResponse struct {
	ID          int64       `json:"id"`
	Content     string      `json:"content"`
	Attachments []string    `json:"attachments"`
	Author      UserShort   `json:"author"`
	Likes       []UserLiker `json:"likes"`
}

type FeedResponse struct {
	ResultSuccess
	Tweets []TweetResponse `json:"tweets"`
}
